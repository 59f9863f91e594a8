// The main package for the leadscout executable.
package main

import (
	"github.com/finsignal/leadscout/cmd"
)

func main() {
	cmd.Execute()
}
