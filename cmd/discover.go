package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <topic>",
		Short: "Run one discovery cycle and print the result as JSON.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer syncLogger(application.Logger)

			topic := strings.Join(args, " ")
			resp, err := application.Pipeline.Run(cmd.Context(), topic)
			if err != nil {
				return fmt.Errorf("discover: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			return nil
		},
	}
}
