package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeQueries(t *testing.T) {
	t.Parallel()

	queries := ComposeQueries("ABC Logistics LLC")
	require.NotEmpty(t, queries)
	for _, q := range queries {
		assert.Contains(t, q, "ABC Logistics LLC")
	}

	// The filing-focused variant leads the list.
	assert.True(t, strings.Contains(queries[0], "UCC-1"))
}

func TestComposeQueriesDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ComposeQueries("topic"), ComposeQueries("topic"))
}
