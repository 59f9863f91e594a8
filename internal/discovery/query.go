package discovery

import "fmt"

// queryTemplates expand a topic into targeted searches. The list is
// ordered from most to least specific; changing it shifts recall and
// precision, not behavior.
var queryTemplates = []string{
	`%s "UCC-1" financing statement`,
	`%s "financing statement" filing`,
	`%s seeking funding "working capital"`,
	`%s "merchant cash advance" OR "bridge loan"`,
	`%s UCC filing site:.gov`,
}

// ComposeQueries expands a topic into the fixed set of query strings.
// Always returns at least one query.
func ComposeQueries(topic string) []string {
	queries := make([]string, 0, len(queryTemplates))
	for _, tmpl := range queryTemplates {
		queries = append(queries, fmt.Sprintf(tmpl, topic))
	}
	return queries
}
