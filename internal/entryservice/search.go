package entryservice

import "strings"

// searchTerms splits a raw query on whitespace and drops empty tokens. An
// empty result means the query matches nothing, never the full corpus.
func searchTerms(rawQuery string) []string {
	return strings.Fields(rawQuery)
}
