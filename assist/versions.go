package assist

import "github.com/poiesic/helpdesk/core"

// ResolveLatestVersions collapses re-ingested documents to their most
// recently loaded copy: one result per distinct source, the one with the
// latest load date. Results missing either the source or the load date
// are excluded from the output, never kept.
//
// The output preserves the first-occurrence order of sources so repeated
// resolution is deterministic; when two copies of a source share a load
// date, the first seen wins. Resolving an already-resolved set returns
// it unchanged. Pure function: the input slice is not modified.
func ResolveLatestVersions(results []*core.SearchResult) []*core.SearchResult {
	latest := make(map[string]*core.SearchResult, len(results))
	order := make([]string, 0, len(results))

	for _, r := range results {
		if r == nil || r.Document == nil || !r.Document.Versioned() {
			continue
		}
		source := r.Document.Source
		current, seen := latest[source]
		if !seen {
			latest[source] = r
			order = append(order, source)
			continue
		}
		if r.Document.LoadDate.After(current.Document.LoadDate) {
			latest[source] = r
		}
	}

	resolved := make([]*core.SearchResult, 0, len(order))
	for _, source := range order {
		resolved = append(resolved, latest[source])
	}
	return resolved
}
