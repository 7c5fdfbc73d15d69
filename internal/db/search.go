package db

import "github.com/gasit-app/gasit/internal/domain/search/filter"

// SearchQuery is the input for a filtered, sorted FT.SEARCH.
type SearchQuery struct {
	IndexName string
	Filters   filter.Expression

	// SortBy names a numeric field to sort by descending. Empty means the
	// store's relevance order; set WithScores in that case to get scores back.
	SortBy     string
	WithScores bool

	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
