// Package order defines the within-tier sort key for search results.
package order

// Order selects how listings are ranked inside a tier.
type Order string

const (
	// Relevance ranks by full-text score descending.
	Relevance Order = "relevance"
	// Recency ranks by creation time descending.
	Recency Order = "recency"
)

// IsValid reports whether the order is a known value.
func (o Order) IsValid() bool {
	return o == Relevance || o == Recency
}
