package result

import "github.com/gasit-app/gasit/internal/domain/listing"

// Hit is a single matching listing with its store relevance score.
// The score is zero for recency-ordered queries.
type Hit struct {
	listing listing.Listing
	score   float64
}

// NewHit creates a search hit.
func NewHit(l listing.Listing, score float64) Hit {
	return Hit{listing: l, score: score}
}

// Listing returns the matched listing.
func (h *Hit) Listing() *listing.Listing { return &h.listing }

// Score returns the full-text relevance score.
func (h *Hit) Score() float64 { return h.score }

// Page is one window of the merged, promoted-first result list.
type Page struct {
	// Listings is the current page in final order.
	Listings []listing.Listing
	// TotalCount is the number of listings matching the base predicate,
	// independent of promotion split and pagination.
	TotalCount int
	// PromotedCount is the number of currently-promoted matches across the
	// whole result set, not just this page.
	PromotedCount int
	// HasMore reports whether listings beyond this page exist.
	HasMore bool
}

// Count returns the number of listings on this page.
func (p *Page) Count() int { return len(p.Listings) }
