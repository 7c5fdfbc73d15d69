package listing

import "time"

// Status is the lifecycle state of a listing.
type Status string

const (
	// Lost marks a report about a lost item.
	Lost Status = "lost"
	// Found marks a report about a found item.
	Found Status = "found"
	// Solved marks a closed case. Solved listings never appear in search
	// results; they are reachable only by direct link.
	Solved Status = "solved"
)

// IsSearchable reports whether the status is a valid search filter value.
func (s Status) IsSearchable() bool {
	return s == Lost || s == Found
}

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	return s == Lost || s == Found || s == Solved
}

// Point is a WGS84 coordinate pair.
type Point struct {
	Longitude float64
	Latitude  float64
}

// Promotion is the paid-placement sub-record of a listing.
type Promotion struct {
	active    bool
	expiresAt time.Time
}

// NewPromotion creates a promotion record. A zero expiresAt means the
// promotion never activates regardless of the active flag.
func NewPromotion(active bool, expiresAt time.Time) Promotion {
	return Promotion{active: active, expiresAt: expiresAt}
}

// Active returns the raw active flag.
func (p Promotion) Active() bool { return p.active }

// ExpiresAt returns the promotion expiry time (zero if unset).
func (p Promotion) ExpiresAt() time.Time { return p.expiresAt }

// ActiveAt reports whether the listing is currently promoted at the given
// instant: the flag is set and the expiry has not elapsed. This is the single
// promotion predicate used by both tier queries; an absent promotion record
// (zero Promotion) is never active.
func (p Promotion) ActiveAt(now time.Time) bool {
	return p.active && !p.expiresAt.IsZero() && p.expiresAt.After(now)
}

// Listing is a lost/found item report.
type Listing struct {
	id           string
	title        string
	content      string
	category     string
	status       Status
	location     Point
	circleRadius float64 // meters; display hint only, not used for matching
	createdAt    time.Time
	lastSeenAt   time.Time // zero if the author supplied none
	promotion    Promotion
	views        int64
	images       []string
}

// Reconstruct rehydrates a Listing from storage.
func Reconstruct(
	id, title, content, category string,
	status Status,
	location Point,
	circleRadius float64,
	createdAt, lastSeenAt time.Time,
	promotion Promotion,
	views int64,
	images []string,
) Listing {
	return Listing{
		id:           id,
		title:        title,
		content:      content,
		category:     category,
		status:       status,
		location:     location,
		circleRadius: circleRadius,
		createdAt:    createdAt,
		lastSeenAt:   lastSeenAt,
		promotion:    promotion,
		views:        views,
		images:       images,
	}
}

// ID returns the listing identifier.
func (l *Listing) ID() string { return l.id }

// Title returns the listing title.
func (l *Listing) Title() string { return l.title }

// Content returns the free-text description.
func (l *Listing) Content() string { return l.content }

// Category returns the listing category.
func (l *Listing) Category() string { return l.category }

// Status returns the lifecycle state.
func (l *Listing) Status() Status { return l.status }

// Location returns the listing coordinate.
func (l *Listing) Location() Point { return l.location }

// CircleRadius returns the author-supplied area-of-relevance radius in meters.
func (l *Listing) CircleRadius() float64 { return l.circleRadius }

// CreatedAt returns the immutable creation timestamp.
func (l *Listing) CreatedAt() time.Time { return l.createdAt }

// LastSeenAt returns the author-supplied last-seen date (zero if absent).
func (l *Listing) LastSeenAt() time.Time { return l.lastSeenAt }

// Promotion returns the paid-placement sub-record.
func (l *Listing) Promotion() Promotion { return l.promotion }

// Views returns the view counter.
func (l *Listing) Views() int64 { return l.views }

// Images returns the image URLs.
func (l *Listing) Images() []string { return l.images }
