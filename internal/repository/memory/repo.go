// Package memory implements the listing repositories over an in-process map.
// It evaluates the same filter expressions the Redis driver lowers to
// FT.SEARCH syntax, which lets the search pipeline run in tests without a
// live store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gasit-app/gasit/internal/domain"
	domgeo "github.com/gasit-app/gasit/internal/domain/geo"
	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/result"
)

// Repo holds listings in memory.
type Repo struct {
	mu       sync.RWMutex
	listings map[string]domlisting.Listing
	err      error
}

// New creates an empty in-memory repository.
func New() *Repo {
	return &Repo{listings: make(map[string]domlisting.Listing)}
}

// Add stores listings, replacing any with the same id.
func (r *Repo) Add(ls ...domlisting.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range ls {
		r.listings[l.ID()] = l
	}
}

// FailWith makes every subsequent call return err (nil restores normal
// operation). Used to exercise store-failure paths.
func (r *Repo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Find returns every listing matching the expression. Relevance scores are a
// naive term-occurrence count; title matches weigh double.
func (r *Repo) Find(_ context.Context, expr filter.Expression, _ order.Order) ([]result.Hit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}

	var hits []result.Hit
	for _, l := range r.listings {
		if !matches(&l, expr) {
			continue
		}
		hits = append(hits, result.NewHit(l, relevance(&l, expr)))
	}
	// Stable input order for callers that do not re-sort.
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Listing().ID() < hits[j].Listing().ID()
	})
	return hits, nil
}

// Count returns the number of listings matching the expression.
func (r *Repo) Count(_ context.Context, expr filter.Expression) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}

	n := 0
	for _, l := range r.listings {
		if matches(&l, expr) {
			n++
		}
	}
	return n, nil
}

// DistinctCategories returns the distinct categories among matching listings.
func (r *Repo) DistinctCategories(_ context.Context, expr filter.Expression) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}

	seen := make(map[string]struct{})
	var cats []string
	for _, l := range r.listings {
		if !matches(&l, expr) || l.Category() == "" {
			continue
		}
		if _, ok := seen[l.Category()]; ok {
			continue
		}
		seen[l.Category()] = struct{}{}
		cats = append(cats, l.Category())
	}
	return cats, nil
}

// Get fetches a listing by id.
func (r *Repo) Get(_ context.Context, id string) (domlisting.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return domlisting.Listing{}, r.err
	}

	l, ok := r.listings[id]
	if !ok {
		return domlisting.Listing{}, domain.ErrNotFound
	}
	return l, nil
}

// IncrViews bumps a listing's view counter.
func (r *Repo) IncrViews(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}

	l, ok := r.listings[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	views := l.Views() + 1
	r.listings[id] = domlisting.Reconstruct(
		l.ID(), l.Title(), l.Content(), l.Category(), l.Status(),
		l.Location(), l.CircleRadius(), l.CreatedAt(), l.LastSeenAt(),
		l.Promotion(), views, l.Images(),
	)
	return views, nil
}

// --- Expression evaluation ---

func matches(l *domlisting.Listing, expr filter.Expression) bool {
	for _, cond := range expr.Must() {
		if !condMatches(l, cond) {
			return false
		}
	}
	for _, group := range expr.NotAll() {
		all := true
		for _, cond := range group {
			if !condMatches(l, cond) {
				all = false
				break
			}
		}
		if all && len(group) > 0 {
			return false
		}
	}
	return true
}

func condMatches(l *domlisting.Listing, cond filter.Condition) bool {
	switch cond.Kind() {
	case filter.KindMatch:
		v, ok := tagValue(l, cond.Key())
		return ok && v == cond.Match()
	case filter.KindRange:
		v, ok := numericValue(l, cond.Key())
		return ok && cond.Range().Contains(v)
	case filter.KindText:
		return termScore(l, cond.TextQuery()) > 0
	case filter.KindGeo:
		g := cond.Geo()
		p := l.Location()
		return domgeo.WithinKm(g.Latitude, g.Longitude, p.Latitude, p.Longitude, g.RadiusKm)
	}
	return false
}

// tagValue mirrors the hash-field encoding: absent optional fields report
// ok=false so negated groups treat them like missing document fields.
func tagValue(l *domlisting.Listing, key string) (string, bool) {
	switch key {
	case domlisting.FieldCategory:
		return l.Category(), l.Category() != ""
	case domlisting.FieldStatus:
		return string(l.Status()), l.Status() != ""
	case domlisting.FieldPromoActive:
		promo := l.Promotion()
		if !promo.Active() && promo.ExpiresAt().IsZero() {
			return "", false
		}
		if promo.Active() {
			return "1", true
		}
		return "0", true
	}
	return "", false
}

func numericValue(l *domlisting.Listing, key string) (float64, bool) {
	switch key {
	case domlisting.FieldCreatedAt:
		if l.CreatedAt().IsZero() {
			return 0, false
		}
		return float64(l.CreatedAt().Unix()), true
	case domlisting.FieldLastSeen:
		if l.LastSeenAt().IsZero() {
			return 0, false
		}
		return float64(l.LastSeenAt().Unix()), true
	case domlisting.FieldPromoExpires:
		if l.Promotion().ExpiresAt().IsZero() {
			return 0, false
		}
		return float64(l.Promotion().ExpiresAt().Unix()), true
	case domlisting.FieldCircleRadius:
		return l.CircleRadius(), true
	}
	return 0, false
}

// relevance returns the score for the expression's text clause, zero when
// the expression has none.
func relevance(l *domlisting.Listing, expr filter.Expression) float64 {
	for _, cond := range expr.Must() {
		if cond.Kind() == filter.KindText {
			return termScore(l, cond.TextQuery())
		}
	}
	return 0
}

func termScore(l *domlisting.Listing, query string) float64 {
	title := strings.ToLower(l.Title())
	content := strings.ToLower(l.Content())

	score := 0.0
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(title, term) {
			score += 2
		}
		if strings.Contains(content, term) {
			score++
		}
	}
	return score
}
