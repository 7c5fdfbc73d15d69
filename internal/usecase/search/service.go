package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gasit-app/gasit/internal/domain"
	"github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/query"
	"github.com/gasit-app/gasit/internal/domain/search/result"
	"github.com/gasit-app/gasit/internal/metrics"
)

// Service runs the two-tier search pipeline: every currently-promoted match
// precedes every non-promoted match, with within-tier ordering by relevance
// or recency.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source. Used by tests to pin promotion expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search executes the pipeline for a validated query and returns the
// requested page. Either every sub-query succeeds or the whole search fails;
// no partial results are ever returned.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Page, error) {
	now := s.now()

	base, ord, err := compileBase(q, now)
	if err != nil {
		return result.Page{}, err
	}
	promo, err := promotionConditions(now)
	if err != nil {
		return result.Page{}, err
	}

	promotedExpr := base.And(promo...)
	regularExpr := base.AndNotAll(promo...)

	// The tier queries and the base count have no data dependency; issue
	// them concurrently to cut latency.
	var (
		wg       sync.WaitGroup
		promoted []result.Hit
		regular  []result.Hit
		total    int
	)
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		promoted, errs[0] = s.repo.Find(ctx, promotedExpr, ord)
	}()
	go func() {
		defer wg.Done()
		regular, errs[1] = s.repo.Find(ctx, regularExpr, ord)
	}()
	go func() {
		defer wg.Done()
		total, errs[2] = s.repo.Count(ctx, base)
	}()
	wg.Wait()

	for _, qerr := range errs {
		if qerr != nil {
			metrics.SearchesTotal.WithLabelValues("error").Inc()
			return result.Page{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, qerr)
		}
	}

	// A promotion can expire between the two tier queries; a listing seen
	// in the promoted tier must not reappear in the regular one.
	regular = dropSeen(regular, promoted)

	sortHits(promoted, ord)
	sortHits(regular, ord)
	merged := append(promoted, regular...)

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchTierFetched.WithLabelValues("promoted").Observe(float64(len(promoted)))
	metrics.SearchTierFetched.WithLabelValues("regular").Observe(float64(len(regular)))

	return paginate(merged, q.Skip(), q.Limit(), total, len(promoted)), nil
}

// Categories lists the distinct categories of discoverable listings.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	solved, err := filter.NewMatch(listing.FieldStatus, string(listing.Solved))
	if err != nil {
		return nil, fmt.Errorf("compile status exclusion: %w", err)
	}
	expr, err := filter.NewExpression(nil, []filter.Condition{solved})
	if err != nil {
		return nil, fmt.Errorf("compile categories expression: %w", err)
	}

	cats, err := s.repo.DistinctCategories(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	sort.Strings(cats)
	return cats, nil
}

// dropSeen removes hits whose listing id already appears in seen.
func dropSeen(hits, seen []result.Hit) []result.Hit {
	if len(seen) == 0 || len(hits) == 0 {
		return hits
	}
	ids := make(map[string]struct{}, len(seen))
	for i := range seen {
		ids[seen[i].Listing().ID()] = struct{}{}
	}
	kept := hits[:0]
	for i := range hits {
		if _, dup := ids[hits[i].Listing().ID()]; !dup {
			kept = append(kept, hits[i])
		}
	}
	return kept
}

// sortHits orders one tier: relevance score or recency descending, then id
// ascending so equal listings always land in the same order.
func sortHits(hits []result.Hit, ord order.Order) {
	sort.Slice(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		if ord == order.Relevance {
			if a.Score() != b.Score() {
				return a.Score() > b.Score()
			}
		} else {
			at, bt := a.Listing().CreatedAt(), b.Listing().CreatedAt()
			if !at.Equal(bt) {
				return at.After(bt)
			}
		}
		return a.Listing().ID() < b.Listing().ID()
	})
}

// paginate slices the merged list by the skip/limit window. A window past
// the end yields an empty page, not an error.
func paginate(merged []result.Hit, skip, limit, total, promotedCount int) result.Page {
	start := skip
	if start > len(merged) {
		start = len(merged)
	}
	end := start + limit
	if end > len(merged) {
		end = len(merged)
	}

	window := merged[start:end]
	listings := make([]listing.Listing, len(window))
	for i := range window {
		listings[i] = *window[i].Listing()
	}

	return result.Page{
		Listings:      listings,
		TotalCount:    total,
		PromotedCount: promotedCount,
		HasMore:       skip+len(window) < total,
	}
}
