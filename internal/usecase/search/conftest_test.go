package search

import (
	"context"
	"fmt"
	"time"

	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/result"
)

// --- Mocks ---

type mockRepo struct {
	findFn     func(ctx context.Context, expr filter.Expression, ord order.Order) ([]result.Hit, error)
	countFn    func(ctx context.Context, expr filter.Expression) (int, error)
	distinctFn func(ctx context.Context, expr filter.Expression) ([]string, error)
}

func (m *mockRepo) Find(ctx context.Context, expr filter.Expression, ord order.Order) ([]result.Hit, error) {
	if m.findFn == nil {
		return nil, nil
	}
	return m.findFn(ctx, expr, ord)
}

func (m *mockRepo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx, expr)
}

func (m *mockRepo) DistinctCategories(ctx context.Context, expr filter.Expression) ([]string, error) {
	if m.distinctFn == nil {
		return nil, nil
	}
	return m.distinctFn(ctx, expr)
}

// --- Fixtures ---

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// isPromotedExpr tells the two tier expressions apart: only the promoted one
// carries the promo flag in its conjunction.
func isPromotedExpr(expr filter.Expression) bool {
	for _, c := range expr.Must() {
		if c.Kind() == filter.KindMatch && c.Key() == domlisting.FieldPromoActive {
			return true
		}
	}
	return false
}

func makeHit(id string, createdAt time.Time, score float64) result.Hit {
	l := domlisting.Reconstruct(
		id, "title "+id, "", "Animale", domlisting.Lost,
		domlisting.Point{}, 0, createdAt, time.Time{},
		domlisting.Promotion{}, 0, nil,
	)
	return result.NewHit(l, score)
}

func makeHits(prefix string, n int, newest time.Time) []result.Hit {
	hits := make([]result.Hit, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s%03d", prefix, i)
		hits[i] = makeHit(id, newest.Add(-time.Duration(i)*time.Hour), 0)
	}
	return hits
}
