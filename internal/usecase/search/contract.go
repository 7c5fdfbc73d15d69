package search

import (
	"context"

	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/result"
)

// Repository defines the storage contract for the search pipeline.
type Repository interface {
	// Find returns every listing matching the expression, fully
	// materialized, ordered by relevance score or recency.
	Find(ctx context.Context, expr filter.Expression, ord order.Order) ([]result.Hit, error)

	// Count returns the number of listings matching the expression,
	// independent of any fetch window.
	Count(ctx context.Context, expr filter.Expression) (int, error)

	// DistinctCategories returns the distinct category values among
	// listings matching the expression.
	DistinctCategories(ctx context.Context, expr filter.Expression) ([]string, error)
}
