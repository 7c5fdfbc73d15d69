package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/gasit-app/gasit/internal/db"
	"github.com/gasit-app/gasit/internal/domain"
	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/result"
)

const (
	// KeyPrefix prefixes every listing hash key.
	KeyPrefix = "gasit:listing:"
	// IndexName is the FT index over listing hashes.
	IndexName = "gasit:listing:idx"

	// maxFetch bounds how many listings one tier query materializes. Tier
	// queries are not windowed (the promoted-first merge needs the full
	// result set), so this is the scale ceiling of the pipeline.
	maxFetch = 10000
)

// listFields is the reduced projection returned for list views. The full
// content body is fetched only on the detail path.
var listFields = []string{
	domlisting.FieldTitle,
	domlisting.FieldCategory,
	domlisting.FieldStatus,
	domlisting.FieldLocation,
	domlisting.FieldCircleRadius,
	domlisting.FieldCreatedAt,
	domlisting.FieldLastSeen,
	domlisting.FieldPromoActive,
	domlisting.FieldPromoExpires,
	domlisting.FieldViews,
	domlisting.FieldImages,
}

// store is the consumer interface for listing storage (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error)
	Distinct(ctx context.Context, index, field string, filters filter.Expression) ([]string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements the search and detail repositories over a Redis FT index.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the listing FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(IndexName).
		Prefix(KeyPrefix).
		Text(domlisting.FieldTitle).
		Text(domlisting.FieldContent).
		Tag(domlisting.FieldCategory).
		Tag(domlisting.FieldStatus).
		Tag(domlisting.FieldPromoActive).
		Geo(domlisting.FieldLocation).
		Numeric(domlisting.FieldCreatedAt).
		Numeric(domlisting.FieldLastSeen).
		Numeric(domlisting.FieldPromoExpires).
		Numeric(domlisting.FieldCircleRadius).
		Numeric(domlisting.FieldViews).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Find fetches every listing matching the expression, ordered by the store's
// relevance score or by recency. The result set is fully materialized.
func (r *Repo) Find(ctx context.Context, expr filter.Expression, ord order.Order) ([]result.Hit, error) {
	q := &db.SearchQuery{
		IndexName:    IndexName,
		Filters:      expr,
		Offset:       0,
		Limit:        maxFetch,
		ReturnFields: listFields,
	}
	if ord == order.Relevance {
		q.WithScores = true
	} else {
		q.SortBy = domlisting.FieldCreatedAt
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, KeyPrefix)
		hits = append(hits, result.NewHit(fromFields(id, entry.Fields), entry.Score))
	}
	return hits, nil
}

// Count returns the number of listings matching the expression.
func (r *Repo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName, expr)
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

// DistinctCategories returns the distinct category values among listings
// matching the expression.
func (r *Repo) DistinctCategories(ctx context.Context, expr filter.Expression) ([]string, error) {
	values, err := r.store.Distinct(ctx, IndexName, domlisting.FieldCategory, expr)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	return values, nil
}

// Get fetches a single listing by id, full fields included. Solved listings
// are reachable here even though search never returns them.
func (r *Repo) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	fields, err := r.store.HGetAll(ctx, KeyPrefix+id)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("get listing %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domlisting.Listing{}, domain.ErrNotFound
	}
	return fromFields(id, fields), nil
}

// IncrViews bumps the view counter of a listing and returns the new value.
func (r *Repo) IncrViews(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, KeyPrefix+id, domlisting.FieldViews, 1)
	if err != nil {
		return 0, fmt.Errorf("increment views %s: %w", id, err)
	}
	return n, nil
}

// Put stores one listing.
func (r *Repo) Put(ctx context.Context, l *domlisting.Listing) error {
	if err := r.store.HSet(ctx, KeyPrefix+l.ID(), toFields(l)); err != nil {
		return fmt.Errorf("put listing %s: %w", l.ID(), err)
	}
	return nil
}

// PutMulti stores listings in a single pipelined round-trip.
func (r *Repo) PutMulti(ctx context.Context, ls []domlisting.Listing) error {
	if len(ls) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(ls))
	for i := range ls {
		items[i] = db.HashSetItem{
			Key:    KeyPrefix + ls[i].ID(),
			Fields: toFields(&ls[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("put %d listings: %w", len(ls), err)
	}
	return nil
}
