package listing

import (
	"context"

	"github.com/gasit-app/gasit/internal/db"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
)

// --- Mocks ---

type mockStore struct {
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, filters filter.Expression) (int, error)
	distinctFn    func(ctx context.Context, index, field string, filters filter.Expression) ([]string, error)
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	hincrByFn     func(ctx context.Context, key, field string, delta int64) (int64, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	return m.searchFn(ctx, q)
}

func (m *mockStore) SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error) {
	return m.searchCountFn(ctx, index, filters)
}

func (m *mockStore) Distinct(ctx context.Context, index, field string, filters filter.Expression) ([]string, error) {
	return m.distinctFn(ctx, index, field, filters)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFn(ctx, key, fields)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	return m.hsetMultiFn(ctx, items)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetAllFn(ctx, key)
}

func (m *mockStore) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	return m.hincrByFn(ctx, key, field, delta)
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	return m.createIndexFn(ctx, def)
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	return m.indexExistsFn(ctx, name)
}
