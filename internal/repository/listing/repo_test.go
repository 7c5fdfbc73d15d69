package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/gasit-app/gasit/internal/db"
	"github.com/gasit-app/gasit/internal/domain"
	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
)

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	store := &mockStore{
		indexExistsFn: func(_ context.Context, name string) (bool, error) {
			if name != IndexName {
				t.Errorf("probed index %s, want %s", name, IndexName)
			}
			return true, nil
		},
		createIndexFn: func(_ context.Context, _ *db.IndexDefinition) error {
			t.Error("create should not run when the index exists")
			return nil
		},
	}

	if err := New(store).EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_CreatesSchema(t *testing.T) {
	var created *db.IndexDefinition
	store := &mockStore{
		indexExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		createIndexFn: func(_ context.Context, def *db.IndexDefinition) error {
			created = def
			return nil
		},
	}

	if err := New(store).EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("index was not created")
	}
	if created.Name != IndexName {
		t.Errorf("index name: got %s", created.Name)
	}
	if len(created.Prefixes) != 1 || created.Prefixes[0] != KeyPrefix {
		t.Errorf("prefixes: got %v", created.Prefixes)
	}

	types := make(map[string]db.IndexFieldType, len(created.Fields))
	for _, f := range created.Fields {
		types[f.Name] = f.Type
	}
	want := map[string]db.IndexFieldType{
		domlisting.FieldTitle:        db.IndexFieldText,
		domlisting.FieldContent:      db.IndexFieldText,
		domlisting.FieldCategory:     db.IndexFieldTag,
		domlisting.FieldStatus:       db.IndexFieldTag,
		domlisting.FieldPromoActive:  db.IndexFieldTag,
		domlisting.FieldLocation:     db.IndexFieldGeo,
		domlisting.FieldCreatedAt:    db.IndexFieldNumeric,
		domlisting.FieldPromoExpires: db.IndexFieldNumeric,
	}
	for name, wantType := range want {
		gotType, ok := types[name]
		if !ok {
			t.Errorf("schema missing field %s", name)
			continue
		}
		if gotType != wantType {
			t.Errorf("field %s: got type %d, want %d", name, gotType, wantType)
		}
	}
}

func TestFind_RelevanceUsesScores(t *testing.T) {
	store := &mockStore{
		searchFn: func(_ context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
			if !q.WithScores {
				t.Error("relevance order should request scores")
			}
			if q.SortBy != "" {
				t.Errorf("relevance order should not sort by field, got %s", q.SortBy)
			}
			return &db.SearchResult{
				Total: 1,
				Entries: []db.SearchEntry{{
					Key:   KeyPrefix + "abc",
					Score: 2.5,
					Fields: map[string]string{
						domlisting.FieldTitle:  "Câine pierdut",
						domlisting.FieldStatus: "lost",
					},
				}},
			}, nil
		},
	}

	hits, err := New(store).Find(context.Background(), filter.Expression{}, order.Relevance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Listing().ID() != "abc" {
		t.Errorf("key prefix should be trimmed, got id %s", hits[0].Listing().ID())
	}
	if hits[0].Score() != 2.5 {
		t.Errorf("score: got %g", hits[0].Score())
	}
}

func TestFind_RecencySortsByCreatedAt(t *testing.T) {
	store := &mockStore{
		searchFn: func(_ context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
			if q.WithScores {
				t.Error("recency order should not request scores")
			}
			if q.SortBy != domlisting.FieldCreatedAt {
				t.Errorf("sortBy: got %s, want created_at", q.SortBy)
			}
			if q.Limit <= 0 {
				t.Errorf("limit must be positive, got %d", q.Limit)
			}
			return &db.SearchResult{}, nil
		},
	}

	if _, err := New(store).Find(context.Background(), filter.Expression{}, order.Recency); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}

	_, err := New(store).Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestIncrViews(t *testing.T) {
	store := &mockStore{
		hincrByFn: func(_ context.Context, key, field string, delta int64) (int64, error) {
			if key != KeyPrefix+"abc" || field != domlisting.FieldViews || delta != 1 {
				t.Errorf("unexpected HINCRBY %s %s %d", key, field, delta)
			}
			return 8, nil
		},
	}

	n, err := New(store).IncrViews(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Errorf("views: got %d, want 8", n)
	}
}

func TestPutMulti_EmptyIsNoop(t *testing.T) {
	store := &mockStore{
		hsetMultiFn: func(_ context.Context, _ []db.HashSetItem) error {
			t.Error("no store call expected for an empty batch")
			return nil
		},
	}

	if err := New(store).PutMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
