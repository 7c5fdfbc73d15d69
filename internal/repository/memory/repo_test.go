package memory

import (
	"context"
	"testing"
	"time"

	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
)

func addListing(t *testing.T, r *Repo, id, title string, lat, lon float64, promo domlisting.Promotion) {
	t.Helper()
	r.Add(domlisting.Reconstruct(
		id, title, "", "Animale", domlisting.Lost,
		domlisting.Point{Longitude: lon, Latitude: lat}, 0,
		time.Unix(1750000000, 0), time.Time{}, promo, 0, nil,
	))
}

func TestFind_GeoFilter(t *testing.T) {
	repo := New()
	// Piața Unirii vs Cluj: the second sits far outside a 10 km radius.
	addListing(t, repo, "near", "Câine pierdut", 44.4268, 26.1025, domlisting.Promotion{})
	addListing(t, repo, "far", "Câine pierdut", 46.7712, 23.6236, domlisting.Promotion{})

	cond, err := filter.NewGeoWithin("location", 26.10, 44.43, 10)
	if err != nil {
		t.Fatalf("new geo: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{cond})

	hits, err := repo.Find(context.Background(), expr, order.Recency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Listing().ID() != "near" {
		t.Errorf("got %d hits, want only the nearby listing", len(hits))
	}
}

func TestFind_NegatedPromotionGroupMatchesAbsentRecord(t *testing.T) {
	repo := New()
	active := domlisting.NewPromotion(true, time.Unix(1760000000, 0))
	addListing(t, repo, "promoted", "Pisică", 44.4, 26.1, active)
	addListing(t, repo, "plain", "Pisică", 44.4, 26.1, domlisting.Promotion{})

	flag, _ := filter.NewMatch("promo_active", "1")
	now := 1750000000.0
	rng, _ := filter.NewRangeFilter(&now, nil, nil, nil)
	expires, _ := filter.NewRange("promo_expires", rng)
	expr := filter.Expression{}.AndNotAll(flag, expires)

	hits, err := repo.Find(context.Background(), expr, order.Recency)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Listing().ID() != "plain" {
		t.Errorf("negated promo group should keep only the unpromoted listing, got %d hits", len(hits))
	}
}

func TestFind_TextScoresTitleHigher(t *testing.T) {
	repo := New()
	repo.Add(
		domlisting.Reconstruct("title-hit", "Câine pierdut", "", "Animale",
			domlisting.Lost, domlisting.Point{}, 0, time.Unix(1750000000, 0),
			time.Time{}, domlisting.Promotion{}, 0, nil),
		domlisting.Reconstruct("body-hit", "Anunț", "am pierdut un câine", "Animale",
			domlisting.Lost, domlisting.Point{}, 0, time.Unix(1750000000, 0),
			time.Time{}, domlisting.Promotion{}, 0, nil),
	)

	text, err := filter.NewText("câine", "title", "content")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{text})

	hits, err := repo.Find(context.Background(), expr, order.Relevance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}

	scores := map[string]float64{}
	for i := range hits {
		scores[hits[i].Listing().ID()] = hits[i].Score()
	}
	if scores["title-hit"] <= scores["body-hit"] {
		t.Errorf("title match should outscore body match: %v", scores)
	}
}
