package redis

import (
	"testing"

	"github.com/gasit-app/gasit/internal/domain/search/filter"
)

func mustMatch(t *testing.T, key, value string) filter.Condition {
	t.Helper()
	c, err := filter.NewMatch(key, value)
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	return c
}

func TestBuildQuery_Empty(t *testing.T) {
	if got := buildQuery(filter.Expression{}); got != "*" {
		t.Errorf("got %q, want *", got)
	}
}

func TestBuildQuery_TagEscaping(t *testing.T) {
	expr, err := filter.NewExpression([]filter.Condition{
		mustMatch(t, "category", "Acte & documente"),
	})
	if err != nil {
		t.Fatalf("new expression: %v", err)
	}

	got := buildQuery(expr)
	want := `@category:{Acte\ \&\ documente}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_TextAcrossFields(t *testing.T) {
	text, err := filter.NewText("câine pierdut", "title", "content")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{text})

	got := buildQuery(expr)
	want := "@title|content:(câine pierdut)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_TextEscaping(t *testing.T) {
	text, err := filter.NewText(`breloc (albastru) @gara`, "title")
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{text})

	got := buildQuery(expr)
	want := `@title:(breloc \(albastru\) \@gara)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_NumericBounds(t *testing.T) {
	gt := 100.0
	lte := 200.0
	rng, err := filter.NewRangeFilter(&gt, nil, nil, &lte)
	if err != nil {
		t.Fatalf("new range filter: %v", err)
	}
	cond, err := filter.NewRange("created_at", rng)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{cond})

	got := buildQuery(expr)
	want := "@created_at:[(100 200]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_Geo(t *testing.T) {
	cond, err := filter.NewGeoWithin("location", 26.1025, 44.4268, 5)
	if err != nil {
		t.Fatalf("new geo: %v", err)
	}
	expr, _ := filter.NewExpression([]filter.Condition{cond})

	got := buildQuery(expr)
	want := "@location:[26.1025 44.4268 5 km]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_NegatedGroup(t *testing.T) {
	now := 1750000000.0
	active := mustMatch(t, "promo_active", "1")
	rng, _ := filter.NewRangeFilter(&now, nil, nil, nil)
	expires, _ := filter.NewRange("promo_expires", rng)

	base, _ := filter.NewExpression([]filter.Condition{
		mustMatch(t, "status", "lost"),
	})
	expr := base.AndNotAll(active, expires)

	got := buildQuery(expr)
	want := `@status:{lost} -(@promo_active:{1} @promo_expires:[(1.75e+09 +inf])`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_SingleConditionGroupHasNoParens(t *testing.T) {
	solved := mustMatch(t, "status", "solved")
	expr, err := filter.NewExpression(nil, []filter.Condition{solved})
	if err != nil {
		t.Fatalf("new expression: %v", err)
	}

	got := buildQuery(expr)
	want := `-@status:{solved}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
