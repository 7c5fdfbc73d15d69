package filter

import "testing"

func f64(v float64) *float64 { return &v }

func TestNewExpression_EmptyNegatedGroup(t *testing.T) {
	_, err := NewExpression(nil, nil)
	if err == nil {
		t.Fatal("expected error for empty negated group")
	}
}

func TestAnd_DoesNotMutateReceiver(t *testing.T) {
	match, err := NewMatch("status", "lost")
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	base, err := NewExpression([]Condition{match})
	if err != nil {
		t.Fatalf("new expression: %v", err)
	}

	extra, _ := NewMatch("category", "Animale")
	extended := base.And(extra)

	if len(base.Must()) != 1 {
		t.Errorf("base must grew to %d", len(base.Must()))
	}
	if len(extended.Must()) != 2 {
		t.Errorf("extended must: got %d, want 2", len(extended.Must()))
	}
}

func TestAndNotAll_AppendsGroup(t *testing.T) {
	solved, _ := NewMatch("status", "solved")
	base, err := NewExpression(nil, []Condition{solved})
	if err != nil {
		t.Fatalf("new expression: %v", err)
	}

	active, _ := NewMatch("promo_active", "1")
	extended := base.AndNotAll(active)

	if len(base.NotAll()) != 1 {
		t.Errorf("base notAll grew to %d", len(base.NotAll()))
	}
	if len(extended.NotAll()) != 2 {
		t.Errorf("extended notAll: got %d, want 2", len(extended.NotAll()))
	}
}

func TestConditionConstructors_Validation(t *testing.T) {
	if _, err := NewMatch("", "x"); err == nil {
		t.Error("match without key should fail")
	}
	if _, err := NewMatch("status", ""); err == nil {
		t.Error("match without value should fail")
	}
	if _, err := NewText("", "title"); err == nil {
		t.Error("text without query should fail")
	}
	if _, err := NewText("câine"); err == nil {
		t.Error("text without fields should fail")
	}
	if _, err := NewGeoWithin("location", 26.1, 44.4, 0); err == nil {
		t.Error("geo with zero radius should fail")
	}
}

func TestNewRangeFilter(t *testing.T) {
	if _, err := NewRangeFilter(nil, nil, nil, nil); err == nil {
		t.Error("range without boundaries should fail")
	}
	if _, err := NewRangeFilter(f64(1), f64(1), nil, nil); err == nil {
		t.Error("gt and gte together should fail")
	}
	if _, err := NewRangeFilter(nil, nil, f64(1), f64(1)); err == nil {
		t.Error("lt and lte together should fail")
	}
}

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		v    float64
		want bool
	}{
		{"gt excludes boundary", mustRange(t, f64(10), nil, nil, nil), 10, false},
		{"gt above boundary", mustRange(t, f64(10), nil, nil, nil), 10.5, true},
		{"gte includes boundary", mustRange(t, nil, f64(10), nil, nil), 10, true},
		{"lt excludes boundary", mustRange(t, nil, nil, f64(10), nil), 10, false},
		{"lte includes boundary", mustRange(t, nil, nil, nil, f64(10)), 10, true},
		{"window hit", mustRange(t, nil, f64(1), nil, f64(5)), 3, true},
		{"window miss", mustRange(t, nil, f64(1), nil, f64(5)), 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.v); got != tt.want {
				t.Errorf("Contains(%g): got %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func mustRange(t *testing.T, gt, gte, lt, lte *float64) Range {
	t.Helper()
	r, err := NewRangeFilter(gt, gte, lt, lte)
	if err != nil {
		t.Fatalf("new range filter: %v", err)
	}
	return r
}
