package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured store predicate: a conjunction of conditions,
// optionally with negated condition groups (NOT (a AND b)).
type Expression struct {
	must   []Condition
	notAll [][]Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must []Condition, notAll ...[]Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many conditions (max %d)", MaxConditionsPerGroup)
	}
	for _, group := range notAll {
		if len(group) == 0 {
			return Expression{}, fmt.Errorf("empty negated group")
		}
		if len(group) > MaxConditionsPerGroup {
			return Expression{}, fmt.Errorf("too many conditions in negated group (max %d)", MaxConditionsPerGroup)
		}
	}
	return Expression{must: must, notAll: notAll}, nil
}

// And returns a copy of the expression with extra conditions appended.
func (e Expression) And(conds ...Condition) Expression {
	must := make([]Condition, 0, len(e.must)+len(conds))
	must = append(must, e.must...)
	must = append(must, conds...)
	return Expression{must: must, notAll: e.notAll}
}

// AndNotAll returns a copy of the expression with a negated condition group
// appended: documents matching every condition in the group are excluded.
func (e Expression) AndNotAll(group ...Condition) Expression {
	notAll := make([][]Condition, 0, len(e.notAll)+1)
	notAll = append(notAll, e.notAll...)
	notAll = append(notAll, group)
	return Expression{must: e.must, notAll: notAll}
}

// Must returns the conjunction conditions.
func (e Expression) Must() []Condition { return e.must }

// NotAll returns the negated condition groups.
func (e Expression) NotAll() [][]Condition { return e.notAll }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.notAll) == 0
}

// Kind discriminates condition variants.
type Kind int

const (
	// KindMatch is an exact tag match.
	KindMatch Kind = iota
	// KindRange is a numeric range.
	KindRange
	// KindText is a full-text match across one or more text fields.
	KindText
	// KindGeo is a "within radius of point" predicate.
	KindGeo
)

// Condition is a single filter clause.
type Condition struct {
	kind      Kind
	key       string
	match     string
	rangeExpr *Range
	textKeys  []string
	textQuery string
	geo       *GeoWithin
}

// GeoWithin restricts a geo field to a circle around a point. RadiusKm is the
// search radius in kilometers; the boundary is inclusive.
type GeoWithin struct {
	Longitude float64
	Latitude  float64
	RadiusKm  float64
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: KindMatch, key: key, match: match}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: KindRange, key: key, rangeExpr: &r}, nil
}

// NewText creates a full-text match condition over the given text fields.
func NewText(query string, keys ...string) (Condition, error) {
	if query == "" {
		return Condition{}, fmt.Errorf("text query is required")
	}
	if len(keys) == 0 {
		return Condition{}, fmt.Errorf("at least one text field is required")
	}
	return Condition{kind: KindText, textKeys: keys, textQuery: query}, nil
}

// NewGeoWithin creates a geo radius condition.
func NewGeoWithin(key string, lon, lat, radiusKm float64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if radiusKm <= 0 {
		return Condition{}, fmt.Errorf("radius must be positive for key %q", key)
	}
	return Condition{kind: KindGeo, key: key, geo: &GeoWithin{Longitude: lon, Latitude: lat, RadiusKm: radiusKm}}, nil
}

// Kind returns the condition variant.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name (empty for text conditions).
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// TextKeys returns the text fields searched by a text condition.
func (c Condition) TextKeys() []string { return c.textKeys }

// TextQuery returns the full-text query of a text condition.
func (c Condition) TextQuery() string { return c.textQuery }

// Geo returns the geo radius parameters.
func (c Condition) Geo() *GeoWithin { return c.geo }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether v satisfies the range.
func (r Range) Contains(v float64) bool {
	if r.gt != nil && v <= *r.gt {
		return false
	}
	if r.gte != nil && v < *r.gte {
		return false
	}
	if r.lt != nil && v >= *r.lt {
		return false
	}
	if r.lte != nil && v > *r.lte {
		return false
	}
	return true
}
