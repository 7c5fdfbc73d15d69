// Package query validates raw search parameters into a typed Query.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/pkg/validator"
)

// Pagination limits.
const (
	DefaultLimit = 12
	MaxLimit     = 50
)

// Geo is the validated lat/lon/radius triple. The radius belongs to the
// query, not to any listing.
type Geo struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Query is a validated search parameter set.
type Query struct {
	text         string
	category     string
	status       listing.Status
	geo          *Geo
	periodMonths int
	skip         int
	limit        int
}

// Text returns the full-text query ("" when absent).
func (q *Query) Text() string { return q.text }

// HasText reports whether a full-text query is present.
func (q *Query) HasText() bool { return q.text != "" }

// Category returns the category filter ("" when absent).
func (q *Query) Category() string { return q.category }

// Status returns the status filter ("" when absent, meaning both lost and found).
func (q *Query) Status() listing.Status { return q.status }

// Geo returns the geo triple (nil when absent).
func (q *Query) Geo() *Geo { return q.geo }

// PeriodMonths returns the lookback window in months (0 when absent).
func (q *Query) PeriodMonths() int { return q.periodMonths }

// Skip returns the pagination offset.
func (q *Query) Skip() int { return q.skip }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// FieldError attributes one validation failure to its input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every constraint violation found in a parameter
// set, so callers can render all inline messages at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid search parameters: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// bounds holds the numeric parameters for range validation.
type bounds struct {
	Lat    *float64 `validate:"omitempty,lat"`
	Lon    *float64 `validate:"omitempty,lng"`
	Radius *float64 `validate:"omitempty,gt=0"`
	Period *int     `validate:"omitempty,gt=0"`
	Skip   int      `validate:"gte=0"`
}

// Parse converts raw query-string parameters into a Query. It does not fail
// fast: every violated constraint contributes one FieldError. Unknown keys
// are ignored. Category values are passed through unchecked; the store
// simply matches nothing for an unknown category.
func Parse(params map[string]string) (Query, error) {
	ve := &ValidationError{}

	q := Query{
		text:     strings.TrimSpace(params["query"]),
		category: strings.TrimSpace(params["category"]),
		limit:    DefaultLimit,
	}

	q.status = parseStatus(params["status"], ve)

	var b bounds
	b.Lat = parseFloat(params, "lat", ve)
	b.Lon = parseFloat(params, "lon", ve)
	b.Radius = parseFloat(params, "radius", ve)
	b.Period = parseInt(params, "period", ve)

	if skip := parseInt(params, "skip", ve); skip != nil {
		b.Skip = *skip
		q.skip = *skip
	}

	if limit := parseInt(params, "limit", ve); limit != nil {
		switch {
		case *limit <= 0:
			ve.add("limit", "limit must be a positive integer")
		case *limit > MaxLimit:
			q.limit = MaxLimit
		default:
			q.limit = *limit
		}
	}

	checkBounds(b, ve)

	// lat, lon and radius form a unit: all three or none.
	present := 0
	for _, v := range []*float64{b.Lat, b.Lon, b.Radius} {
		if v != nil {
			present++
		}
	}
	switch present {
	case 0:
	case 3:
		q.geo = &Geo{Latitude: *b.Lat, Longitude: *b.Lon, RadiusKm: *b.Radius}
	default:
		ve.add("radius", "lat, lon and radius must be provided together")
	}

	if b.Period != nil {
		q.periodMonths = *b.Period
	}

	if len(ve.Fields) > 0 {
		return Query{}, ve
	}
	return q, nil
}

// parseStatus applies the single-status rule: invalid elements are dropped,
// and the remainder must contain exactly one searchable status. An empty
// input means no filter.
func parseStatus(raw string, ve *ValidationError) listing.Status {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var valid []listing.Status
	for _, part := range strings.Split(raw, ",") {
		s := listing.Status(strings.TrimSpace(part))
		if s.IsSearchable() {
			valid = append(valid, s)
		}
	}

	switch len(valid) {
	case 0:
		ve.add("status", "status must be lost or found")
	case 1:
		return valid[0]
	default:
		ve.add("status", "at most one status may be selected")
	}
	return ""
}

func parseFloat(params map[string]string, key string, ve *ValidationError) *float64 {
	raw, ok := params[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		ve.add(key, fmt.Sprintf("%s must be a number", key))
		return nil
	}
	return &v
}

func parseInt(params map[string]string, key string, ve *ValidationError) *int {
	raw, ok := params[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		ve.add(key, fmt.Sprintf("%s must be an integer", key))
		return nil
	}
	return &v
}

// checkBounds runs range validation and merges violations into ve.
func checkBounds(b bounds, ve *ValidationError) {
	err := validator.ValidateStruct(b)
	if err == nil {
		return
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		ve.add("query", "invalid search parameters")
		return
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "Lat":
			ve.add("lat", "lat must be between -90 and 90")
		case "Lon":
			ve.add("lon", "lon must be between -180 and 180")
		case "Radius":
			ve.add("radius", "radius must be a positive number")
		case "Period":
			ve.add("period", "period must be a positive number of months")
		case "Skip":
			ve.add("skip", "skip must be a non-negative integer")
		}
	}
}
