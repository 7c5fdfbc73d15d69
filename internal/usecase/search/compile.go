package search

import (
	"fmt"
	"time"

	"github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/filter"
	"github.com/gasit-app/gasit/internal/domain/search/order"
	"github.com/gasit-app/gasit/internal/domain/search/query"
)

// compileBase maps a validated query onto the store predicate shared by both
// tiers and the count query, plus the within-tier sort order. Solved listings
// are always excluded; every other clause is added only when the query
// carries the corresponding filter.
func compileBase(q *query.Query, now time.Time) (filter.Expression, order.Order, error) {
	var conds []filter.Condition

	solved, err := filter.NewMatch(listing.FieldStatus, string(listing.Solved))
	if err != nil {
		return filter.Expression{}, "", fmt.Errorf("compile status exclusion: %w", err)
	}

	ord := order.Recency
	if q.HasText() {
		text, err := filter.NewText(q.Text(), listing.FieldTitle, listing.FieldContent)
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile text clause: %w", err)
		}
		conds = append(conds, text)
		ord = order.Relevance
	}

	if q.Category() != "" {
		cat, err := filter.NewMatch(listing.FieldCategory, q.Category())
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile category clause: %w", err)
		}
		conds = append(conds, cat)
	}

	if q.Status() != "" {
		st, err := filter.NewMatch(listing.FieldStatus, string(q.Status()))
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile status clause: %w", err)
		}
		conds = append(conds, st)
	}

	if g := q.Geo(); g != nil {
		geo, err := filter.NewGeoWithin(listing.FieldLocation, g.Longitude, g.Latitude, g.RadiusKm)
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile geo clause: %w", err)
		}
		conds = append(conds, geo)
	}

	if months := q.PeriodMonths(); months > 0 {
		since := float64(now.AddDate(0, -months, 0).Unix())
		rng, err := filter.NewRangeFilter(nil, &since, nil, nil)
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile period range: %w", err)
		}
		period, err := filter.NewRange(listing.FieldCreatedAt, rng)
		if err != nil {
			return filter.Expression{}, "", fmt.Errorf("compile period clause: %w", err)
		}
		conds = append(conds, period)
	}

	expr, err := filter.NewExpression(conds, []filter.Condition{solved})
	if err != nil {
		return filter.Expression{}, "", fmt.Errorf("compile expression: %w", err)
	}
	return expr, ord, nil
}

// promotionConditions returns the clauses defining "currently promoted":
// the active flag is set and the expiry lies in the future. Both tier
// queries derive from this single definition; the regular tier negates the
// whole group, which also covers listings with no promotion record at all.
func promotionConditions(now time.Time) ([]filter.Condition, error) {
	active, err := filter.NewMatch(listing.FieldPromoActive, "1")
	if err != nil {
		return nil, fmt.Errorf("compile promotion flag: %w", err)
	}

	nowUnix := float64(now.Unix())
	rng, err := filter.NewRangeFilter(&nowUnix, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("compile promotion expiry range: %w", err)
	}
	expires, err := filter.NewRange(listing.FieldPromoExpires, rng)
	if err != nil {
		return nil, fmt.Errorf("compile promotion expiry clause: %w", err)
	}

	return []filter.Condition{active, expires}, nil
}
