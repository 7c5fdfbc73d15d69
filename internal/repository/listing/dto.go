package listing

import (
	"strconv"
	"strings"
	"time"

	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
)

// imageSeparator joins image URLs into a single hash field. URLs cannot
// contain "|" unescaped, so a plain join is safe.
const imageSeparator = "|"

// toFields flattens a listing into hash fields. Zero-valued optional fields
// (last seen, promotion) are omitted so negated promotion groups match
// listings with no promotion record at all.
func toFields(l *domlisting.Listing) map[string]string {
	fields := map[string]string{
		domlisting.FieldTitle:     l.Title(),
		domlisting.FieldContent:   l.Content(),
		domlisting.FieldCategory:  l.Category(),
		domlisting.FieldStatus:    string(l.Status()),
		domlisting.FieldLocation:  formatPoint(l.Location()),
		domlisting.FieldCreatedAt: strconv.FormatInt(l.CreatedAt().Unix(), 10),
		domlisting.FieldViews:     strconv.FormatInt(l.Views(), 10),
	}

	if l.CircleRadius() > 0 {
		fields[domlisting.FieldCircleRadius] = strconv.FormatFloat(l.CircleRadius(), 'f', -1, 64)
	}
	if !l.LastSeenAt().IsZero() {
		fields[domlisting.FieldLastSeen] = strconv.FormatInt(l.LastSeenAt().Unix(), 10)
	}
	if promo := l.Promotion(); promo.Active() || !promo.ExpiresAt().IsZero() {
		active := "0"
		if promo.Active() {
			active = "1"
		}
		fields[domlisting.FieldPromoActive] = active
		fields[domlisting.FieldPromoExpires] = strconv.FormatInt(promo.ExpiresAt().Unix(), 10)
	}
	if imgs := l.Images(); len(imgs) > 0 {
		fields[domlisting.FieldImages] = strings.Join(imgs, imageSeparator)
	}

	return fields
}

// fromFields rehydrates a listing from hash fields. Unparsable numeric
// fields degrade to zero values rather than failing the whole page.
func fromFields(id string, fields map[string]string) domlisting.Listing {
	var promo domlisting.Promotion
	if _, ok := fields[domlisting.FieldPromoActive]; ok {
		promo = domlisting.NewPromotion(
			fields[domlisting.FieldPromoActive] == "1",
			parseUnix(fields[domlisting.FieldPromoExpires]),
		)
	}

	var images []string
	if raw := fields[domlisting.FieldImages]; raw != "" {
		images = strings.Split(raw, imageSeparator)
	}

	return domlisting.Reconstruct(
		id,
		fields[domlisting.FieldTitle],
		fields[domlisting.FieldContent],
		fields[domlisting.FieldCategory],
		domlisting.Status(fields[domlisting.FieldStatus]),
		parsePoint(fields[domlisting.FieldLocation]),
		parseFloat(fields[domlisting.FieldCircleRadius]),
		parseUnix(fields[domlisting.FieldCreatedAt]),
		parseUnix(fields[domlisting.FieldLastSeen]),
		promo,
		parseInt(fields[domlisting.FieldViews]),
		images,
	)
}

// formatPoint encodes a point as "lon,lat", the GEO field format.
func formatPoint(p domlisting.Point) string {
	return strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64)
}

func parsePoint(s string) domlisting.Point {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return domlisting.Point{}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domlisting.Point{}
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domlisting.Point{}
	}
	return domlisting.Point{Longitude: lon, Latitude: lat}
}

func parseUnix(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil || sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
