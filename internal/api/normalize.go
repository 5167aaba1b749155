package api

import (
	"fmt"
	"html"
	"strings"
	"time"

	"trackmon/internal/models"
)

// openMarker is the literal suffix opentrackers.org puts on limited-signup
// announcement titles. Matching is case-sensitive on purpose; the site is
// consistent about it and a looser match would mangle unrelated titles.
const openMarker = "is Open for Limited Signup!"

// parseTitle decodes HTML entities in a raw post title and derives the
// tracker name and signup status. Neither source carries an explicit closed
// signal, so status is open whether or not the marker is present; the marker
// is stripped from the name when found. fallback is used when stripping
// leaves nothing (a title that is only the marker phrase, or no title at
// all).
func parseTitle(raw, fallback string) (string, models.Status) {
	title := strings.TrimSpace(html.UnescapeString(raw))
	name := strings.TrimSpace(strings.ReplaceAll(title, openMarker, ""))
	if name == "" {
		name = fallback
	}
	return name, models.StatusOpen
}

// wordPressDateLayouts covers the two shapes the WordPress REST API emits: a
// full RFC3339 stamp (trailing Z meaning UTC) and the zone-less local form,
// which is treated as UTC.
var wordPressDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseWordPressDate(raw string) (time.Time, error) {
	for _, layout := range wordPressDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// epochToUTC converts Reddit's created_utc seconds to a UTC time, falling
// back to the current time when the field is absent or zero.
func epochToUTC(seconds float64) time.Time {
	if seconds <= 0 {
		return time.Now().UTC()
	}
	return time.Unix(int64(seconds), 0).UTC()
}
