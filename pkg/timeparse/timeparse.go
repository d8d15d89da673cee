// Package timeparse turns the timestamps attached to collected articles into
// absolute instants.
//
// Search result pages report publication times either as absolute dates or as
// relative phrases ("3시간 전", "3 hours ago"). Relative phrases are resolved
// against an explicit reference instant so results stay reproducible.
package timeparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	koreanRelative  = regexp.MustCompile(`(\d+)\s*(분|시간|일)\s*전`)
	englishRelative = regexp.MustCompile(`(?i)(\d+)\s*(minute|hour|day)s?\s+ago`)
)

// minYear is the earliest year an absolute timestamp may carry. dateparse
// reads fragments such as "12:" or "1.2.3.4" as dates in year 0.
const minYear = 1900

var units = map[string]time.Duration{
	"분":      time.Minute,
	"시간":     time.Hour,
	"일":      24 * time.Hour,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

// Kind tells how Resolve interpreted a timestamp.
type Kind int

const (
	// Fallback means the input was not understood and now was used.
	Fallback Kind = iota
	Relative
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return "fallback"
}

// Normalize resolves raw to an instant. Relative phrases are subtracted from
// now; absolute timestamps are parsed as written, with zone-less values read
// in now's location. Anything unrecognised yields now.
func Normalize(raw string, now time.Time) time.Time {
	t, _ := Resolve(raw, now)
	return t
}

// Resolve is Normalize that also reports how raw was read.
func Resolve(raw string, now time.Time) (time.Time, Kind) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, Fallback
	}

	if t, ok := relative(raw, now); ok {
		return t, Relative
	}

	t, err := dateparse.ParseIn(raw, now.Location())
	if err != nil || t.Year() < minYear {
		return now, Fallback
	}
	return t, Absolute
}

func match(raw string) []string {
	if m := koreanRelative.FindStringSubmatch(raw); m != nil {
		return m
	}
	return englishRelative.FindStringSubmatch(raw)
}

// relative reports ok for any matched phrase; quantities too large to
// subtract resolve to now.
func relative(raw string, now time.Time) (time.Time, bool) {
	m := match(raw)
	if m == nil {
		return time.Time{}, false
	}

	unit := units[strings.ToLower(m[2])]
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return now, true
	}
	return now.Add(-time.Duration(n) * unit), true
}
