package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func TestNormalize_Relative(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "3시간 전", want: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)},
		{raw: "3 hours ago", want: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)},
		{raw: "1 hour ago", want: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
		{raw: "15분 전", want: time.Date(2025, 1, 1, 9, 45, 0, 0, time.UTC)},
		{raw: "45 minutes ago", want: time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC)},
		{raw: "2일 전", want: time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)},
		{raw: "2 Days Ago", want: time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)},
		{raw: "연합뉴스 · 5분 전", want: time.Date(2025, 1, 1, 9, 55, 0, 0, time.UTC)},
		{raw: "  0 minutes ago  ", want: now},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Normalize(tt.raw, now)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNormalize_Absolute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "rfc3339 utc", raw: "2025-01-01T07:00:00Z", want: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)},
		{name: "rfc3339 offset", raw: "2025-01-01T10:00:00+09:00", want: time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "isoformat without zone", raw: "2024-12-31T23:30:00", want: time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)},
		{name: "isoformat micros", raw: "2024-12-31T23:30:00.250000", want: time.Date(2024, 12, 31, 23, 30, 0, 250000000, time.UTC)},
		{name: "rfc1123z feed date", raw: "Wed, 01 Jan 2025 09:00:00 +0900", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, now)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNormalize_ZonelessUsesNowLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	ref := now.In(seoul)

	got := Normalize("2025-01-01T09:00:00", ref)
	assert.True(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Equal(got), "got %s", got)
}

func TestNormalize_FallsBackToNow(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"방금 전",
		"yesterday",
		"not a timestamp at all",
		"99999999999999999999 hours ago",
		"9999999999999 days ago",
		"12:",
		"1/",
		"1.2.3.4",
		"0000-01-01T00:00:00Z",
	} {
		t.Run(raw, func(t *testing.T) {
			assert.True(t, now.Equal(Normalize(raw, now)))
		})
	}
}

func TestResolve_Kind(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"3시간 전", Relative},
		{"2 days ago", Relative},
		{"10 minutes ago", Relative},
		{"2025-01-01T10:00:00Z", Absolute},
		{"방금 전", Fallback},
		{"12:", Fallback},
		{"1.2.3.4", Fallback},
		{"whenever", Fallback},
		{"", Fallback},
	}
	for _, tt := range tests {
		_, kind := Resolve(tt.raw, now)
		assert.Equal(t, tt.want, kind, tt.raw)
	}
	assert.Equal(t, "relative", Relative.String())
	assert.Equal(t, "absolute", Absolute.String())
	assert.Equal(t, "fallback", Fallback.String())
}
