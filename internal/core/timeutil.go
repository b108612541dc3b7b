package core

import (
	"fmt"
	"time"
)

// FormatDuration renders seconds as HH:MM:SS, ignoring sign.
func FormatDuration(secs int64) string {
	if secs < 0 {
		secs = -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatSigned is FormatDuration with an explicit sign for non-zero
// values.
func FormatSigned(secs int64) string {
	switch {
	case secs > 0:
		return "+" + FormatDuration(secs)
	case secs < 0:
		return "-" + FormatDuration(secs)
	}
	return FormatDuration(0)
}

// FormatCompact renders seconds as "Xh YYm", or "Ym" under an hour.
func FormatCompact(secs int64) string {
	if secs < 0 {
		secs = -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatShort renders seconds as "YmZZs", or "Zs" under a minute.
func FormatShort(secs int64) string {
	if secs < 0 {
		secs = -secs
	}
	m := secs / 60
	s := secs % 60
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// timestampLayouts is tried in order: ISO/RFC forms first, then the
// regional dd/mm/yyyy fallback used by older exports.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006, 15:04:05",
	"02/01/2006, 15:04",
}

// ParseTimestamp parses a timestamp string, returning ok=false when no
// known layout matches. Callers must treat a false result as absence of
// a valid time, never as an error.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ClockTime renders seconds-since-midnight as HH:MM, wrapping modulo
// 24h so negative and overflowing values stay on the clock face.
func ClockTime(secs int64) string {
	const day = 24 * 3600
	secs = ((secs % day) + day) % day
	return fmt.Sprintf("%02d:%02d", secs/3600, (secs%3600)/60)
}

// secondsOfDay extracts the local seconds-since-midnight of t.
func secondsOfDay(t time.Time) int64 {
	return int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
}
