package utils

import "time"

// Timestamps are stored as epoch seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds returns the zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
