package intent

import "time"

// Day-count thresholds, first match wins.
const (
	hotDays    = 7
	middleDays = 30
	lowDays    = 90
)

// Classify maps a posting date to an intent level by elapsed days.
func Classify(now time.Time, posted time.Time) Level {
	days := now.Sub(posted).Hours() / 24
	switch {
	case days <= hotDays:
		return LevelHot
	case days <= middleDays:
		return LevelMiddle
	case days <= lowDays:
		return LevelLow
	default:
		return LevelNone
	}
}

// ClassifyWithFallback classifies a possibly-unknown posting date. The
// fallback is the adapter's policy for "posting found, no parseable date";
// the classifier itself has no opinion on nil.
func ClassifyWithFallback(now time.Time, posted *time.Time, fallback Level) Level {
	if posted == nil {
		return fallback
	}
	return Classify(now, *posted)
}
