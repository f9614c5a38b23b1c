package intent

import "time"

// Summary is the per-company reduction of one run's matched postings.
type Summary struct {
	BestLevel  Level
	LatestDate *time.Time
	Count      int
}

// Aggregate reduces resolved posting dates (nil = unknown) into a single
// summary: the highest-priority level, the latest non-nil date, and the
// posting count. Pure and order-independent; empty input yields none.
func Aggregate(now time.Time, postedDates []*time.Time, fallback Level) Summary {
	summary := Summary{BestLevel: LevelNone, Count: len(postedDates)}

	for _, posted := range postedDates {
		level := ClassifyWithFallback(now, posted, fallback)
		if level > summary.BestLevel {
			summary.BestLevel = level
		}
		if posted != nil && (summary.LatestDate == nil || posted.After(*summary.LatestDate)) {
			d := *posted
			summary.LatestDate = &d
		}
	}

	return summary
}
