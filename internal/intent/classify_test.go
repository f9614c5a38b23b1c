package intent

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		days int
		want Level
	}{
		{0, LevelHot},
		{7, LevelHot},
		{8, LevelMiddle},
		{30, LevelMiddle},
		{31, LevelLow},
		{90, LevelLow},
		{91, LevelNone},
		{365, LevelNone},
	}

	for _, tc := range cases {
		got := Classify(testNow, daysAgo(tc.days))
		if got != tc.want {
			t.Fatalf("Classify(%d days ago) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := LevelHot
	for days := 0; days <= 120; days++ {
		got := Classify(testNow, daysAgo(days))
		if got > prev {
			t.Fatalf("classification increased at %d days: %v > %v", days, got, prev)
		}
		prev = got
	}
}

func TestClassifyWithFallback(t *testing.T) {
	if got := ClassifyWithFallback(testNow, nil, LevelLow); got != LevelLow {
		t.Fatalf("nil date with low fallback = %v, want low", got)
	}
	if got := ClassifyWithFallback(testNow, nil, LevelNone); got != LevelNone {
		t.Fatalf("nil date with none fallback = %v, want none", got)
	}
	d := daysAgo(3)
	if got := ClassifyWithFallback(testNow, &d, LevelNone); got != LevelHot {
		t.Fatalf("recent date should ignore fallback, got %v", got)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelHot:    "hot",
		LevelMiddle: "middle",
		LevelLow:    "low",
		LevelNone:   "none",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
