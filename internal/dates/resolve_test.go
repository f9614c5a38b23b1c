package dates

import (
	"fmt"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestResolveAbsolute(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"2026年1月15日", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2026/01/15 に掲載", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"掲載日: 2026-1-5", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2025年12月3日の求人", time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got := Resolve(testNow, "", tc.text)
		if got == nil {
			t.Fatalf("Resolve(%q) = nil, want %v", tc.text, tc.want)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("Resolve(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestResolveAbsoluteIndependentOfNow(t *testing.T) {
	text := "2026年1月15日"
	a := Resolve(testNow, "", text)
	b := Resolve(testNow.AddDate(1, 2, 3), "", text)
	if a == nil || b == nil || !a.Equal(*b) {
		t.Fatalf("absolute resolution should not depend on now: %v vs %v", a, b)
	}
}

func TestResolveRelative(t *testing.T) {
	cases := []struct {
		text     string
		wantDays int
	}{
		{"今日", 0},
		{"本日掲載", 0},
		{"たった今", 0},
		{"新着", 0},
		{"3時間前", 0},
		{"5日前", 5},
		{"＋14日前", 14},
		{"2週間前", 14},
		{"3週間前", 21},
	}

	for _, tc := range cases {
		got := Resolve(testNow, "", tc.text)
		if got == nil {
			t.Fatalf("Resolve(%q) = nil", tc.text)
		}
		want := testNow.AddDate(0, 0, -tc.wantDays)
		if !got.Equal(want) {
			t.Fatalf("Resolve(%q) = %v, want %v", tc.text, got, want)
		}
	}
}

func TestResolveWeeksAgoDelta(t *testing.T) {
	for n := 1; n <= 8; n++ {
		got := Resolve(testNow, "", fmt.Sprintf("%d週間前", n))
		if got == nil {
			t.Fatalf("Resolve(%d週間前) = nil", n)
		}
		if delta := testNow.Sub(*got); delta != time.Duration(7*n)*24*time.Hour {
			t.Fatalf("Resolve(%d週間前): delta = %v, want %d days", n, delta, 7*n)
		}
	}
}

func TestResolveMonthsAgoCalendar(t *testing.T) {
	got := Resolve(testNow, "", "2ヶ月前")
	if got == nil {
		t.Fatalf("Resolve(2ヶ月前) = nil")
	}
	want := testNow.AddDate(0, -2, 0)
	if !got.Equal(want) {
		t.Fatalf("Resolve(2ヶ月前) = %v, want calendar subtraction %v", got, want)
	}

	for _, variant := range []string{"1か月前", "1ヶ月前", "1ケ月前", "1カ月前"} {
		got := Resolve(testNow, "", variant)
		if got == nil || !got.Equal(testNow.AddDate(0, -1, 0)) {
			t.Fatalf("Resolve(%q) = %v, want one calendar month back", variant, got)
		}
	}
}

func TestResolveStructuredHintFirst(t *testing.T) {
	cases := []string{
		"2026-01-15",
		"2026-01-15T09:30:00Z",
		"Jan 15, 2026",
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, hint := range cases {
		got := Resolve(testNow, hint, "")
		if got == nil {
			t.Fatalf("Resolve(hint=%q) = nil", hint)
		}
		if got.Year() != want.Year() || got.Month() != want.Month() || got.Day() != want.Day() {
			t.Fatalf("Resolve(hint=%q) = %v, want %v", hint, got, want)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, text := range []string{"", "正社員", "東京都港区", "随時募集"} {
		if got := Resolve(testNow, "", text); got != nil {
			t.Fatalf("Resolve(%q) = %v, want nil", text, got)
		}
	}
}
