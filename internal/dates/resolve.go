// Package dates resolves heterogeneous date hints from job postings into
// calendar dates. A nil result means "unknown", which callers must treat
// as distinct from "today".
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Structured hints are tried against these layouts before any text scan.
var hintLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02T15:04:05-0700",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Absolute patterns, scanned in order; first match wins.
var absolutePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`),
	regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`),
	regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
}

var (
	daysAgoPattern   = regexp.MustCompile(`(\d+)\s*日前`)
	hoursAgoPattern  = regexp.MustCompile(`(\d+)\s*時間前`)
	weeksAgoPattern  = regexp.MustCompile(`(\d+)\s*週間前`)
	monthsAgoPattern = regexp.MustCompile(`(\d+)\s*(?:か|ヶ|ケ|カ)月前`)
)

var todayPhrases = []string{"今日", "本日", "たった今"}

// Resolve parses a posting date from a structured hint and/or free text.
// The hint is tried first against known layouts; the text is then scanned
// for absolute patterns, then relative phrases. Returns nil when nothing
// matches.
func Resolve(now time.Time, hint string, text string) *time.Time {
	if hint != "" {
		for _, layout := range hintLayouts {
			if ts, err := time.Parse(layout, strings.TrimSpace(hint)); err == nil {
				return &ts
			}
		}
		// Unparseable hints fall through to the text scan; hints like
		// "3 days ago" carry a usable relative phrase in some locales.
		text = hint + " " + text
	}

	cleaned := strings.NewReplacer("+", "", "＋", "").Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return nil
	}

	if d := resolveAbsolute(cleaned, now.Location()); d != nil {
		return d
	}
	return resolveRelative(now, cleaned)
}

func resolveAbsolute(text string, loc *time.Location) *time.Time {
	for _, pattern := range absolutePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		return &d
	}
	return nil
}

func resolveRelative(now time.Time, text string) *time.Time {
	for _, phrase := range todayPhrases {
		if strings.Contains(text, phrase) {
			return &now
		}
	}
	if text == "新着" {
		return &now
	}

	if m := hoursAgoPattern.FindStringSubmatch(text); m != nil {
		// Hour granularity rounds to today.
		return &now
	}
	if m := daysAgoPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		d := now.AddDate(0, 0, -n)
		return &d
	}
	if m := weeksAgoPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		d := now.AddDate(0, 0, -7*n)
		return &d
	}
	if m := monthsAgoPattern.FindStringSubmatch(text); m != nil {
		// Calendar-month subtraction, not a fixed 30 days.
		n, _ := strconv.Atoi(m[1])
		d := now.AddDate(0, -n, 0)
		return &d
	}

	return nil
}
