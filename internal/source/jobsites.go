package source

import (
	"net/url"
	"strings"
)

// Known job-board domains; a search result from any of these counts as a
// hiring signal regardless of its title.
var jobDomains = []string{
	"doda.jp", "rikunabi.com", "mynavi.jp", "en-japan.com",
	"recruit.co.jp", "green-japan.com", "type.jp", "indeed.com",
	"wantedly.com", "linkedin.com", "jac-recruitment.jp",
	"careerindex.jp", "job.mynavi.jp", "employment.en-japan.com",
	"tenshoku.mynavi.jp", "mid-tenshoku.com", "openwork.jp",
	"career.levtech.jp", "bizreach.jp",
}

// Title keywords that mark a result as job-related when the domain is not
// a known job board.
var jobTitleKeywords = []string{
	"求人", "採用", "募集", "転職", "キャリア", "仕事",
	"応募", "中途", "新卒", "job", "career", "recruit",
	"社内se", "情報システム", "エンジニア",
}

// Friendly display names for common job boards.
var sourceNamesByHost = map[string]string{
	"doda.jp":                 "doda",
	"rikunabi.com":            "リクナビ",
	"mynavi.jp":               "マイナビ",
	"tenshoku.mynavi.jp":      "マイナビ転職",
	"en-japan.com":            "エン転職",
	"employment.en-japan.com": "エン転職",
	"green-japan.com":         "Green",
	"type.jp":                 "type",
	"indeed.com":              "Indeed",
	"jp.indeed.com":           "Indeed",
	"wantedly.com":            "Wantedly",
	"linkedin.com":            "LinkedIn",
	"bizreach.jp":             "ビズリーチ",
	"openwork.jp":             "OpenWork",
	"careerindex.jp":          "キャリアインデックス",
}

// isJobRelated filters search results down to plausible hiring signals:
// either the URL is on a job-board domain or the title carries a
// job-related keyword.
func isJobRelated(link, title string) bool {
	lowerLink := strings.ToLower(link)
	for _, domain := range jobDomains {
		if strings.Contains(lowerLink, domain) {
			return true
		}
	}

	lowerTitle := strings.ToLower(title)
	for _, keyword := range jobTitleKeywords {
		if strings.Contains(lowerTitle, keyword) {
			return true
		}
	}

	return false
}

// sourceNameFromURL maps a result URL to a display name, falling back to
// the bare hostname.
func sourceNameFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return "不明"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if name, ok := sourceNamesByHost[host]; ok {
		return name
	}
	return host
}
