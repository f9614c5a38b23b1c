package source

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/intentpipe/internal/config"
	"github.com/rs/zerolog"
)

const kyujinboxFixture = `
<!doctype html>
<html>
<body>
  <div class="p-result_card">
    <p class="p-result_title"><a class="p-result_title_link" href="/kd-abc123">社内SEリーダー候補</a></p>
    <p class="p-result_company">株式会社テスト商事</p>
    <p class="p-result_area">東京都港区
リモート可</p>
    <span class="p-result_updatedAt_hyphen">3日前</span>
  </div>
  <div class="p-result_card">
    <p class="p-result_title"><a href="https://example.com/job2">情報システム担当</a></p>
    <p class="p-result_company">山田製作所</p>
    <span class="p-result_updatedAt">今日</span>
  </div>
  <div class="p-result_card">
    <p class="p-result_title"><a href="/no-company">会社名なしの求人</a></p>
  </div>
</body>
</html>`

func testKyujinbox() *Kyujinbox {
	cfg := config.DefaultConfig().Crawl
	k := &Kyujinbox{cfg: cfg, log: zerolog.Nop()}
	k.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return k
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

func TestExtractPostings(t *testing.T) {
	k := testKyujinbox()
	postings := k.extractPostings(mustDoc(t, kyujinboxFixture))

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings (card without company dropped), got %d", len(postings))
	}

	first := postings[0]
	if first.Title != "社内SEリーダー候補" {
		t.Fatalf("Title = %q", first.Title)
	}
	if first.EmployerName != "株式会社テスト商事" {
		t.Fatalf("EmployerName = %q", first.EmployerName)
	}
	if first.LocationText != "東京都港区" {
		t.Fatalf("LocationText = %q, want first line only", first.LocationText)
	}
	if !strings.HasPrefix(first.SourceURL, k.cfg.BaseURL) {
		t.Fatalf("SourceURL = %q, want absolute under base", first.SourceURL)
	}
	if first.DateText != "3日前" {
		t.Fatalf("DateText = %q", first.DateText)
	}
	if first.SourceName != kyujinboxSourceName {
		t.Fatalf("SourceName = %q", first.SourceName)
	}

	second := postings[1]
	if second.SourceURL != "https://example.com/job2" {
		t.Fatalf("absolute hrefs must pass through, got %q", second.SourceURL)
	}
	if second.DateText != "今日" {
		t.Fatalf("fallback date selector failed, DateText = %q", second.DateText)
	}
	if second.LocationText != "" {
		t.Fatalf("missing optional field should be empty, got %q", second.LocationText)
	}
}

func TestExtractPostingsEmptyPage(t *testing.T) {
	k := testKyujinbox()
	postings := k.extractPostings(mustDoc(t, "<html><body><p>該当する求人はありません</p></body></html>"))
	if len(postings) != 0 {
		t.Fatalf("expected no postings, got %d", len(postings))
	}
}

func TestStableCrawlKey(t *testing.T) {
	key := StableCrawlKey("株式会社テスト商事", "社内SE 募集")
	want := "kyujinbox://テスト商事/社内se募集"
	if key != want {
		t.Fatalf("StableCrawlKey = %q, want %q", key, want)
	}

	// Same company and title in different surface forms share a key.
	other := StableCrawlKey("テスト商事 株式会社", "社内SE　募集")
	if key != other {
		t.Fatalf("surface variants should share a key: %q vs %q", key, other)
	}
}

func TestPageURL(t *testing.T) {
	k := testKyujinbox()

	first := k.pageURL("社内SE", 1)
	if strings.Contains(first, "p=") {
		t.Fatalf("page 1 should have no page param: %q", first)
	}
	if !strings.Contains(first, "%E3%81%AE%E4%BB%95%E4%BA%8B") { // の仕事
		t.Fatalf("keyword suffix missing from %q", first)
	}

	third := k.pageURL("社内SE", 3)
	if !strings.HasSuffix(third, "?p=3") {
		t.Fatalf("page 3 URL = %q", third)
	}
}

func TestRawDataCarriesCrawlContext(t *testing.T) {
	k := testKyujinbox()
	postings := k.extractPostings(mustDoc(t, kyujinboxFixture))
	if len(postings) == 0 {
		t.Fatalf("no postings")
	}

	raw := postings[0].RawData
	if raw["location"] != postings[0].LocationText {
		t.Fatalf("raw location = %v", raw["location"])
	}
	if raw["crawled_at"] != "2026-03-15T12:00:00Z" {
		t.Fatalf("crawled_at = %v", raw["crawled_at"])
	}
	if raw["original_url"] != postings[0].SourceURL {
		t.Fatalf("original_url = %v", raw["original_url"])
	}
}
