package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/intentpipe/internal/config"
	"github.com/jimezsa/intentpipe/internal/intent"
	"github.com/jimezsa/intentpipe/internal/models"
	"github.com/jimezsa/intentpipe/internal/namematch"
	"github.com/jimezsa/intentpipe/internal/network"
	"github.com/rs/zerolog"
)

const kyujinboxSourceName = "求人ボックス"

// Selector priority lists per field. The site has no versioned API; this
// is the single boundary coupled to its markup.
var (
	kyujinboxCardSelectors     = []string{".p-result_card", "[class*='p-result_card']"}
	kyujinboxTitleSelectors    = []string{".p-result_title_link", ".p-result_title a"}
	kyujinboxCompanySelectors  = []string{".p-result_company", ".p-result_company a"}
	kyujinboxLinkSelectors     = []string{"a.p-result_title_link", ".p-result_title a"}
	kyujinboxLocationSelectors = []string{".p-result_info", ".p-result_area"}
	kyujinboxDateSelectors     = []string{".p-result_updatedAt_hyphen", "[class*='updatedAt']"}
)

// Kyujinbox crawls paginated search results of the 求人ボックス job
// aggregator for each configured keyword.
type Kyujinbox struct {
	client *network.Client
	cfg    config.CrawlConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewKyujinbox(client *network.Client, cfg config.CrawlConfig, logger zerolog.Logger) *Kyujinbox {
	return &Kyujinbox{
		client: client,
		cfg:    cfg,
		log:    logger.With().Str("source", SourceKyujinbox).Logger(),
		now:    time.Now,
	}
}

func (k *Kyujinbox) Name() string {
	return SourceKyujinbox
}

// FallbackLevel treats a posting that appeared in live results but has no
// parseable date as still recent-looking.
func (k *Kyujinbox) FallbackLevel() intent.Level {
	return intent.LevelLow
}

// Produce crawls every configured keyword and returns postings deduplicated
// by (employer, title) across the whole run.
func (k *Kyujinbox) Produce(ctx context.Context) ([]models.RawPosting, error) {
	var all []models.RawPosting
	seen := map[string]struct{}{}

	for _, keyword := range k.cfg.Keywords {
		if ctx.Err() != nil {
			return all, ctx.Err()
		}

		postings := k.crawlKeyword(ctx, keyword)

		added := 0
		for _, p := range postings {
			key := p.EmployerName + "|" + p.Title
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, p)
			added++
		}
		k.log.Info().Str("keyword", keyword).
			Int("postings", len(postings)).Int("new", added).
			Msg("keyword done")

		k.client.Throttle(ctx, k.cfg.PageDelay, k.cfg.PageJitter)
	}

	return all, nil
}

// crawlKeyword walks result pages until the page limit or an empty page.
// A failed page fetch is retried once after a fixed backoff, then skipped.
func (k *Kyujinbox) crawlKeyword(ctx context.Context, keyword string) []models.RawPosting {
	var postings []models.RawPosting
	seen := map[string]struct{}{}

	for page := 1; page <= k.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		target := k.pageURL(keyword, page)
		k.log.Debug().Str("keyword", keyword).Int("page", page).Str("url", target).Msg("fetching page")

		var doc *goquery.Document
		err := network.Retry(ctx, k.cfg.RetryBackoff, func() error {
			var fetchErr error
			doc, fetchErr = fetchDocument(ctx, k.client, target, nil)
			return fetchErr
		})
		if err != nil {
			k.log.Warn().Err(err).Str("keyword", keyword).Int("page", page).Msg("page fetch failed, skipping")
			continue
		}

		pagePostings := k.extractPostings(doc)
		if len(pagePostings) == 0 {
			k.log.Debug().Str("keyword", keyword).Int("page", page).Msg("no result cards, stopping keyword")
			break
		}

		for _, p := range pagePostings {
			key := p.EmployerName + "|" + p.Title
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			postings = append(postings, p)
		}

		if page < k.cfg.MaxPages {
			k.client.Throttle(ctx, k.cfg.PageDelay, k.cfg.PageJitter)
		}
	}

	return postings
}

func (k *Kyujinbox) pageURL(keyword string, page int) string {
	path := fmt.Sprintf("%s/%s", k.cfg.BaseURL, url.PathEscape(keyword+"の仕事"))
	if page > 1 {
		return fmt.Sprintf("%s?p=%d", path, page)
	}
	return path
}

// extractPostings pulls result cards out of one page. Missing optional
// fields become empty strings; cards without a title or employer are
// dropped.
func (k *Kyujinbox) extractPostings(doc *goquery.Document) []models.RawPosting {
	var postings []models.RawPosting
	crawledAt := k.now().Format(time.RFC3339)

	doc.Find(joinSelectors(kyujinboxCardSelectors)).Each(func(_ int, card *goquery.Selection) {
		title := firstText(card, kyujinboxTitleSelectors...)
		company := firstText(card, kyujinboxCompanySelectors...)
		if title == "" || company == "" {
			return
		}

		link := firstAttr(card, "href", kyujinboxLinkSelectors...)
		link = absoluteURL(k.cfg.BaseURL, link)

		location := truncate(cleanText(firstLine(firstRawText(card, kyujinboxLocationSelectors...))), 100)
		dateText := firstText(card, kyujinboxDateSelectors...)

		postings = append(postings, models.RawPosting{
			Title:        title,
			EmployerName: company,
			LocationText: location,
			SourceURL:    link,
			SourceName:   kyujinboxSourceName,
			DateText:     dateText,
			// Result URLs are redirect links that change between
			// crawls; the synthetic key is the stable identity.
			StableKey: StableCrawlKey(company, title),
			RawData: map[string]any{
				"original_url": link,
				"location":     location,
				"crawled_at":   crawledAt,
			},
		})
	})

	return postings
}

// StableCrawlKey derives the dedup identity for crawler signals from the
// normalized employer and title.
func StableCrawlKey(company, title string) string {
	return fmt.Sprintf("kyujinbox://%s/%s", namematch.Normalize(company), namematch.Normalize(title))
}

func joinSelectors(selectors []string) string {
	out := selectors[0]
	for _, s := range selectors[1:] {
		out += ", " + s
	}
	return out
}
