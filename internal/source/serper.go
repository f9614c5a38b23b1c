package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/intentpipe/internal/config"
	"github.com/jimezsa/intentpipe/internal/intent"
	"github.com/jimezsa/intentpipe/internal/models"
	"github.com/jimezsa/intentpipe/internal/network"
	"github.com/rs/zerolog"
)

// Serper fans a fixed set of query templates per company out to the
// Serper web-search API and filters results down to hiring signals.
type Serper struct {
	client *network.Client
	apiKey string
	cfg    config.SearchConfig
	log    zerolog.Logger
}

func NewSerper(client *network.Client, apiKey string, cfg config.SearchConfig, logger zerolog.Logger) *Serper {
	return &Serper{
		client: client,
		apiKey: apiKey,
		cfg:    cfg,
		log:    logger.With().Str("source", SourceSerper).Logger(),
	}
}

func (s *Serper) Name() string {
	return SourceSerper
}

// FallbackLevel assumes recency for a dateless result: it came back from a
// live search, so something recent-looking exists.
func (s *Serper) FallbackLevel() intent.Level {
	return intent.LevelLow
}

type serperRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []serperResult `json:"organic"`
}

type serperResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
	Date    string `json:"date,omitempty"`
}

// SearchCompany runs every query template for one company, filters for
// job-related results, and deduplicates by result URL. A query that fails
// its one retry fails the whole company.
func (s *Serper) SearchCompany(ctx context.Context, companyName string) ([]models.RawPosting, error) {
	var postings []models.RawPosting
	seen := map[string]struct{}{}

	for _, template := range s.cfg.QueryTemplates {
		query := fmt.Sprintf(template, companyName)

		var results []serperResult
		err := network.Retry(ctx, s.cfg.RetryBackoff, func() error {
			var searchErr error
			results, searchErr = s.search(ctx, query)
			return searchErr
		})
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", query, err)
		}

		for _, r := range results {
			if !isJobRelated(r.Link, r.Title) {
				continue
			}
			if _, ok := seen[r.Link]; ok {
				continue
			}
			seen[r.Link] = struct{}{}
			postings = append(postings, resultToPosting(r, companyName))
		}

		network.Sleep(ctx, s.cfg.QueryDelay)
	}

	return postings, nil
}

func (s *Serper) search(ctx context.Context, query string) ([]serperResult, error) {
	payload, err := json.Marshal(serperRequest{
		Q:   query,
		GL:  s.cfg.Country,
		HL:  s.cfg.Locale,
		Num: s.cfg.ResultCount,
	})
	if err != nil {
		return nil, err
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, s.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != fhttp.StatusOK {
		return nil, fmt.Errorf("serper %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return parsed.Organic, nil
}

func resultToPosting(r serperResult, companyName string) models.RawPosting {
	return models.RawPosting{
		Title:        r.Title,
		EmployerName: companyName,
		SourceURL:    r.Link,
		SourceName:   sourceNameFromURL(r.Link),
		DateHint:     r.Date,
		DateText:     r.Snippet + " " + r.Title,
		RawData: map[string]any{
			"snippet":       r.Snippet,
			"original_date": r.Date,
		},
	}
}
