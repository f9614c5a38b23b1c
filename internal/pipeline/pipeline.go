// Package pipeline wires the source adapters, entity resolution,
// classification, and persistence into the batch runs invoked by the CLI.
package pipeline

import (
	"context"
	"time"

	"github.com/jimezsa/intentpipe/internal/dates"
	"github.com/jimezsa/intentpipe/internal/intent"
	"github.com/jimezsa/intentpipe/internal/models"
	"github.com/jimezsa/intentpipe/internal/namematch"
	"github.com/jimezsa/intentpipe/internal/network"
	"github.com/jimezsa/intentpipe/internal/source"
	"github.com/jimezsa/intentpipe/internal/ui"
	"github.com/rs/zerolog"
)

// Store is the persistence surface the pipeline writes through.
type Store interface {
	LoadCompanies(ctx context.Context) ([]models.Company, error)
	InsertSignalIfNew(ctx context.Context, signal models.IntentSignal) (bool, error)
	UpsertIntent(ctx context.Context, ci models.CompanyIntent) error
}

// Summary is one run's outcome, printed as human-readable status lines.
type Summary struct {
	Postings          int
	MatchedCompanies  int
	UnmatchedPostings int
	NewSignals        int
	FailedCompanies   int
	Levels            map[intent.Level]int
}

type Pipeline struct {
	store      Store
	ui         *ui.UI
	log        zerolog.Logger
	department string
	now        func() time.Time
}

func New(store Store, userInterface *ui.UI, logger zerolog.Logger, department string) *Pipeline {
	return &Pipeline{
		store:      store,
		ui:         userInterface,
		log:        logger.With().Str("component", "pipeline").Logger(),
		department: department,
		now:        time.Now,
	}
}

// RunCrawl executes the bulk-crawl flow: produce all postings, resolve
// employers against the registry, then aggregate and persist per company.
func (p *Pipeline) RunCrawl(ctx context.Context, src source.Source) (Summary, error) {
	summary := Summary{Levels: map[intent.Level]int{}}

	companies, err := p.store.LoadCompanies(ctx)
	if err != nil {
		return summary, err
	}
	p.ui.Infof("Loaded %d companies", len(companies))

	index := namematch.NewIndex(companies)

	postings, err := src.Produce(ctx)
	if err != nil && len(postings) == 0 {
		return summary, err
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("crawl ended early, continuing with partial results")
	}
	summary.Postings = len(postings)
	p.ui.Infof("Crawled %d postings from %s", len(postings), src.Name())

	matched := map[string][]models.RawPosting{}
	var matchOrder []models.Company
	for _, posting := range postings {
		company, ok := index.Resolve(posting.EmployerName)
		if !ok {
			summary.UnmatchedPostings++
			continue
		}
		if _, seen := matched[company.ID]; !seen {
			matchOrder = append(matchOrder, company)
		}
		matched[company.ID] = append(matched[company.ID], posting)
	}
	summary.MatchedCompanies = len(matchOrder)
	p.ui.Infof("Matched %d companies (%d postings unmatched)", len(matchOrder), summary.UnmatchedPostings)

	for _, company := range matchOrder {
		inserted, level := p.persistCompany(ctx, company, matched[company.ID], src.FallbackLevel())
		summary.NewSignals += inserted
		summary.Levels[level]++
	}

	p.printSummary(summary)
	return summary, nil
}

// RunSearch executes the per-company search flow: one query fan-out per
// registry company, persisting as it goes. A company whose search fails
// beyond retry gets a none/0 marker row; a company with zero results gets
// no row at all.
func (p *Pipeline) RunSearch(ctx context.Context, searcher source.CompanySearcher, companyDelay time.Duration) (Summary, error) {
	summary := Summary{Levels: map[intent.Level]int{}}

	companies, err := p.store.LoadCompanies(ctx)
	if err != nil {
		return summary, err
	}
	p.ui.Infof("Loaded %d companies", len(companies))

	for i, company := range companies {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		p.ui.Infof("[%d/%d] %s", i+1, len(companies), company.Name)

		postings, err := searcher.SearchCompany(ctx, company.Name)
		if err != nil {
			p.log.Warn().Err(err).Str("company", company.Name).Msg("search failed, marking errored")
			p.markErrored(ctx, company)
			summary.FailedCompanies++
			summary.Levels[intent.LevelNone]++
			network.Sleep(ctx, companyDelay)
			continue
		}

		summary.Postings += len(postings)
		if len(postings) == 0 {
			network.Sleep(ctx, companyDelay)
			continue
		}

		summary.MatchedCompanies++
		inserted, level := p.persistCompany(ctx, company, postings, searcher.FallbackLevel())
		summary.NewSignals += inserted
		summary.Levels[level]++

		network.Sleep(ctx, companyDelay)
	}

	p.printSummary(summary)
	return summary, nil
}

// persistCompany aggregates one company's postings and writes signals and
// the intent row. Persistence failures are logged per item and never stop
// the run.
func (p *Pipeline) persistCompany(ctx context.Context, company models.Company, postings []models.RawPosting, fallback intent.Level) (int, intent.Level) {
	now := p.now()

	postedDates := make([]*time.Time, len(postings))
	for i, posting := range postings {
		postedDates[i] = dates.Resolve(now, posting.DateHint, posting.DateText)
	}
	agg := intent.Aggregate(now, postedDates, fallback)

	inserted := 0
	for i, posting := range postings {
		signal := models.IntentSignal{
			CompanyID:      company.ID,
			DepartmentType: p.department,
			SignalType:     models.SignalTypeJobPosting,
			Title:          posting.Title,
			SourceURL:      posting.SignalKey(),
			SourceName:     posting.SourceName,
			PostedDate:     postedDates[i],
			RawData:        posting.RawData,
		}

		ok, err := p.store.InsertSignalIfNew(ctx, signal)
		if err != nil {
			p.log.Error().Err(err).Str("company", company.Name).Str("url", signal.SourceURL).Msg("signal insert failed")
			continue
		}
		if ok {
			inserted++
		}
	}

	err := p.store.UpsertIntent(ctx, models.CompanyIntent{
		CompanyID:        company.ID,
		DepartmentType:   p.department,
		IntentLevel:      agg.BestLevel.String(),
		SignalCount:      agg.Count,
		LatestSignalDate: agg.LatestDate,
	})
	if err != nil {
		p.log.Error().Err(err).Str("company", company.Name).Msg("intent upsert failed")
	}

	p.ui.Infof("  [%s] %s: %d postings (%d new signals)",
		levelLabel(agg.BestLevel), company.Name, agg.Count, inserted)

	return inserted, agg.BestLevel
}

// markErrored records a none/0 row for a company whose search failed, so
// the cleanup command can find and purge it for re-processing.
func (p *Pipeline) markErrored(ctx context.Context, company models.Company) {
	err := p.store.UpsertIntent(ctx, models.CompanyIntent{
		CompanyID:      company.ID,
		DepartmentType: p.department,
		IntentLevel:    intent.LevelNone.String(),
		SignalCount:    0,
	})
	if err != nil {
		p.log.Error().Err(err).Str("company", company.Name).Msg("errored-marker upsert failed")
	}
}

func (p *Pipeline) printSummary(s Summary) {
	p.ui.Successf("Done: %d postings, %d companies matched, %d unmatched, %d new signals, %d failed",
		s.Postings, s.MatchedCompanies, s.UnmatchedPostings, s.NewSignals, s.FailedCompanies)
	p.ui.Infof("Intent levels: HOT %d / MIDDLE %d / LOW %d / NONE %d",
		s.Levels[intent.LevelHot], s.Levels[intent.LevelMiddle],
		s.Levels[intent.LevelLow], s.Levels[intent.LevelNone])
}

func levelLabel(l intent.Level) string {
	switch l {
	case intent.LevelHot:
		return "HOT"
	case intent.LevelMiddle:
		return "MID"
	case intent.LevelLow:
		return "LOW"
	default:
		return "---"
	}
}
