package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimezsa/intentpipe/internal/models"
	"github.com/rs/zerolog"
)

// registryPageSize works around the hosted store's result-size cap;
// companies are loaded in name-ordered chunks.
const registryPageSize = 500

type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func New(pool *pgxpool.Pool, logger zerolog.Logger) *Store {
	return &Store{pool: pool, log: logger.With().Str("component", "store").Logger()}
}

// LoadCompanies reads the whole company registry, paginated and ordered by
// name for stable pagination.
func (s *Store) LoadCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	for offset := 0; ; offset += registryPageSize {
		batch, err := s.loadCompanyPage(ctx, registryPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("load companies at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}
		companies = append(companies, batch...)
		if len(batch) < registryPageSize {
			break
		}
	}

	return companies, nil
}

func (s *Store) loadCompanyPage(ctx context.Context, limit, offset int) ([]models.Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM companies ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		batch = append(batch, c)
	}
	return batch, rows.Err()
}

// InsertSignalIfNew checks for an existing row with the same stable source
// identity and inserts only when absent. The check-then-insert pair is not
// atomic against concurrent writers; operationally only one run executes
// at a time.
func (s *Store) InsertSignalIfNew(ctx context.Context, signal models.IntentSignal) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM intent_signals WHERE source_url = $1)`,
		signal.SourceURL,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("signal existence check: %w", err)
	}
	if exists {
		return false, nil
	}

	rawJSON, err := json.Marshal(signal.RawData)
	if err != nil {
		return false, fmt.Errorf("marshal raw_data: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO intent_signals
		   (company_id, department_type, signal_type, title,
		    source_url, source_name, posted_date, raw_data, discovered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, now())`,
		signal.CompanyID, signal.DepartmentType, signal.SignalType, signal.Title,
		signal.SourceURL, signal.SourceName, signal.PostedDate, string(rawJSON),
	)
	if err != nil {
		return false, fmt.Errorf("insert signal: %w", err)
	}
	return true, nil
}

// UpsertIntent overwrites the (company, department) aggregate with this
// run's values. Counts are per-run, not cumulative: a later run replaces
// an earlier run's count entirely.
func (s *Store) UpsertIntent(ctx context.Context, ci models.CompanyIntent) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO company_intents
		   (company_id, department_type, intent_level, signal_count, latest_signal_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (company_id, department_type) DO UPDATE SET
		   intent_level = EXCLUDED.intent_level,
		   signal_count = EXCLUDED.signal_count,
		   latest_signal_date = EXCLUDED.latest_signal_date,
		   updated_at = EXCLUDED.updated_at`,
		ci.CompanyID, ci.DepartmentType, ci.IntentLevel, ci.SignalCount, ci.LatestSignalDate,
	)
	if err != nil {
		return fmt.Errorf("upsert intent for %s: %w", ci.CompanyID, err)
	}
	return nil
}
