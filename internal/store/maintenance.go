package store

import (
	"context"
	"fmt"
)

// IntentStats is a snapshot of persisted intent state.
type IntentStats struct {
	Companies           int64
	CompaniesWithIntent int64
	Signals             int64
	Hot                 int64
	Middle              int64
	Low                 int64
	None                int64
	ErroredNone         int64
}

// Stats counts persisted rows per intent level, plus the none/0 rows left
// behind by errored runs.
func (s *Store) Stats(ctx context.Context) (IntentStats, error) {
	var stats IntentStats

	counts := []struct {
		dest  *int64
		query string
	}{
		{&stats.Companies, `SELECT count(*) FROM companies`},
		{&stats.CompaniesWithIntent, `SELECT count(*) FROM company_intents`},
		{&stats.Signals, `SELECT count(*) FROM intent_signals`},
		{&stats.Hot, `SELECT count(*) FROM company_intents WHERE intent_level = 'hot'`},
		{&stats.Middle, `SELECT count(*) FROM company_intents WHERE intent_level = 'middle'`},
		{&stats.Low, `SELECT count(*) FROM company_intents WHERE intent_level = 'low'`},
		{&stats.None, `SELECT count(*) FROM company_intents WHERE intent_level = 'none'`},
		{&stats.ErroredNone, `SELECT count(*) FROM company_intents WHERE intent_level = 'none' AND signal_count = 0`},
	}

	for _, c := range counts {
		if err := s.pool.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return stats, fmt.Errorf("stats query: %w", err)
		}
	}

	return stats, nil
}

// DeleteErroredIntents purges intent rows with level none and zero
// signals. Those rows are evidence of an errored or empty run and block
// nothing; deleting them allows re-processing.
func (s *Store) DeleteErroredIntents(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM company_intents WHERE intent_level = 'none' AND signal_count = 0`,
	)
	if err != nil {
		return 0, fmt.Errorf("delete errored intents: %w", err)
	}
	return tag.RowsAffected(), nil
}
