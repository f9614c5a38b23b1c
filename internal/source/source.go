// Package source contains the signal source adapters: producers of raw
// job-posting candidates from external sites and APIs.
package source

import (
	"context"

	"github.com/jimezsa/intentpipe/internal/intent"
	"github.com/jimezsa/intentpipe/internal/models"
)

const (
	SourceKyujinbox = "kyujinbox"
	SourceSerper    = "serper"
)

// Source produces raw postings for a whole run; employer names are matched
// to the registry afterwards.
type Source interface {
	Name() string
	Produce(ctx context.Context) ([]models.RawPosting, error)
	// FallbackLevel is the adapter's policy for a posting whose date
	// could not be resolved.
	FallbackLevel() intent.Level
}

// CompanySearcher produces postings for one known company at a time; the
// match to the registry is implied by the query.
type CompanySearcher interface {
	Name() string
	SearchCompany(ctx context.Context, companyName string) ([]models.RawPosting, error)
	FallbackLevel() intent.Level
}
