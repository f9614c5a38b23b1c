package models

import "time"

// IntentSignal is one persisted hiring signal. Rows are append-only; the
// pipeline never updates or deletes them.
type IntentSignal struct {
	ID             string         `json:"id,omitempty"`
	CompanyID      string         `json:"company_id"`
	DepartmentType string         `json:"department_type"`
	SignalType     string         `json:"signal_type"`
	Title          string         `json:"title"`
	SourceURL      string         `json:"source_url"`
	SourceName     string         `json:"source_name"`
	PostedDate     *time.Time     `json:"posted_date,omitempty"`
	RawData        map[string]any `json:"raw_data,omitempty"`
	DiscoveredAt   time.Time      `json:"discovered_at,omitempty"`
}

// SignalTypeJobPosting is the only signal type the pipeline produces.
const SignalTypeJobPosting = "job_posting"

// CompanyIntent is the aggregated intent row, one per
// (company, department type). Each run overwrites it with that run's
// aggregate; counts are not cumulative across runs.
type CompanyIntent struct {
	CompanyID        string     `json:"company_id"`
	DepartmentType   string     `json:"department_type"`
	IntentLevel      string     `json:"intent_level"`
	SignalCount      int        `json:"signal_count"`
	LatestSignalDate *time.Time `json:"latest_signal_date,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}
