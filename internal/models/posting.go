package models

// RawPosting is one job-posting candidate produced by a source adapter.
// It lives for a single run and is never mutated after creation.
type RawPosting struct {
	Title        string `json:"title"`
	EmployerName string `json:"employer_name"`
	LocationText string `json:"location_text,omitempty"`
	SourceURL    string `json:"source_url"`
	SourceName   string `json:"source_name"`

	// DateHint is a structured date string from the source, if any.
	// DateText is free text that may contain a date phrase.
	DateHint string `json:"date_hint,omitempty"`
	DateText string `json:"date_text,omitempty"`

	// StableKey overrides SourceURL as the signal identity when the
	// source's URLs are non-stable redirects. Empty means SourceURL is
	// already stable.
	StableKey string `json:"stable_key,omitempty"`

	// RawData carries adapter-specific extras persisted alongside the
	// signal as opaque JSON.
	RawData map[string]any `json:"raw_data,omitempty"`
}

// SignalKey returns the stable identity used for signal deduplication.
func (p RawPosting) SignalKey() string {
	if p.StableKey != "" {
		return p.StableKey
	}
	return p.SourceURL
}
