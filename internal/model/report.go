package model

import "time"

// Report is the complete result of one noisepop run
type Report struct {
	SourceURL string    `json:"source_url"` // URL the dataset was read from (after landing-page resolution)
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta"`

	Summary   Summary `json:"summary"`
	Narrative string  `json:"narrative"`
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	FromCache    bool              `json:"from_cache"`
	ResolvedFrom string            `json:"resolved_from,omitempty"` // Landing page URL when the CSV link was discovered in HTML
}

// Summary holds the statistics computed over a Dataset
type Summary struct {
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	MostPopulated  Extreme `json:"most_populated"`
	LeastPopulated Extreme `json:"least_populated"`
}

// Extreme describes one extremal record and its derived exposure metrics
type Extreme struct {
	Location   string  `json:"location"`
	Population int64   `json:"population"`
	Exposure   int64   `json:"exposure"`   // Sum of the highest-band exposure columns
	Percentage float64 `json:"percentage"` // Exposure / Population * 100
	Record     Record  `json:"record"`
}
