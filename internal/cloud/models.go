package cloud

import (
	"github.com/dtnitsch/headline-cloud/models"
	"github.com/dtnitsch/headline-cloud/pkg/mapreduce"
)

// Result holds the outcome of one source.
type Result struct {
	Source     models.Source
	StatusCode int
	Titles     []string
	Error      error
	ErrorType  string
}

// SourceSummary is the reported form of a Result.
type SourceSummary struct {
	URL        string `json:"url" yaml:"url"`
	Kind       string `json:"kind" yaml:"kind"`
	Status     string `json:"status" yaml:"status"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Titles     int    `json:"titles" yaml:"titles"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType  string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// Stats counts sources by outcome.
type Stats struct {
	TotalSources int `json:"total_sources" yaml:"total_sources"`
	Successful   int `json:"successful" yaml:"successful"`
	Failed       int `json:"failed" yaml:"failed"`
	Titles       int `json:"titles" yaml:"titles"`
	Tokens       int `json:"tokens" yaml:"tokens"`
	Distinct     int `json:"distinct_tokens" yaml:"distinct_tokens"`
}

// Summary is everything a run produced.
type Summary struct {
	Mode      string                   `json:"mode" yaml:"mode"`
	Sources   []SourceSummary          `json:"sources" yaml:"sources"`
	Stats     Stats                    `json:"stats" yaml:"stats"`
	Top       []mapreduce.KeywordCount `json:"top" yaml:"top"`
	Weights   map[string]int           `json:"weights,omitempty" yaml:"weights,omitempty"`
	ImagePath string                   `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Rendered  bool                     `json:"rendered" yaml:"rendered"`
}

// BuildSourceSummary converts a Result for reporting.
func BuildSourceSummary(r Result) SourceSummary {
	s := SourceSummary{
		URL:        r.Source.URL,
		Kind:       string(r.Source.Kind),
		StatusCode: r.StatusCode,
		Titles:     len(r.Titles),
	}
	if r.Error != nil {
		s.Status = "failed"
		s.Error = r.Error.Error()
		s.ErrorType = r.ErrorType
		return s
	}
	s.Status = "success"
	return s
}
