package format

import (
	"time"

	"github.com/pdiddy/research-genie/pkg/types"
)

// ErrorReport is the generic failure envelope shown to users. Kind keeps the
// specific failure class for diagnosis.
type ErrorReport struct {
	Error     bool      `json:"error" yaml:"error"`
	Kind      string    `json:"error_type" yaml:"error_type"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Refinement reports a query before and after normalization.
type Refinement struct {
	OriginalQuery string    `json:"original_query" yaml:"original_query"`
	RefinedQuery  string    `json:"refined_query" yaml:"refined_query"`
	Refined       bool      `json:"refined" yaml:"refined"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

// BatchItem is one result in a batch: a record or an error, never both.
type BatchItem struct {
	Query  string                `json:"query" yaml:"query"`
	Record *types.AnalysisRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Error  *ErrorReport          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Batch wraps the results of several analyses.
type Batch struct {
	TotalProcessed int         `json:"total_processed" yaml:"total_processed"`
	Results        []BatchItem `json:"results" yaml:"results"`
	ProcessedAt    time.Time   `json:"processed_at" yaml:"processed_at"`
}

// FormatError builds the envelope for a failure of the given class. An
// empty kind is reported as "InternalError".
func (f *Formatter) FormatError(message, kind string) ErrorReport {
	if kind == "" {
		kind = "InternalError"
	}
	return ErrorReport{Error: true, Kind: kind, Message: message, Timestamp: f.now()}
}

// FormatRefinement builds the refinement envelope.
func (f *Formatter) FormatRefinement(original, refined string) Refinement {
	return Refinement{
		OriginalQuery: original,
		RefinedQuery:  refined,
		Refined:       original != refined,
		Timestamp:     f.now(),
	}
}

// FormatBatch builds the batch envelope. TotalProcessed counts every item,
// failed ones included.
func (f *Formatter) FormatBatch(items []BatchItem) Batch {
	if items == nil {
		items = []BatchItem{}
	}
	return Batch{TotalProcessed: len(items), Results: items, ProcessedAt: f.now()}
}
