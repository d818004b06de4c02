package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-genie/internal/analysis"
	"github.com/pdiddy/research-genie/internal/format"
	"github.com/pdiddy/research-genie/internal/gateway"
)

// writeOutput encodes v to w as "yaml" (default) or "json".
func writeOutput(w io.Writer, outputFormat string, v any) error {
	switch strings.ToLower(outputFormat) {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", outputFormat)
	}
}

// errorKind names the failure class carried by err. The outermost class
// wins: a backend failure during an analysis is reported as AnalysisFailed.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, format.ErrInvalidAnalysisShape):
		return "InvalidAnalysisShape"
	case errors.Is(err, analysis.ErrAnalysisFailed):
		return "AnalysisFailed"
	case errors.Is(err, gateway.ErrUnsupportedProvider):
		return "UnsupportedProvider"
	case errors.Is(err, gateway.ErrBackendUnavailable):
		return "BackendUnavailable"
	case errors.Is(err, gateway.ErrBackendCallFailed):
		return "BackendCallFailed"
	}
	return "InternalError"
}

// userMessages are the generic texts shown for each failure class. Details
// go to the log only.
var userMessages = map[string]string{
	"InvalidAnalysisShape": "the analysis result was malformed",
	"AnalysisFailed":       "the analysis could not be completed",
	"UnsupportedProvider":  "the configured LLM provider is not supported",
	"BackendUnavailable":   "the LLM backend is not available",
	"BackendCallFailed":    "the LLM backend request failed",
}

// errorReport logs err in full and returns the generic envelope for it.
func errorReport(f *format.Formatter, err error) format.ErrorReport {
	kind := errorKind(err)
	logger.Error("request failed", "kind", kind, "error", err)
	msg, ok := userMessages[kind]
	if !ok {
		msg = "internal error"
	}
	return f.FormatError(msg, kind)
}
