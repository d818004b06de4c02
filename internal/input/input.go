// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input loads pipeline inputs from YAML or JSON files: paper sets,
// batch analysis requests, and analysis records to validate. JSON documents
// are read through the YAML decoder.
package input

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-genie/pkg/types"
)

// Request is one analysis in a batch file.
type Request struct {
	Query          string        `yaml:"query"`
	Papers         []types.Paper `yaml:"papers"`
	EducationLevel string        `yaml:"education_level"`
}

// paperFile accepts a paper set wrapped in a "papers" key, the shape the
// scraping service returns.
type paperFile struct {
	Papers []types.Paper `yaml:"papers"`
}

type batchFile struct {
	Requests []Request `yaml:"requests"`
}

func read(path, what string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", what, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("parsing %s: empty document", what)
	}
	return doc.Content[0], nil
}

// LoadPapers reads a paper set. The file holds either a list of papers or a
// mapping with a "papers" list.
func LoadPapers(path string) ([]types.Paper, error) {
	node, err := read(path, "papers")
	if err != nil {
		return nil, err
	}
	if node.Kind == yaml.SequenceNode {
		var papers []types.Paper
		if err := node.Decode(&papers); err != nil {
			return nil, fmt.Errorf("parsing papers: %w", err)
		}
		return papers, nil
	}
	var f paperFile
	if err := node.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing papers: %w", err)
	}
	return f.Papers, nil
}

// LoadBatch reads batch requests. The file holds either a list of requests or
// a mapping with a "requests" list.
func LoadBatch(path string) ([]Request, error) {
	node, err := read(path, "batch")
	if err != nil {
		return nil, err
	}
	if node.Kind == yaml.SequenceNode {
		var reqs []Request
		if err := node.Decode(&reqs); err != nil {
			return nil, fmt.Errorf("parsing batch: %w", err)
		}
		return reqs, nil
	}
	var f batchFile
	if err := node.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	return f.Requests, nil
}

// LoadRecord reads an analysis-record-shaped document as a generic mapping,
// preserving whatever types the file uses so shape validation sees them.
func LoadRecord(path string) (map[string]any, error) {
	node, err := read(path, "record")
	if err != nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing record: expected a mapping at the top level")
	}
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	return m, nil
}
