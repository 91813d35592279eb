package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/researchsynth/researchsynth/internal/models"
)

// excerptLen bounds the per-source excerpt used when building a synthesis.
const excerptLen = 200

// Result is the outcome of a synthesis operation.
type Result struct {
	Query      string
	Response   string
	Sources    []models.Document
	Confidence float64
	Metadata   models.Metadata
}

// Engine synthesizes a combined response from the documents matching a query.
type Engine struct {
	index *Index
}

// NewEngine creates an Engine on top of an Index.
func NewEngine(index *Index) *Engine {
	return &Engine{index: index}
}

// Synthesize retrieves the documents relevant to query and combines their
// excerpts into a single response. Confidence grows with the number of
// contributing sources: 0.5 + 0.1 per source, capped at 0.95. A query that
// matches nothing yields confidence 0 and a no-results response.
func (e *Engine) Synthesize(ctx context.Context, query string) (*Result, error) {
	sources, err := e.index.Query(ctx, query, 5)
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return &Result{
			Query:      query,
			Response:   "No relevant documents found for this query.",
			Sources:    []models.Document{},
			Confidence: 0.0,
			Metadata:   models.Metadata{"status": "no_results"},
		}, nil
	}

	excerpts := make([]string, 0, len(sources))
	for _, doc := range sources {
		text := doc.Content
		if runes := []rune(text); len(runes) > excerptLen {
			text = string(runes[:excerptLen])
		}
		excerpts = append(excerpts, fmt.Sprintf("From '%s': %s...", doc.Title, text))
	}

	confidence := 0.5 + float64(len(sources))*0.1
	if confidence > 0.95 {
		confidence = 0.95
	}

	return &Result{
		Query:      query,
		Response:   buildResponse(query, excerpts),
		Sources:    sources,
		Confidence: confidence,
		Metadata: models.Metadata{
			"status":         "success",
			"document_count": len(sources),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func buildResponse(query string, excerpts []string) string {
	parts := []string{
		fmt.Sprintf("Based on the research documents, here's the synthesis for: '%s'", query),
		"",
		"Key findings:",
	}
	for i, excerpt := range excerpts {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, excerpt))
	}
	parts = append(parts, "", "This synthesis combines insights from multiple sources.")
	return strings.Join(parts, "\n")
}
