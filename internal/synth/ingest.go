package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/researchsynth/researchsynth/internal/models"
)

// Ingestor validates and writes documents into the knowledge index.
type Ingestor struct {
	index    *Index
	maxBytes int
}

// NewIngestor creates an Ingestor with the given per-document size cap.
func NewIngestor(index *Index, maxBytes int) *Ingestor {
	if maxBytes <= 0 {
		maxBytes = 10_000_000
	}
	return &Ingestor{index: index, maxBytes: maxBytes}
}

// Validate checks a document before ingestion: content and title must be
// non-blank and the content must fit within the configured size cap.
func (in *Ingestor) Validate(content, title string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("document content cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("document title cannot be empty")
	}
	if len(content) > in.maxBytes {
		return fmt.Errorf("document content exceeds maximum size (%dMB)", in.maxBytes/1_000_000)
	}
	return nil
}

// IngestText validates and stores a single document. The document ID is
// content-addressed unless already present in the index, in which case the
// stored row is replaced.
func (in *Ingestor) IngestText(ctx context.Context, content, title, source string, meta models.Metadata) (*models.Document, error) {
	if err := in.Validate(content, title); err != nil {
		return nil, err
	}
	if source == "" {
		source = "manual"
	}
	if meta == nil {
		meta = models.Metadata{}
	}

	doc := &models.Document{
		Content:  content,
		Title:    title,
		Source:   source,
		Metadata: meta,
	}
	if err := in.index.Add(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// IngestBatch validates every item first, then stores them all. A single
// invalid item fails the whole batch with an error naming its position.
func (in *Ingestor) IngestBatch(ctx context.Context, items []models.IngestRequest) ([]*models.Document, error) {
	for i, item := range items {
		if err := in.Validate(item.Content, item.Title); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
	}

	docs := make([]*models.Document, 0, len(items))
	for _, item := range items {
		source := item.Source
		if source == "" {
			source = "batch"
		}
		meta := item.Metadata
		if meta == nil {
			meta = models.Metadata{}
		}
		docs = append(docs, &models.Document{
			Content:  item.Content,
			Title:    item.Title,
			Source:   source,
			Metadata: meta,
		})
	}
	if err := in.index.Add(ctx, docs...); err != nil {
		return nil, err
	}
	return docs, nil
}
