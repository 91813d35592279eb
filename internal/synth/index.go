// Package synth implements the ResearchSynthesis knowledge index: document
// storage, keyword retrieval and response synthesis.
package synth

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/researchsynth/researchsynth/internal/models"
)

// ErrNotFound is returned when a document ID does not exist in the index.
var ErrNotFound = errors.New("document not found")

// Index stores documents in sqlite with an LRU cache in front of point
// lookups. All methods are safe for concurrent use; writes go through
// the database first so the cache never holds rows the store lost.
type Index struct {
	db    *gorm.DB
	cache *docLRU
}

// NewIndex creates an Index on top of an opened gorm DB.
func NewIndex(db *gorm.DB, cacheSize int) *Index {
	return &Index{
		db:    db,
		cache: newDocLRU(cacheSize),
	}
}

// Add upserts documents into the index. Re-adding a document with the same
// ID (same content hash) replaces the stored row.
func (ix *Index) Add(ctx context.Context, docs ...*models.Document) error {
	for _, doc := range docs {
		if doc.ID == "" {
			doc.ID = models.ContentID(doc.Content)
		}
		err := ix.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(doc).Error
		if err != nil {
			return err
		}
		ix.cache.Put(doc.ID, doc)
	}
	return nil
}

// Query scores every document against the query terms and returns the topK
// best matches. Scoring is case-insensitive: one point per query term that
// occurs in the content. Documents matching no term are excluded.
func (ix *Index) Query(ctx context.Context, queryText string, topK int) ([]models.Document, error) {
	if topK <= 0 {
		topK = 5
	}

	terms := strings.Fields(strings.ToLower(queryText))
	if len(terms) == 0 {
		return nil, nil
	}

	docs, err := ix.List(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		score int
		doc   models.Document
	}
	var matches []scored
	for _, doc := range docs {
		content := strings.ToLower(doc.Content)
		score := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{score: score, doc: doc})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	results := make([]models.Document, len(matches))
	for i, m := range matches {
		results[i] = m.doc
	}
	return results, nil
}

// Get returns a document by ID, consulting the LRU before sqlite.
func (ix *Index) Get(ctx context.Context, id string) (*models.Document, error) {
	if doc, ok := ix.cache.Get(id); ok {
		return doc, nil
	}

	var doc models.Document
	err := ix.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ix.cache.Put(doc.ID, &doc)
	return &doc, nil
}

// List returns all documents, oldest first.
func (ix *Index) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	err := ix.db.WithContext(ctx).Order("created_at").Find(&docs).Error
	return docs, err
}

// Delete removes a document by ID. Returns ErrNotFound for unknown IDs.
func (ix *Index) Delete(ctx context.Context, id string) error {
	res := ix.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	ix.cache.Remove(id)
	return nil
}

// Clear removes every document from the index and cache.
func (ix *Index) Clear(ctx context.Context) error {
	if err := ix.db.WithContext(ctx).Where("1 = 1").Delete(&models.Document{}).Error; err != nil {
		return err
	}
	ix.cache.Clear()
	return nil
}

// Count returns the number of stored documents.
func (ix *Index) Count(ctx context.Context) (int64, error) {
	var n int64
	err := ix.db.WithContext(ctx).Model(&models.Document{}).Count(&n).Error
	return n, err
}

// Reload drops the LRU and re-warms it from sqlite, returning the number of
// documents loaded. Used by the admin reindex endpoint after out-of-band
// database changes.
func (ix *Index) Reload(ctx context.Context) (int64, error) {
	docs, err := ix.List(ctx)
	if err != nil {
		return 0, err
	}
	ix.cache.Clear()
	for i := range docs {
		doc := docs[i]
		ix.cache.Put(doc.ID, &doc)
	}
	return int64(len(docs)), nil
}

// CacheLen reports how many documents the LRU currently holds.
func (ix *Index) CacheLen() int {
	return ix.cache.Len()
}
