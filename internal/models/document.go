// Package models defines GORM data models for ResearchSynthesis.
package models

import (
	"crypto/md5"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata is a free-form JSON object attached to a document.
// It is stored as a TEXT column and (de)serialized transparently.
type Metadata map[string]any

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", src)
	}
	if len(b) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Document represents an ingested research document.
// ID is content-addressed: the hex MD5 of the content when not supplied
// explicitly, so re-ingesting identical content overwrites rather than
// duplicates.
type Document struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;not null" json:"title"`
	Source    string    `gorm:"index;default:'api'" json:"source"`
	Content   string    `gorm:"not null" json:"content"`
	Metadata  Metadata  `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentID returns the content-addressed document ID.
func ContentID(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Preview returns the first n runes of the content, with "..." appended
// when the content was truncated.
func (d *Document) Preview(n int) string {
	runes := []rune(d.Content)
	if len(runes) <= n {
		return d.Content
	}
	return string(runes[:n]) + "..."
}
