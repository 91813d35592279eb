// Package models defines GORM data models for ResearchSynthesis.
package models

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// DocumentResponse is the wire form of a document: full content is replaced
// by a bounded preview.
type DocumentResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Source         string   `json:"source"`
	ContentPreview string   `json:"content_preview"`
	Metadata       Metadata `json:"metadata"`
	CreatedAt      string   `json:"created_at"`
}

// IngestRequest is the body of POST /ingest.
type IngestRequest struct {
	Content  string   `json:"content" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Source   string   `json:"source"`
	Metadata Metadata `json:"metadata"`
}

// IngestResponse is returned by POST /ingest with status 201.
type IngestResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

// BatchIngestRequest is the body of POST /ingest/batch.
type BatchIngestRequest struct {
	Documents []IngestRequest `json:"documents"`
}

// BatchIngestResponse is returned by POST /ingest/batch.
type BatchIngestResponse struct {
	IngestedCount int              `json:"ingested_count"`
	Documents     []IngestResponse `json:"documents"`
}

// QueryRequest is the body of POST /query.
// TopK defaults to 5 when omitted and must stay within [1, 20]; a pointer
// distinguishes "absent" from an explicit (invalid) zero.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  *int   `json:"top_k" binding:"omitempty,gte=1,lte=20"`
}

// QueryResponse is returned by POST /query.
type QueryResponse struct {
	Query        string             `json:"query"`
	Results      []DocumentResponse `json:"results"`
	TotalResults int                `json:"total_results"`
}

// SynthesizeRequest is the body of POST /synthesize.
type SynthesizeRequest struct {
	Query string `json:"query" binding:"required"`
}

// SourceReference identifies a document that contributed to a synthesis.
type SourceReference struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// SynthesizeResponse is returned by POST /synthesize.
type SynthesizeResponse struct {
	Query      string            `json:"query"`
	Response   string            `json:"response"`
	Sources    []SourceReference `json:"sources"`
	Confidence float64           `json:"confidence"`
	Metadata   Metadata          `json:"metadata"`
}

// SystemStats is the host telemetry section of StatsResponse.
type SystemStats struct {
	CPUUsage  float64 `json:"cpu_usage"`  // percent 0-100
	MemUsage  float64 `json:"mem_usage"`  // percent 0-100
	DiskUsage float64 `json:"disk_usage"` // percent 0-100
}

// StatsResponse is returned by GET /api/admin/stats.
type StatsResponse struct {
	DocumentCount int64       `json:"document_count"`
	CacheEntries  int         `json:"cache_entries"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	System        SystemStats `json:"system"`
}
