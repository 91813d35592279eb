// Package server provides the ResearchSynthesis Gin-based REST API.
// Routes are split into two groups:
//   - Public: health, ingestion, query, synthesis and document endpoints.
//   - Admin (/api/admin): JWT-protected operational endpoints.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/researchsynth/researchsynth/internal/config"
	"github.com/researchsynth/researchsynth/internal/models"
	"github.com/researchsynth/researchsynth/internal/synth"
)

const (
	// Version is reported by /health and the version subcommand.
	Version     = "0.1.0"
	serviceName = "research-synthesis-api"
)

// Knowledge components are set at startup from config, mirroring the DB
// package global.
var (
	index    *synth.Index
	ingestor *synth.Ingestor
	engine   *synth.Engine

	previewLen = 200
	startedAt  = time.Now()
)

// InitComponents wires the knowledge index, ingestor and engine on top of
// the opened database. Call after InitDB and before RegisterRoutes.
func InitComponents(cfg *config.Config) {
	index = synth.NewIndex(DB, cfg.CacheSize)
	ingestor = synth.NewIngestor(index, cfg.MaxDocumentBytes)
	engine = synth.NewEngine(index)
	if cfg.PreviewLen > 0 {
		previewLen = cfg.PreviewLen
	}
	startedAt = time.Now()
}

// CORSMiddleware allows cross-origin browser access to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// RegisterRoutes wires up the API on the given engine.
//
//	Public:  /health, /ingest, /ingest/batch, /query, /synthesize, /documents
//	Admin (JWT): /api/admin/*
func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", handleHealth)

	r.POST("/ingest", handleIngest)
	r.POST("/ingest/batch", handleIngestBatch)
	r.POST("/query", handleQuery)
	r.POST("/synthesize", handleSynthesize)

	r.GET("/documents", handleDocumentsList)
	r.GET("/documents/:id", handleDocumentGet)
	r.DELETE("/documents/:id", handleDocumentDelete)

	api := r.Group("/api")
	api.GET("", handleAPIRoot)
	api.GET("/health", handleHealth)
	api.POST("/login", handleLogin)

	admin := api.Group("/admin", JWTMiddleware())
	{
		admin.GET("/stats", handleStats)
		admin.POST("/reindex", handleReindex)
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// handleHealth reports service liveness for monitoring and load balancers.
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		Service:   serviceName,
	})
}

// handleAPIRoot lists the available endpoints.
func handleAPIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to ResearchSynthesis API",
		"health":  "/health",
		"endpoints": gin.H{
			"ingest":     "POST /ingest",
			"query":      "POST /query",
			"synthesize": "POST /synthesize",
			"documents":  "GET /documents",
		},
	})
}

// handleIngest accepts a single document.
//
//	POST /ingest
//	Body: { "content": "...", "title": "...", "source": "api", "metadata": {} }
func handleIngest(c *gin.Context) {
	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}
	doc, err := ingestor.IngestText(c.Request.Context(), req.Content, req.Title, source, req.Metadata)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ingestResponse(doc))
}

// handleIngestBatch accepts multiple documents in one request. The batch is
// all-or-nothing: any invalid document rejects the whole request.
func handleIngestBatch(c *gin.Context) {
	var req models.BatchIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no documents provided"})
		return
	}

	docs, err := ingestor.IngestBatch(c.Request.Context(), req.Documents)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := models.BatchIngestResponse{
		IngestedCount: len(docs),
		Documents:     make([]models.IngestResponse, len(docs)),
	}
	for i, doc := range docs {
		resp.Documents[i] = ingestResponse(doc)
	}
	c.JSON(http.StatusCreated, resp)
}

// handleQuery returns the documents most relevant to a query.
func handleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	topK := 5
	if req.TopK != nil {
		topK = *req.TopK
	}

	results, err := index.Query(c.Request.Context(), req.Query, topK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := models.QueryResponse{
		Query:        req.Query,
		Results:      make([]models.DocumentResponse, len(results)),
		TotalResults: len(results),
	}
	for i := range results {
		resp.Results[i] = docResponse(&results[i])
	}
	c.JSON(http.StatusOK, resp)
}

// handleSynthesize combines the matching documents into a synthesized answer.
func handleSynthesize(c *gin.Context) {
	var req models.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.Synthesize(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sources := make([]models.SourceReference, len(result.Sources))
	for i, doc := range result.Sources {
		sources[i] = models.SourceReference{ID: doc.ID, Title: doc.Title, Source: doc.Source}
	}
	c.JSON(http.StatusOK, models.SynthesizeResponse{
		Query:      result.Query,
		Response:   result.Response,
		Sources:    sources,
		Confidence: result.Confidence,
		Metadata:   result.Metadata,
	})
}

// handleDocumentsList returns every stored document.
func handleDocumentsList(c *gin.Context) {
	docs, err := index.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]models.DocumentResponse, len(docs))
	for i := range docs {
		resp[i] = docResponse(&docs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// handleDocumentGet returns one document by ID.
func handleDocumentGet(c *gin.Context) {
	id := c.Param("id")
	doc, err := index.Get(c.Request.Context(), id)
	if errors.Is(err, synth.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document with ID '" + id + "' not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docResponse(doc))
}

// handleDocumentDelete removes a document by ID.
func handleDocumentDelete(c *gin.Context) {
	id := c.Param("id")
	err := index.Delete(c.Request.Context(), id)
	if errors.Is(err, synth.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document with ID '" + id + "' not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleLogin accepts username + password and returns a signed JWT.
//
//	POST /api/login
//	Body: { "username": "admin", "password": "admin" }
func handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	if !checkCredentials(body.Username, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := GenerateJWT(body.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": 86400, // seconds
		"type":       "Bearer",
	})
}

// handleStats reports index and host statistics (admin only).
func handleStats(c *gin.Context) {
	count, err := index.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		DocumentCount: count,
		CacheEntries:  index.CacheLen(),
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		System:        collectSystem(),
	})
}

// handleReindex re-warms the in-memory cache from the database (admin only).
func handleReindex(c *gin.Context) {
	n, err := index.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reindexed": n})
}

// ── DTO helpers ───────────────────────────────────────────────────────────────

func ingestResponse(doc *models.Document) models.IngestResponse {
	return models.IngestResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Source:    doc.Source,
		CreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339),
		Message:   "Document ingested successfully",
	}
}

func docResponse(doc *models.Document) models.DocumentResponse {
	return models.DocumentResponse{
		ID:             doc.ID,
		Title:          doc.Title,
		Source:         doc.Source,
		ContentPreview: doc.Preview(previewLen),
		Metadata:       doc.Metadata,
		CreatedAt:      doc.CreatedAt.UTC().Format(time.RFC3339),
	}
}
