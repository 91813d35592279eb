// Package server handles embedding and serving of the landing page.
// Static files are embedded via the root-level webui package,
// which can access the sibling web/ directory via go:embed.
package server

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/researchsynth/researchsynth/webui"
)

// RegisterStaticFiles mounts the embedded landing page on the Gin engine.
// API routes registered before this take precedence; index.html is served
// at "/" and other embedded files at their own paths. Anything else is 404.
func RegisterStaticFiles(r *gin.Engine) {
	webRoot, err := fs.Sub(webui.FS, "web")
	if err != nil {
		panic("embed: web sub-fs failed: " + err.Error())
	}
	staticFS := http.FS(webRoot)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		name := strings.TrimPrefix(c.Request.URL.Path, "/")
		if name == "" {
			name = "index.html"
		}
		// no SPA fallback: unknown paths must 404 so API consumers can
		// distinguish a typo'd endpoint from the landing page
		f, err := staticFS.Open(name)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil || stat.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		contentType := "text/html; charset=utf-8"
		if strings.HasSuffix(name, ".css") {
			contentType = "text/css; charset=utf-8"
		} else if strings.HasSuffix(name, ".js") {
			contentType = "application/javascript"
		}
		c.DataFromReader(http.StatusOK, stat.Size(), contentType, f, nil)
	})
}
