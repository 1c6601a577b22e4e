package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "railbook/internal/config"
)

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
}

// GET /api/db-check reports mirror-tier reachability, reconnecting when the
// connection was lost. The mirror being down is degraded, not broken: the
// cascade still serves reads and writes.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureMirror(intconfig.LoadEnv().MirrorDSN); err != nil {
		c.JSON(http.StatusOK, gin.H{"mirror": "unreachable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mirror": "ok"})
}
