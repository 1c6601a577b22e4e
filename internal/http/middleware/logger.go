package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request with the request id when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		reqID := GetRequestID(c)
		if reqID == "" {
			reqID = "-"
		}

		log.Printf("[HTTP] %s %s status=%d request_id=%s took=%s ip=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			reqID,
			elapsed.Round(time.Millisecond),
			c.ClientIP(),
		)
	}
}
