package server

import (
	"net/http"
	"strings"
	"time"

	"go-jobdemand-scraper/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID   = "X-Request-ID"
	readHeaderTimeout = 10 * time.Second
)

// requestID tags the request with an id (the caller's, when sent) and stores a
// logger carrying it in the request context.
func requestID(base *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)

		log := base.With("request_id", id)
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), log))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logging.FromContext(c.Request.Context(), nil)
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"dur_ms", time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("http", kv...)
			return
		}
		log.Info("http", kv...)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		logging.FromContext(c.Request.Context(), nil).Error("panic", "path", c.Request.URL.Path, "err", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	})
}
