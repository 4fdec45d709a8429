package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/nhz04/BANKING/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records every mutating API call (method, path, body,
// status, client) to the audit_logs table. Reads are not recorded.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		// capture the request body and hand the handler a fresh reader
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		body := ""
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			body = string(bodyBytes)
		}

		entry := models.AuditLog{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Body:      body,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
