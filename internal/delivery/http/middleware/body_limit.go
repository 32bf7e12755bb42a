package middleware

import (
	"net/http"

	"go-jobboard-web/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at limit bytes. A declared Content-Length
// above the limit is rejected before anything is read.
func BodyLimit(limit int64, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			_ = c.Error(apperror.New(http.StatusRequestEntityTooLarge, message, nil))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
