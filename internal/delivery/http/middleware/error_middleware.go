package middleware

import (
	"errors"
	"go-jobboard-web/internal/delivery/http/response"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate is the page rendered for errors on HTML routes.
const ErrorTemplate = "error.html"

const msgUnexpected = "An unexpected error occurred. Please try again later."

// ErrorHandler renders the last error pushed with c.Error. Paths under /v1
// get the JSON envelope; everything else gets the HTML error page.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code := http.StatusInternalServerError
		message := msgUnexpected

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			code, message = appErr.Code, appErr.Message
			if code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(c.Request.Context(), "Request failed",
					"request_id", RequestIDFrom(c), "path", c.Request.URL.Path, "error", err)
			}
		} else {
			// Never expose internal error details to clients.
			logger.Log.ErrorContext(c.Request.Context(), "Internal Server Error",
				"request_id", RequestIDFrom(c), "path", c.Request.URL.Path, "error", err)
		}

		if IsAPIPath(c.Request.URL.Path) {
			response.Error(c, code, message, nil)
			return
		}
		c.HTML(code, ErrorTemplate, gin.H{
			"Status":    code,
			"Title":     http.StatusText(code),
			"Message":   message,
			"RequestID": RequestIDFrom(c),
			"Year":      time.Now().Year(),
		})
	}
}

// IsAPIPath reports whether path belongs to the JSON API.
func IsAPIPath(path string) bool {
	return path == "/v1" || strings.HasPrefix(path, "/v1/")
}
