package v1

import (
	"context"
	"go-jobboard-web/internal/delivery/http/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports per-dependency status.
type HealthChecker interface {
	Check(ctx context.Context) map[string]string
}

// Health godoc
// @Summary      Health check
// @Description  Reports "ok" or "degraded" plus one entry per dependency.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status := checker.Check(c.Request.Context())
		msg := "System operational"
		if status["status"] != "ok" {
			msg = "System degraded"
		}
		response.Success(c, http.StatusOK, msg, status)
	}
}
