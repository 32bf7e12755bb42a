package response

import (
	"go-jobboard-web/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Notice    string      `json:"notice,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ListData is the data payload of list endpoints. Results is never null.
type ListData[T any] struct {
	Results []T    `json:"results"`
	Count   int    `json:"count"`
	State   string `json:"state"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// List sends a list result. A degraded fetch is still a success; its
// notice travels next to the (empty) results.
func List[T any](c *gin.Context, code int, message string, res domain.ListResult[T]) {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data: ListData[T]{
			Results: items,
			Count:   len(items),
			State:   res.State().String(),
		},
		Notice:    res.Notice,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}
