package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body used by every endpoint:
// {code, status, message, data}.
type Envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OK writes a success envelope with the given status code
func OK(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{Code: code, Status: StatusSuccess, Message: message, Data: data})
}

// Error writes an error envelope with the given status code
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Code: code, Status: StatusError, Message: message})
}

// AbortError writes an error envelope and aborts the middleware chain
func AbortError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Code: code, Status: StatusError, Message: message})
}
