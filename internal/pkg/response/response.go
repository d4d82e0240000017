package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body shape for every endpoint:
// {statusCode, data, message, success} with success = statusCode < 400.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func New(statusCode int, data any, message string) Envelope {
	return Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func JSON(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, New(statusCode, data, message))
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, New(statusCode, nil, message))
}

// AbortError writes the envelope and stops the middleware chain.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, New(statusCode, nil, message))
}
