package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Standard response envelope so every client parses the same shape
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`  // omitted when nil
	Error   string      `json:"error,omitempty"` // machine-readable code, failures only
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// APIError writes a failure envelope carrying the error code next to the message.
func APIError(c *gin.Context, code int, errCode string, message string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Error:   errCode,
	})
}

// RespondError renders err through the AppError taxonomy and aborts the
// chain. Internal errors are logged with the request id; their cause never
// reaches the client.
func RespondError(c *gin.Context, logger zerolog.Logger, err error) {
	appErr := AsAppError(err)
	if appErr.Kind == KindInternal {
		logger.Error().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg(appErr.Message)
	}
	APIError(c, appErr.Status(), appErr.Code(), appErr.Message)
	c.Abort()
}
