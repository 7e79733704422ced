package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				logger.Error().
					Str("request_id", c.GetString("request_id")).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				utils.APIError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
