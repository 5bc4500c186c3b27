// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"grading-app-server/logging"
	"grading-app-server/models"
)

// InternalServerError is the fixed error label of every 500 response.
const InternalServerError = "Internal server error"

// ErrorHandler is the terminal error stage. Handlers report failures with
// c.Error and return; once the chain unwinds, the last recorded error is
// logged and rendered as a 500 unless a response was already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		logging.FromContext(c.Request.Context()).Error("Error handling request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   InternalServerError,
			Message: err.Error(),
		})
	}
}

// Recovery turns a handler panic into the same 500 body ErrorHandler writes.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logging.FromContext(c.Request.Context()).Error("Recovered from panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   InternalServerError,
			Message: fmt.Sprint(recovered),
		})
	})
}
