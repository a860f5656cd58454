package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the structured failure carried through the middleware chain.
// Domain code never writes a response on the failure path; it aborts with
// one of these and Middleware serializes it once.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// New builds an APIError with an arbitrary status.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// Unauthorized marks a missing or invalid session (401).
func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden marks an authenticated caller with an insufficient role (403).
func Forbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

// NotFound marks an id with no matching record (404).
func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

// Conflict marks a uniqueness violation (409).
func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

// Unprocessable marks a schema validation failure (422). The message
// aggregates every field error.
func Unprocessable(message string) *APIError {
	return New(http.StatusUnprocessableEntity, message)
}

// Internal marks any unanticipated failure (500).
func Internal(message string) *APIError {
	return New(http.StatusInternalServerError, message)
}

// Abort stops the chain and records err for the terminal stage.
func Abort(c *gin.Context, err error) {
	c.Abort()
	_ = c.Error(err)
}

// Middleware is the terminal error stage: the single place that turns a
// structured failure into an HTTP response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		var apiErr *APIError
		if !stderrors.As(c.Errors.Last().Err, &apiErr) {
			apiErr = Internal("internal server error")
		}

		if !c.Writer.Written() {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		}
	}
}
