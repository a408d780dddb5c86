package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/repository"
)

// StatusFor maps an operation error to an HTTP status.
func StatusFor(err error) int {
	switch repository.KindOf(err) {
	case repository.KindUnavailable:
		return http.StatusServiceUnavailable
	case repository.KindNotFound:
		return http.StatusNotFound
	case repository.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Result writes an operation outcome as-is, choosing the status code from
// the failure kind.
func Result[T any](c *gin.Context, okStatus int, res domain.Result[T]) {
	if res.OK() {
		c.JSON(okStatus, res)
		return
	}
	c.JSON(StatusFor(res.Err()), res)
}

// Error writes a failure envelope with an explicit status.
func Error(c *gin.Context, status int, err error) {
	c.JSON(status, domain.Fail[any](err))
}

func OK[T any](c *gin.Context, message string, data T) {
	c.JSON(http.StatusOK, domain.Succeed(message, data))
}
