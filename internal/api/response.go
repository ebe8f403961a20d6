package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
	"github.com/nikolacukic/exercise-tracker/internal/observability"
)

const fallbackMessage = "unexpected error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error kind to the HTTP status clients see. Storage and unclassified
// failures are reported as 400.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindOwnerMissing:
		return http.StatusNotFound
	case domain.KindStorage:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// errorPayload resolves the status and body for err.
func errorPayload(err error) (int, ErrorResponse) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		msg := derr.Error()
		if derr.Kind != domain.KindStorage {
			msg = derr.Message
		}
		if msg == "" {
			msg = fallbackMessage
		}
		return StatusFor(derr.Kind), ErrorResponse{Error: msg}
	}

	msg := fallbackMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return http.StatusBadRequest, ErrorResponse{Error: msg}
}

func writeError(c *gin.Context, err error) {
	status, body := errorPayload(err)
	observability.RecordErrorResponse(domain.KindOf(err).String())
	_ = c.Error(err)
	c.JSON(status, body)
}
