package httpadapter

import (
	"net/http"

	"notes-assistant/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNoteNotFound),
		domain.IsKind(err, domain.ErrTaskNotFound),
		domain.IsKind(err, domain.ErrFileMissing):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
