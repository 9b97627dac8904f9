package api

import (
	"errors"
	"net/http"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func httpStatusForDomainError(err error) (int, bool) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr == nil {
		return 0, false
	}

	switch domErr.Category {
	case core.ErrCatValidation:
		return http.StatusUnprocessableEntity, true
	case core.ErrCatNotFound:
		return http.StatusNotFound, true
	case core.ErrCatConflict:
		return http.StatusConflict, true
	case core.ErrCatTransport, core.ErrCatCoercion:
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, true
	}
}

// respondDomainError maps err to a status and writes the operator-facing
// message. Errors outside the domain become a generic 500.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	status, ok := httpStatusForDomainError(err)
	if !ok {
		s.logger.Error("unexpected handler error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	var domErr *core.DomainError
	errors.As(err, &domErr)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal handler error", "error", err)
	}
	respondJSON(w, status, ErrorResponse{
		Error: core.UserMessage(err, "internal error"),
		Code:  domErr.Code,
	})
}
