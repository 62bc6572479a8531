package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/vitrine/pkg/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps engine and session errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrClosed),
		errors.Is(err, domain.ErrUnknownCarousel),
		errors.Is(err, domain.ErrNoSlides):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = http.StatusText(status)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, s.logger, status, errorBody{Error: msg})
}
