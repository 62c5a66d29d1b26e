package http

import (
	"errors"
	"net/http"

	"hinge-bot/internal/hinge"
)

// statusForError traduce la taxonomía del cliente de Hinge a un status de
// esta API: throttle y transitorios son 502/429 (el caller puede esperar),
// fatales son 502 con cuerpo distinto a nivel handler.
func statusForError(err error) int {
	var apiErr *hinge.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case hinge.KindRateLimited:
		return http.StatusTooManyRequests
	case hinge.KindFatal:
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return http.StatusUnauthorized
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
