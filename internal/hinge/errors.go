package hinge

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica un fallo de la API según cómo debe reaccionar el
// controlador de backoff.
type ErrorKind int

const (
	// KindTransient cubre errores de red y 5xx: recuperable, escala backoff.
	KindTransient ErrorKind = iota
	// KindRateLimited es un throttle señalado por el servidor (429).
	KindRateLimited
	// KindFatal no admite reintento: credenciales rechazadas o respuesta
	// malformada.
	KindFatal
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindFatal:
		return "fatal"
	default:
		return "transient"
	}
}

// APIError es el error tipado de cualquier llamada a la API de Hinge.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("hinge api %s: status=%d endpoint=%s: %s", e.Kind, e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("hinge api %s: endpoint=%s: %s", e.Kind, e.Endpoint, e.Message)
}

// KindOf extrae la clasificación de un error; errores no tipados cuentan
// como transitorios (el caller ya filtró cancelaciones de contexto).
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

// kindForStatus mapea el status HTTP a la taxonomía.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindTransient
	default:
		// 401/403 y demás 4xx: sin reintento que tenga sentido.
		return KindFatal
	}
}
