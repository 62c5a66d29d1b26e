package service

import (
	"math/rand"
	"time"

	"hinge-bot/internal/hinge"
)

// TerminationReason distingue cómo terminó una adquisición.
type TerminationReason int

const (
	// ReasonNone: no hubo terminación del controlador (target alcanzado o
	// cancelación del caller).
	ReasonNone TerminationReason = iota
	// ReasonExhausted: el feed dejó de ofrecer material nuevo. No es error.
	ReasonExhausted
	// ReasonTooManyErrors: racha de errores recuperables superó el techo.
	ReasonTooManyErrors
	// ReasonFatal: credenciales rechazadas o respuesta malformada.
	ReasonFatal
)

func (r TerminationReason) String() string {
	switch r {
	case ReasonExhausted:
		return "exhausted"
	case ReasonTooManyErrors:
		return "too_many_errors"
	case ReasonFatal:
		return "fatal"
	default:
		return "none"
	}
}

// Decision es la salida pura del controlador para un intento: cuánto
// esperar antes del próximo fetch, o la orden de terminar.
type Decision struct {
	Wait       time.Duration
	Terminated bool
	Reason     TerminationReason
}

const (
	defaultMinWait        = 5 * time.Second
	defaultMaxWait        = 15 * time.Second
	defaultMaxBackoff     = 2 * time.Minute
	defaultMaxErrorStreak = 5
	defaultMaxEmptyStreak = 3
)

// BackoffController es la máquina de estados de pacing: espera corta con
// jitter en operación normal (cadencia no fingerprinteable), escalada
// acotada ante errores recuperables, y terminación por agotamiento (rachas
// de batches sin material nuevo) o por racha de errores. Consume resultados
// y emite valores puros: no duerme ni toca la red, así se testea solo.
type BackoffController struct {
	minWait        time.Duration
	maxWait        time.Duration
	maxBackoff     time.Duration
	maxErrorStreak int
	maxEmptyStreak int

	errorStreak int
	emptyStreak int
	rng         *rand.Rand
}

// NewBackoffController crea el controlador con los umbrales por defecto
// (racha de vacíos 3, techo de errores 5, espera 5-15s).
func NewBackoffController() *BackoffController {
	return &BackoffController{
		minWait:        defaultMinWait,
		maxWait:        defaultMaxWait,
		maxBackoff:     defaultMaxBackoff,
		maxErrorStreak: defaultMaxErrorStreak,
		maxEmptyStreak: defaultMaxEmptyStreak,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ErrorStreak expone la racha de errores actual.
func (b *BackoffController) ErrorStreak() int { return b.errorStreak }

// EmptyStreak expone la racha de batches sin material nuevo.
func (b *BackoffController) EmptyStreak() int { return b.emptyStreak }

// OnBatch procesa un fetch exitoso con addedCount candidatos nuevos. Un
// batch no vacío resetea ambas rachas aunque venga de una racha de errores
// (recuperación); addedCount 0 incrementa la racha de vacíos.
func (b *BackoffController) OnBatch(addedCount int) Decision {
	if addedCount > 0 {
		b.errorStreak = 0
		b.emptyStreak = 0
		return Decision{Wait: b.jitter()}
	}

	b.emptyStreak++
	if b.emptyStreak >= b.maxEmptyStreak {
		return Decision{Terminated: true, Reason: ReasonExhausted}
	}
	return Decision{Wait: b.jitter()}
}

// OnError procesa un fallo clasificado. Fatal termina de inmediato; los
// recuperables escalan la espera con la racha, acotada por maxBackoff.
func (b *BackoffController) OnError(kind hinge.ErrorKind) Decision {
	if kind == hinge.KindFatal {
		return Decision{Terminated: true, Reason: ReasonFatal}
	}

	b.errorStreak++
	if b.errorStreak >= b.maxErrorStreak {
		return Decision{Terminated: true, Reason: ReasonTooManyErrors}
	}

	wait := b.minWait << (b.errorStreak - 1)
	if wait > b.maxBackoff {
		wait = b.maxBackoff
	}
	return Decision{Wait: wait}
}

// jitter devuelve una espera uniforme dentro de la ventana [minWait, maxWait).
func (b *BackoffController) jitter() time.Duration {
	window := b.maxWait - b.minWait
	if window <= 0 {
		return b.minWait
	}
	return b.minWait + time.Duration(b.rng.Int63n(int64(window)))
}
