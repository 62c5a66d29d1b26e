package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
	"hinge-bot/internal/store"
)

// Valores centinela para la última llamada de progreso: distinguen el
// agotamiento normal del feed de una terminación por error.
const (
	ProgressExhausted = -1
	ProgressFailed    = -2
)

// ProgressFunc recibe el total acumulado y los agregados del último batch
// (o un centinela en la llamada final). Se invoca en orden estricto de
// fetch, nunca reordenado ni batcheado.
type ProgressFunc func(total, added int)

// AcquisitionService orquesta el loop incremental de adquisición: fetch →
// dedup → persistencia → progreso, con el pacing del BackoffController.
// Una sola request en vuelo por vez, deliberadamente: concurrencia contra
// el feed rompería el respeto del rate limit.
type AcquisitionService struct {
	fetcher       hinge.Fetcher
	store         store.ProfileStore
	logger        *zap.Logger
	newController func() *BackoffController
	now           func() time.Time
}

// NewAcquisitionService arma el servicio con el controlador por defecto.
func NewAcquisitionService(fetcher hinge.Fetcher, st store.ProfileStore, logger *zap.Logger) *AcquisitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcquisitionService{
		fetcher:       fetcher,
		store:         st,
		logger:        logger,
		newController: NewBackoffController,
		now:           time.Now,
	}
}

// Acquire llena set hasta targetCount o hasta que el controlador termine.
// El caller es dueño del set: el servicio opera sobre el estado que le
// pasan y no guarda nada propio entre corridas.
//
// Cancelación vía ctx se chequea entre iteraciones y durante las esperas,
// nunca a mitad de un merge: al cancelar se devuelve el set tal como quedó,
// sin batch a medio mergear. Devuelve la razón de terminación; con
// ReasonFatal o ReasonTooManyErrors el error subyacente acompaña.
func (s *AcquisitionService) Acquire(ctx context.Context, targetCount int, set *domain.ProfileSet, onProgress ProgressFunc) (TerminationReason, error) {
	if onProgress == nil {
		onProgress = func(int, int) {}
	}
	ctrl := s.newController()

	// Una página del feed trae ~10 sujetos, así que targetCount intentos
	// alcanzan incluso si cada batch aporta un único candidato nuevo. El
	// piso evita que targets chicos mueran por duplicados tempranos.
	maxAttempts := targetCount
	if maxAttempts < 10 {
		maxAttempts = 10
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts && set.Len() < targetCount; attempt++ {
		if err := ctx.Err(); err != nil {
			s.logger.Info("acquisition cancelled", zap.Int("total", set.Len()))
			return ReasonNone, err
		}

		batch, err := s.fetcher.FetchBatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ReasonNone, ctx.Err()
			}
			kind := hinge.KindOf(err)
			lastErr = err
			s.logger.Warn("fetch attempt failed",
				zap.Int("attempt", attempt),
				zap.String("kind", kind.String()),
				zap.Error(err),
			)
			decision := ctrl.OnError(kind)
			if decision.Terminated {
				onProgress(set.Len(), ProgressFailed)
				return decision.Reason, lastErr
			}
			if err := sleepCtx(ctx, decision.Wait); err != nil {
				return ReasonNone, err
			}
			continue
		}

		added := set.Merge(batch)
		if len(added) > 0 {
			records := make([]domain.SavedProfile, 0, len(added))
			for _, c := range added {
				records = append(records, domain.NewSavedProfile(c, s.now()))
			}
			saved, total, err := s.store.AppendNew(ctx, records)
			if err != nil {
				// La persistencia es local: un fallo acá no es un problema
				// del upstream, se corta sin reintentos.
				onProgress(set.Len(), ProgressFailed)
				return ReasonFatal, err
			}
			s.logger.Info("batch merged",
				zap.Int("batch_size", len(batch)),
				zap.Int("added", len(added)),
				zap.Int("saved", saved),
				zap.Int("stored_total", total),
			)
		}

		onProgress(set.Len(), len(added))

		decision := ctrl.OnBatch(len(added))
		if decision.Terminated {
			s.logger.Info("feed exhausted", zap.Int("total", set.Len()))
			onProgress(set.Len(), ProgressExhausted)
			return ReasonExhausted, nil
		}

		if set.Len() >= targetCount {
			break
		}
		if err := sleepCtx(ctx, decision.Wait); err != nil {
			return ReasonNone, err
		}
	}

	s.logger.Info("acquisition finished", zap.Int("total", set.Len()), zap.Int("target", targetCount))
	return ReasonNone, nil
}

// sleepCtx espera d o hasta que el contexto se cancele.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
