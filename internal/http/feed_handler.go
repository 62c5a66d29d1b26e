package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
	"hinge-bot/internal/service"
)

// Acquirer es el contrato del loop de adquisición hacia esta capa.
type Acquirer interface {
	Acquire(ctx context.Context, targetCount int, set *domain.ProfileSet, onProgress service.ProgressFunc) (service.TerminationReason, error)
}

// acquireStatus es el snapshot de progreso que la UI pollea.
type acquireStatus struct {
	Running    bool      `json:"running"`
	Status     string    `json:"status"` // idle|running|done|exhausted|failed|cancelled
	Target     int       `json:"target,omitempty"`
	Total      int       `json:"total"`
	LastAdded  int       `json:"last_added"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// FeedHandler mantiene dependencias para el feed y la adquisición en vivo.
// Corre a lo sumo una adquisición por vez; el progreso se publica bajo lock
// y la cancelación llega por el contexto del run.
type FeedHandler struct {
	logger   *zap.Logger
	fetcher  hinge.Fetcher
	acquirer Acquirer
	session  *SessionState

	mu     sync.Mutex
	status acquireStatus
	cancel context.CancelFunc
}

// NewFeedHandler crea una instancia de FeedHandler con dependencias necesarias.
func NewFeedHandler(logger *zap.Logger, fetcher hinge.Fetcher, acquirer Acquirer, session *SessionState) *FeedHandler {
	return &FeedHandler{
		logger:   logger,
		fetcher:  fetcher,
		acquirer: acquirer,
		session:  session,
		status:   acquireStatus{Status: "idle"},
	}
}

// GetRecommendations maneja GET /api/recommendations: una página del feed,
// mergeada al acumulado de la sesión.
func (h *FeedHandler) GetRecommendations(c *gin.Context) {
	batch, err := h.fetcher.FetchBatch(c.Request.Context())
	if err != nil {
		h.logger.Error("fetch recommendations failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch recommendations"})
		return
	}
	added := h.session.Merge(batch)
	c.JSON(http.StatusOK, gin.H{
		"count":         len(batch),
		"added":         added,
		"session_total": h.session.Len(),
		"subjects":      batch,
	})
}

// StartAcquire maneja POST /api/acquire: lanza el loop en background.
func (h *FeedHandler) StartAcquire(c *gin.Context) {
	var req struct {
		Target int `json:"target" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.mu.Lock()
	if h.status.Running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "acquisition already running"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.status = acquireStatus{
		Running:   true,
		Status:    "running",
		Target:    req.Target,
		Total:     h.session.Len(),
		StartedAt: time.Now().UTC(),
	}
	h.mu.Unlock()

	// El loop trabaja sobre un set privado sembrado con la sesión actual y
	// publica solo el delta de cada batch: un like/skip o una página suelta
	// mergeada en plena corrida no se pisan. El seed solo crece, así que el
	// delta es el sufijo posterior a lo ya publicado.
	seed := domain.NewProfileSet()
	seed.Merge(h.session.Snapshot())
	published := seed.Len()

	go func() {
		defer cancel()
		reason, err := h.acquirer.Acquire(ctx, req.Target, seed, func(total, added int) {
			if added > 0 {
				all := seed.All()
				h.session.Merge(all[published:])
				published = len(all)
			}
			h.mu.Lock()
			h.status.Total = total
			h.status.LastAdded = added
			h.mu.Unlock()
		})

		h.mu.Lock()
		defer h.mu.Unlock()
		h.status.Running = false
		h.status.FinishedAt = time.Now().UTC()
		switch {
		case err != nil && errors.Is(err, context.Canceled):
			h.status.Status = "cancelled"
		case reason == service.ReasonExhausted:
			h.status.Status = "exhausted"
		case reason == service.ReasonTooManyErrors || reason == service.ReasonFatal:
			h.status.Status = "failed"
			if err != nil {
				h.status.Error = err.Error()
			}
		case err != nil:
			h.status.Status = "failed"
			h.status.Error = err.Error()
		default:
			h.status.Status = "done"
		}
		h.logger.Info("acquisition run finished",
			zap.String("status", h.status.Status),
			zap.Int("total", h.status.Total),
		)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "running", "target": req.Target})
}

// AcquireStatus maneja GET /api/acquire/status.
func (h *FeedHandler) AcquireStatus(c *gin.Context) {
	h.mu.Lock()
	snapshot := h.status
	h.mu.Unlock()
	c.JSON(http.StatusOK, snapshot)
}

// CancelAcquire maneja POST /api/acquire/cancel. La cancelación corta entre
// iteraciones, nunca a mitad de una request.
func (h *FeedHandler) CancelAcquire(c *gin.Context) {
	h.mu.Lock()
	running := h.status.Running
	cancel := h.cancel
	h.mu.Unlock()

	if !running || cancel == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no acquisition running"})
		return
	}
	cancel()
	c.JSON(http.StatusOK, gin.H{"status": "cancelling"})
}

// SessionProfiles maneja POST /api/session/profiles: el acumulado de la
// sesión filtrado con el FilterSet del body (body vacío = sin filtros).
func (h *FeedHandler) SessionProfiles(c *gin.Context) {
	filters := service.DefaultFilterSet()
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
			return
		}
	}
	profiles := service.FilterProfiles(h.session.Snapshot(), filters)
	c.JSON(http.StatusOK, gin.H{
		"count":         len(profiles),
		"session_total": h.session.Len(),
		"profiles":      profiles,
	})
}

// FilterOptions maneja GET /api/filter-options?field=drinking: valores
// observados en la sesión con su etiqueta. Sin field devuelve la lista de
// campos filtrables.
func (h *FeedHandler) FilterOptions(c *gin.Context) {
	field := c.Query("field")
	if field == "" {
		c.JSON(http.StatusOK, gin.H{"fields": domain.LifestyleFields()})
		return
	}
	options := service.DeriveFilterOptions(h.session.Snapshot(), field)
	c.JSON(http.StatusOK, gin.H{"field": field, "options": options})
}
