package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
	"hinge-bot/internal/service"
	"hinge-bot/internal/store"
)

// ProfileHandler mantiene dependencias para perfiles individuales, standouts
// y el store de perfiles guardados.
type ProfileHandler struct {
	logger *zap.Logger
	client *hinge.Client
	store  store.ProfileStore
}

// NewProfileHandler crea una instancia de ProfileHandler con dependencias necesarias.
func NewProfileHandler(logger *zap.Logger, client *hinge.Client, st store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{logger: logger, client: client, store: st}
}

// GetProfile maneja GET /api/profile/:id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	users, err := h.client.PublicUsers(c.Request.Context(), []string{id})
	if err != nil {
		h.logger.Error("profile fetch failed", zap.String("subject_id", id), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch profile"})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": users[0].ToCandidate("")})
}

// GetMe maneja GET /api/me: el perfil propio como lo ven otros.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	users, err := h.client.PublicUsers(c.Request.Context(), []string{h.client.UserID()})
	if err != nil {
		h.logger.Error("own profile fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch own profile"})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "own profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": users[0].ToCandidate("")})
}

// GetStandouts maneja GET /api/standouts.
func (h *ProfileHandler) GetStandouts(c *gin.Context) {
	fetcher := hinge.NewStandoutFetcher(h.client, h.logger)
	batch, err := fetcher.FetchBatch(c.Request.Context())
	if err != nil {
		h.logger.Error("standouts fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch standouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(batch), "standouts": batch})
}

// SaveProfiles maneja POST /api/save-profiles: append idempotente de los
// candidatos del body al store durable.
func (h *ProfileHandler) SaveProfiles(c *gin.Context) {
	var candidates []domain.ProfileCandidate
	if err := c.ShouldBindJSON(&candidates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now()
	records := make([]domain.SavedProfile, 0, len(candidates))
	for _, cand := range candidates {
		records = append(records, domain.NewSavedProfile(cand, now))
	}

	saved, total, err := h.store.AppendNew(c.Request.Context(), records)
	if err != nil {
		h.logger.Error("save profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"saved":   saved,
		"total":   total,
		"skipped": len(records) - saved,
	})
}

// ListSaved maneja POST /api/saved-profiles/search: los registros guardados,
// filtrados con el FilterSet del body (body vacío = todos).
func (h *ProfileHandler) ListSaved(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list saved profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read store"})
		return
	}

	filters := service.DefaultFilterSet()
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
			return
		}
	}

	var out []domain.SavedProfile
	for _, r := range records {
		if service.Matches(savedToCandidate(r), filters) {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "total": len(records), "profiles": out})
}

// GetSaved maneja GET /api/saved-profiles: todos los registros guardados.
func (h *ProfileHandler) GetSaved(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list saved profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read store"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "profiles": records})
}

// ClearSaved maneja DELETE /api/saved-profiles. Irreversible.
func (h *ProfileHandler) ClearSaved(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		h.logger.Error("clear store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear store"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// savedToCandidate rearma la vista de candidato para evaluar filtros sobre
// registros persistidos.
func savedToCandidate(r domain.SavedProfile) domain.ProfileCandidate {
	return domain.ProfileCandidate{
		SubjectID:     r.SubjectID,
		FirstName:     r.FirstName,
		Age:           r.Age,
		Location:      r.Location,
		JobTitle:      r.JobTitle,
		School:        r.School,
		HeightCm:      r.HeightCm,
		HeightDisplay: r.HeightDisplay,
		Verified:      r.Verified,
		Drinking:      r.Drinking,
		Smoking:       r.Smoking,
		Children:      r.Children,
		FamilyPlans:   r.FamilyPlans,
		Standout:      r.Standout,
		Photos:        r.Photos,
		Prompts:       r.Prompts,
	}
}
