package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hinge-bot/internal/hinge"
	"hinge-bot/internal/service"
)

// SystemHandler mantiene dependencias para health y las superficies de
// cuenta propias (una llamada upstream cada una).
type SystemHandler struct {
	logger      *zap.Logger
	client      *hinge.Client
	bearerToken string
}

// NewSystemHandler crea una instancia de SystemHandler con dependencias necesarias.
func NewSystemHandler(logger *zap.Logger, client *hinge.Client, bearerToken string) *SystemHandler {
	return &SystemHandler{logger: logger, client: client, bearerToken: bearerToken}
}

// Health maneja GET /api/health: estado de la credencial capturada más una
// llamada barata al upstream.
func (h *SystemHandler) Health(c *gin.Context) {
	creds, err := service.InspectToken(h.bearerToken)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":      "unhealthy",
			"api_working": false,
			"error":       err.Error(),
		})
		return
	}
	if creds.Expired {
		c.JSON(http.StatusOK, gin.H{
			"status":      "unhealthy",
			"api_working": false,
			"credentials": creds,
			"error":       "bearer token expired",
		})
		return
	}

	if _, err := h.client.LikeLimit(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":      "unhealthy",
			"api_working": false,
			"credentials": creds,
			"error":       err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"api_working": true,
		"credentials": creds,
	})
}

// Account maneja GET /api/account.
func (h *SystemHandler) Account(c *gin.Context) {
	account, err := h.client.AccountInfo(c.Request.Context())
	if err != nil {
		h.logger.Error("account fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

// Traits maneja GET /api/traits.
func (h *SystemHandler) Traits(c *gin.Context) {
	traits, err := h.client.UserTraits(c.Request.Context())
	if err != nil {
		h.logger.Error("traits fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch traits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"traits": traits})
}

// Settings maneja GET /api/settings.
func (h *SystemHandler) Settings(c *gin.Context) {
	settings, err := h.client.Settings(c.Request.Context())
	if err != nil {
		h.logger.Error("settings fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Media maneja GET /api/media/*path: proxy de imágenes del CDN para que la
// UI no necesite los headers del cliente móvil.
func (h *SystemHandler) Media(c *gin.Context) {
	path := c.Param("path")
	data, err := h.client.Image(c.Request.Context(), path)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "could not fetch media"})
		return
	}
	c.Data(http.StatusOK, "image/webp", data)
}
