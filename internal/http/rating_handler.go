package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
)

// RatingAPI es el contrato del servicio de rating hacia esta capa.
type RatingAPI interface {
	Like(ctx context.Context, subjectID, ratingToken string, content hinge.LikeContent) (domain.LikeLimit, error)
	Skip(ctx context.Context, subjectID, ratingToken string) error
	Limit(ctx context.Context) (domain.LikeLimit, error)
	Message(ctx context.Context, subjectID, message string, matchMessage bool) (json.RawMessage, error)
}

// RatingHandler mantiene dependencias para like, skip y mensajes.
type RatingHandler struct {
	logger  *zap.Logger
	rating  RatingAPI
	session *SessionState
}

// NewRatingHandler crea una instancia de RatingHandler con dependencias necesarias.
func NewRatingHandler(logger *zap.Logger, rating RatingAPI, session *SessionState) *RatingHandler {
	return &RatingHandler{logger: logger, rating: rating, session: session}
}

// Like maneja POST /api/like. El contenido apunta a una foto (content_id) o
// a un prompt (question_id); superlike consume una rosa.
func (h *RatingHandler) Like(c *gin.Context) {
	var req struct {
		SubjectID   string `json:"subject_id" binding:"required"`
		RatingToken string `json:"rating_token" binding:"required"`
		Comment     string `json:"comment"`
		ContentID   string `json:"content_id"`
		QuestionID  string `json:"question_id"`
		Superlike   bool   `json:"superlike"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	limit, err := h.rating.Like(c.Request.Context(), req.SubjectID, req.RatingToken, hinge.LikeContent{
		Comment:    req.Comment,
		ContentID:  req.ContentID,
		QuestionID: req.QuestionID,
		Superlike:  req.Superlike,
	})
	if err != nil {
		h.logger.Error("like failed", zap.String("subject_id", req.SubjectID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "like failed"})
		return
	}

	// El token quedó consumido: el sujeto sale del acumulado de la sesión.
	h.session.Remove(req.SubjectID)
	c.JSON(http.StatusOK, gin.H{"limit": limit})
}

// Skip maneja POST /api/skip.
func (h *RatingHandler) Skip(c *gin.Context) {
	var req struct {
		SubjectID   string `json:"subject_id" binding:"required"`
		RatingToken string `json:"rating_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.rating.Skip(c.Request.Context(), req.SubjectID, req.RatingToken); err != nil {
		h.logger.Error("skip failed", zap.String("subject_id", req.SubjectID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "skip failed"})
		return
	}

	h.session.Remove(req.SubjectID)
	c.JSON(http.StatusOK, gin.H{"status": "skipped"})
}

// LikeLimit maneja GET /api/like-limit.
func (h *RatingHandler) LikeLimit(c *gin.Context) {
	limit, err := h.rating.Limit(c.Request.Context())
	if err != nil {
		h.logger.Error("like limit fetch failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "could not fetch like limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"limit": limit})
}

// Message maneja POST /api/message.
func (h *RatingHandler) Message(c *gin.Context) {
	var req struct {
		SubjectID    string `json:"subject_id" binding:"required"`
		Message      string `json:"message" binding:"required"`
		MatchMessage bool   `json:"match_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.rating.Message(c.Request.Context(), req.SubjectID, req.Message, req.MatchMessage)
	if err != nil {
		h.logger.Error("message send failed", zap.String("subject_id", req.SubjectID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": "message send failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": resp})
}
