package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
)

// ratingClient es lo que el servicio necesita del cliente de Hinge.
type ratingClient interface {
	LikeProfile(ctx context.Context, subjectID, ratingToken string, content hinge.LikeContent) (json.RawMessage, error)
	SkipProfile(ctx context.Context, subjectID, ratingToken string) error
	LikeLimit(ctx context.Context) (hinge.LikeLimitResponse, error)
	SendMessage(ctx context.Context, subjectID, message string, matchMessage bool) (json.RawMessage, error)
}

// RatingService envuelve like/skip/mensaje y mantiene fresca la cuota:
// después de cada like exitoso se repollea /likelimit y se cachea.
type RatingService struct {
	client ratingClient
	quota  QuotaCache
	logger *zap.Logger
}

// NewRatingService crea el servicio de rating.
func NewRatingService(client *hinge.Client, quota QuotaCache, logger *zap.Logger) *RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quota == nil {
		quota = NewMemoryQuotaCache(0)
	}
	return &RatingService{client: client, quota: quota, logger: logger}
}

// Like envía el like y devuelve la cuota refrescada. El rating token queda
// consumido más allá del resultado del refresh.
func (s *RatingService) Like(ctx context.Context, subjectID, ratingToken string, content hinge.LikeContent) (domain.LikeLimit, error) {
	if _, err := s.client.LikeProfile(ctx, subjectID, ratingToken, content); err != nil {
		return domain.LikeLimit{}, err
	}
	s.logger.Info("profile liked",
		zap.String("subject_id", subjectID),
		zap.Bool("superlike", content.Superlike),
	)

	limit, err := s.client.LikeLimit(ctx)
	if err != nil {
		// El like ya salió; la cuota vieja del cache sigue siendo la mejor
		// aproximación disponible.
		s.logger.Warn("like limit refresh failed", zap.Error(err))
		cached, _ := s.quota.Get()
		return cached, nil
	}
	quota := limit.ToDomain()
	s.quota.Set(quota)
	return quota, nil
}

// Skip descarta el sujeto upstream.
func (s *RatingService) Skip(ctx context.Context, subjectID, ratingToken string) error {
	if err := s.client.SkipProfile(ctx, subjectID, ratingToken); err != nil {
		return err
	}
	s.logger.Info("profile skipped", zap.String("subject_id", subjectID))
	return nil
}

// Limit devuelve la cuota cacheada o la consulta y cachea.
func (s *RatingService) Limit(ctx context.Context) (domain.LikeLimit, error) {
	if cached, ok := s.quota.Get(); ok {
		return cached, nil
	}
	limit, err := s.client.LikeLimit(ctx)
	if err != nil {
		return domain.LikeLimit{}, err
	}
	quota := limit.ToDomain()
	s.quota.Set(quota)
	return quota, nil
}

// Message envía un mensaje a un match existente.
func (s *RatingService) Message(ctx context.Context, subjectID, message string, matchMessage bool) (json.RawMessage, error) {
	return s.client.SendMessage(ctx, subjectID, message, matchMessage)
}
