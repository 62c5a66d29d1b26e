package hinge

import (
	"context"

	"go.uber.org/zap"

	"hinge-bot/internal/domain"
)

// Fetcher entrega el próximo batch de candidatos del feed. Cero candidatos
// con error nil es un resultado válido y significativo: el upstream no tiene
// nada nuevo.
type Fetcher interface {
	FetchBatch(ctx context.Context) ([]domain.ProfileCandidate, error)
}

// FeedFetcher implementa Fetcher combinando /rec/v2 con /user/v2/public:
// el feed aporta ids y rating tokens, el lookup público aporta los perfiles.
type FeedFetcher struct {
	client      *Client
	activeToday bool
	newHere     bool
	logger      *zap.Logger
}

// NewFeedFetcher crea el fetcher del feed de recomendaciones. activeToday y
// newHere replican los filtros de feed del cliente móvil (solo activos hoy,
// solo nuevos en la app).
func NewFeedFetcher(client *Client, activeToday, newHere bool, logger *zap.Logger) *FeedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedFetcher{client: client, activeToday: activeToday, newHere: newHere, logger: logger}
}

func (f *FeedFetcher) FetchBatch(ctx context.Context) ([]domain.ProfileCandidate, error) {
	page, err := f.client.Recommendations(ctx, f.activeToday, f.newHere)
	if err != nil {
		return nil, err
	}

	subjects := page.Subjects()
	if len(subjects) == 0 {
		f.logger.Debug("feed page empty")
		return nil, nil
	}

	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.SubjectID)
	}

	users, err := f.client.PublicUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]PublicUser, len(users))
	for _, u := range users {
		byID[u.IdentityID] = u
	}

	// Se respeta el orden del feed; un sujeto sin perfil público igual entra
	// con id y token para no perder el material de rating.
	batch := make([]domain.ProfileCandidate, 0, len(subjects))
	for _, s := range subjects {
		if u, ok := byID[s.SubjectID]; ok {
			batch = append(batch, u.ToCandidate(s.RatingToken))
			continue
		}
		batch = append(batch, domain.ProfileCandidate{
			SubjectID:   s.SubjectID,
			RatingToken: s.RatingToken,
		})
	}

	f.logger.Debug("feed page fetched", zap.Int("subjects", len(batch)))
	return batch, nil
}

// StandoutFetcher implementa Fetcher sobre /standouts/v2. Los standouts
// requieren rosa para el like; se marcan como tales.
type StandoutFetcher struct {
	client *Client
	logger *zap.Logger
}

// NewStandoutFetcher crea el fetcher de destacados.
func NewStandoutFetcher(client *Client, logger *zap.Logger) *StandoutFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StandoutFetcher{client: client, logger: logger}
}

func (f *StandoutFetcher) FetchBatch(ctx context.Context) ([]domain.ProfileCandidate, error) {
	page, err := f.client.Standouts(ctx)
	if err != nil {
		return nil, err
	}

	subjects := append(append([]SubjectRef{}, page.Free...), page.Paid...)
	if len(subjects) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.SubjectID)
	}

	users, err := f.client.PublicUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]PublicUser, len(users))
	for _, u := range users {
		byID[u.IdentityID] = u
	}

	batch := make([]domain.ProfileCandidate, 0, len(subjects))
	for _, s := range subjects {
		var c domain.ProfileCandidate
		if u, ok := byID[s.SubjectID]; ok {
			c = u.ToCandidate(s.RatingToken)
		} else {
			c = domain.ProfileCandidate{SubjectID: s.SubjectID, RatingToken: s.RatingToken}
		}
		c.Standout = true
		batch = append(batch, c)
	}
	return batch, nil
}
