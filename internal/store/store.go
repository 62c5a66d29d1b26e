package store

import (
	"context"

	"hinge-bot/internal/domain"
)

// ProfileStore define el contrato del sink de persistencia. AppendNew es
// idempotente: lee el key set actual y escribe solo los subjectId ausentes;
// duplicados se excluyen en silencio, nunca son error. Clear vacía el store
// y es irreversible.
type ProfileStore interface {
	SavedIDs(ctx context.Context) (map[string]struct{}, error)
	AppendNew(ctx context.Context, records []domain.SavedProfile) (saved int, total int, err error)
	List(ctx context.Context) ([]domain.SavedProfile, error)
	Clear(ctx context.Context) error
}
