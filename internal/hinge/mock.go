package hinge

import (
	"context"

	"hinge-bot/internal/domain"
)

// MockFetcher permite tests del loop de adquisición sin red: entrega
// batches y errores en secuencia programada. Agotada la secuencia devuelve
// batches vacíos.
type MockFetcher struct {
	Batches [][]domain.ProfileCandidate
	Errs    []error
	Calls   int
}

func (m *MockFetcher) FetchBatch(_ context.Context) ([]domain.ProfileCandidate, error) {
	i := m.Calls
	m.Calls++
	if i < len(m.Errs) && m.Errs[i] != nil {
		return nil, m.Errs[i]
	}
	if i < len(m.Batches) {
		return m.Batches[i], nil
	}
	return nil, nil
}
