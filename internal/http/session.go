package http

import (
	"sync"

	"hinge-bot/internal/domain"
)

// SessionState es el dueño del set acumulado de la sesión del lado HTTP:
// envuelve el ProfileSet (que no es thread-safe) con un lock para que el
// loop de adquisición y los handlers de lectura no se pisen.
type SessionState struct {
	mu  sync.RWMutex
	set *domain.ProfileSet
}

// NewSessionState crea una sesión vacía.
func NewSessionState() *SessionState {
	return &SessionState{set: domain.NewProfileSet()}
}

// Snapshot devuelve una copia de los candidatos en orden de inserción.
func (s *SessionState) Snapshot() []domain.ProfileCandidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.All()
}

// Merge agrega un batch (página suelta pedida por la UI o delta publicado
// por el loop de adquisición) y devuelve cuántos eran nuevos.
func (s *SessionState) Merge(batch []domain.ProfileCandidate) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set.Merge(batch))
}

// Remove descarta un sujeto tras un like/skip del usuario.
func (s *SessionState) Remove(subjectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Remove(subjectID)
}

// Len devuelve el tamaño del acumulado.
func (s *SessionState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Len()
}
