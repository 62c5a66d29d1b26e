package domain

// ProfileSet es el acumulado de la sesión: un mapping subjectId -> candidato
// que preserva orden de inserción. Solo crece mediante Merge; Remove existe
// para el descarte explícito tras un like/skip del usuario.
type ProfileSet struct {
	order []string
	byID  map[string]ProfileCandidate
}

// NewProfileSet crea un set vacío.
func NewProfileSet() *ProfileSet {
	return &ProfileSet{byID: make(map[string]ProfileCandidate)}
}

// Merge inserta los candidatos del batch cuyo SubjectID no estaba presente,
// en el orden del batch, y devuelve exactamente los agregados. Entradas ya
// existentes no se tocan (sin overwrite en duplicado).
func (s *ProfileSet) Merge(batch []ProfileCandidate) []ProfileCandidate {
	var added []ProfileCandidate
	for _, c := range batch {
		if c.SubjectID == "" {
			continue
		}
		if _, ok := s.byID[c.SubjectID]; ok {
			continue
		}
		s.byID[c.SubjectID] = c
		s.order = append(s.order, c.SubjectID)
		added = append(added, c)
	}
	return added
}

// Get devuelve el candidato y si existe.
func (s *ProfileSet) Get(subjectID string) (ProfileCandidate, bool) {
	c, ok := s.byID[subjectID]
	return c, ok
}

// Remove elimina un sujeto del set (post like/skip).
func (s *ProfileSet) Remove(subjectID string) {
	if _, ok := s.byID[subjectID]; !ok {
		return
	}
	delete(s.byID, subjectID)
	for i, id := range s.order {
		if id == subjectID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len devuelve la cantidad de sujetos acumulados.
func (s *ProfileSet) Len() int {
	return len(s.order)
}

// All devuelve los candidatos en orden de inserción.
func (s *ProfileSet) All() []ProfileCandidate {
	out := make([]ProfileCandidate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
