package service

import (
	"sort"
	"strings"

	"hinge-bot/internal/domain"
)

// Edades por defecto: con estos valores el filtro de edad está inactivo y
// no excluye a nadie.
const (
	DefaultMinAge = 18
	DefaultMaxAge = 99
)

// FilterSet es el conjunto de predicados configurados por el usuario. Un
// perfil pasa solo si satisface todos los predicados activos (los que no
// están en su valor por defecto). Cero en un campo numérico = apagado.
type FilterSet struct {
	MinAge        int    `json:"min_age"`
	MaxAge        int    `json:"max_age"`
	Location      string `json:"location"`
	VerifiedOnly  bool   `json:"verified_only"`
	RequireJob    bool   `json:"require_job"`
	RequireSchool bool   `json:"require_school"`
	MinHeightCm   int    `json:"min_height_cm"`
	MaxHeightCm   int    `json:"max_height_cm"`
	Drinking      int    `json:"drinking"`
	Smoking       int    `json:"smoking"`
	Children      int    `json:"children"`
	FamilyPlans   int    `json:"family_plans"`
}

// DefaultFilterSet devuelve el set sin ningún predicado activo.
func DefaultFilterSet() FilterSet {
	return FilterSet{MinAge: DefaultMinAge, MaxAge: DefaultMaxAge}
}

// Normalize completa los defaults de edad cuando vienen en cero (p.ej. un
// body JSON parcial) para que "sin valor" no active el filtro.
func (f FilterSet) Normalize() FilterSet {
	if f.MinAge == 0 {
		f.MinAge = DefaultMinAge
	}
	if f.MaxAge == 0 {
		f.MaxAge = DefaultMaxAge
	}
	return f
}

func (f FilterSet) ageActive() bool {
	return f.MinAge > DefaultMinAge || f.MaxAge < DefaultMaxAge
}

func (f FilterSet) heightActive() bool {
	return f.MinHeightCm > 0 || f.MaxHeightCm > 0
}

// Matches evalúa el perfil contra los predicados activos como conjunción.
// Campos de rango no informados (edad 0, altura 0) pasan mientras el filtro
// esté inactivo; con un límite explícito quedan excluidos porque no se
// puede demostrar que lo cumplan.
func Matches(p domain.ProfileCandidate, f FilterSet) bool {
	f = f.Normalize()

	if f.ageActive() {
		if p.Age == 0 || p.Age < f.MinAge || p.Age > f.MaxAge {
			return false
		}
	}

	if f.Location != "" {
		if !strings.Contains(strings.ToLower(p.Location), strings.ToLower(strings.TrimSpace(f.Location))) {
			return false
		}
	}

	if f.VerifiedOnly && !p.Verified {
		return false
	}
	if f.RequireJob && strings.TrimSpace(p.JobTitle) == "" {
		return false
	}
	if f.RequireSchool && strings.TrimSpace(p.School) == "" {
		return false
	}

	if f.heightActive() {
		if p.HeightCm == 0 {
			return false
		}
		if f.MinHeightCm > 0 && p.HeightCm < f.MinHeightCm {
			return false
		}
		if f.MaxHeightCm > 0 && p.HeightCm > f.MaxHeightCm {
			return false
		}
	}

	if f.Drinking != 0 && p.Drinking != f.Drinking {
		return false
	}
	if f.Smoking != 0 && p.Smoking != f.Smoking {
		return false
	}
	if f.Children != 0 && p.Children != f.Children {
		return false
	}
	if f.FamilyPlans != 0 && p.FamilyPlans != f.FamilyPlans {
		return false
	}

	return true
}

// FilterProfiles aplica Matches preservando el orden de entrada.
func FilterProfiles(profiles []domain.ProfileCandidate, f FilterSet) []domain.ProfileCandidate {
	var out []domain.ProfileCandidate
	for _, p := range profiles {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// FilterOption es un valor crudo observado con su etiqueta humana.
type FilterOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// DeriveFilterOptions junta los valores distintos observados para un campo
// de estilo de vida en el corpus dado, cada uno con su etiqueta, ordenados
// por etiqueta.
func DeriveFilterOptions(profiles []domain.ProfileCandidate, field string) []FilterOption {
	seen := make(map[int]struct{})
	var options []FilterOption
	for _, p := range profiles {
		v, ok := domain.LifestyleValue(p, field)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, FilterOption{Value: v, Label: domain.LifestyleLabel(field, v)})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Label < options[j].Label })
	return options
}
