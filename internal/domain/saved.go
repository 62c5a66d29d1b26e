package domain

import "time"

// SavedProfile es la proyección durable de un candidato: sin campos
// transitorios (el rating token nunca se persiste) y con timestamp de
// guardado. Se crea una sola vez y no se muta después.
type SavedProfile struct {
	SubjectID     string         `json:"subject_id"`
	FirstName     string         `json:"first_name,omitempty"`
	Age           int            `json:"age,omitempty"`
	Location      string         `json:"location,omitempty"`
	JobTitle      string         `json:"job_title,omitempty"`
	School        string         `json:"school,omitempty"`
	HeightCm      int            `json:"height_cm,omitempty"`
	HeightDisplay string         `json:"height_display,omitempty"`
	Verified      bool           `json:"verified,omitempty"`
	Drinking      int            `json:"drinking,omitempty"`
	Smoking       int            `json:"smoking,omitempty"`
	Children      int            `json:"children,omitempty"`
	FamilyPlans   int            `json:"family_plans,omitempty"`
	Standout      bool           `json:"standout,omitempty"`
	Photos        []Photo        `json:"photos,omitempty"`
	Prompts       []PromptAnswer `json:"prompts,omitempty"`
	SavedAt       time.Time      `json:"saved_at"`
}

// NewSavedProfile arma el registro durable a partir del candidato.
func NewSavedProfile(c ProfileCandidate, now time.Time) SavedProfile {
	return SavedProfile{
		SubjectID:     c.SubjectID,
		FirstName:     c.FirstName,
		Age:           c.Age,
		Location:      c.Location,
		JobTitle:      c.JobTitle,
		School:        c.School,
		HeightCm:      c.HeightCm,
		HeightDisplay: c.HeightDisplay,
		Verified:      c.Verified,
		Drinking:      c.Drinking,
		Smoking:       c.Smoking,
		Children:      c.Children,
		FamilyPlans:   c.FamilyPlans,
		Standout:      c.Standout,
		Photos:        c.Photos,
		Prompts:       c.Prompts,
		SavedAt:       now.UTC(),
	}
}
