package domain

// Photo describe una foto del perfil tal como la sirve el CDN de medios.
type Photo struct {
	ContentID string `json:"content_id"`
	CdnID     string `json:"cdn_id,omitempty"`
	URL       string `json:"url"`
}

// PromptAnswer es la respuesta de un sujeto a un prompt de la app.
// Question queda vacío si el questionId no está en la tabla de mapeo.
type PromptAnswer struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question,omitempty"`
	Response   string `json:"response,omitempty"`
}

// ProfileCandidate es un sujeto recomendable ya normalizado en el borde
// del fetch: campos ausentes quedan en su zero value (Age 0, HeightCm 0).
//
// RatingToken es de un solo uso: acompaña exactamente un like o skip y no
// se asume válido después de enviarse.
type ProfileCandidate struct {
	SubjectID   string `json:"subject_id"`
	RatingToken string `json:"rating_token,omitempty"`

	FirstName     string `json:"first_name,omitempty"`
	Age           int    `json:"age,omitempty"`
	Location      string `json:"location,omitempty"`
	JobTitle      string `json:"job_title,omitempty"`
	School        string `json:"school,omitempty"`
	HeightCm      int    `json:"height_cm,omitempty"`
	HeightDisplay string `json:"height_display,omitempty"`
	Verified      bool   `json:"verified,omitempty"`

	// Códigos de estilo de vida; 0 significa no informado.
	Drinking    int `json:"drinking,omitempty"`
	Smoking     int `json:"smoking,omitempty"`
	Children    int `json:"children,omitempty"`
	FamilyPlans int `json:"family_plans,omitempty"`

	Standout bool `json:"standout,omitempty"`

	Photos  []Photo        `json:"photos,omitempty"`
	Prompts []PromptAnswer `json:"prompts,omitempty"`
}
