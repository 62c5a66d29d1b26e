package hinge

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"hinge-bot/internal/domain"
)

// Payloads crudos de la API. La normalización a domain.ProfileCandidate
// pasa una sola vez por acá, en el borde del fetch: el resto del sistema
// nunca ve data sin tipar.

// SubjectRef es la referencia mínima que devuelve el feed: id + token de
// rating de un solo uso.
type SubjectRef struct {
	SubjectID   string `json:"subjectId"`
	RatingToken string `json:"ratingToken"`
}

// RecommendationPage es la respuesta de /rec/v2.
type RecommendationPage struct {
	Feeds []struct {
		Subjects []SubjectRef `json:"subjects"`
	} `json:"feeds"`
}

// Subjects aplana los feeds preservando el orden.
func (p RecommendationPage) Subjects() []SubjectRef {
	var out []SubjectRef
	for _, feed := range p.Feeds {
		out = append(out, feed.Subjects...)
	}
	return out
}

// StandoutsPage es la respuesta de /standouts/v2.
type StandoutsPage struct {
	Free []SubjectRef `json:"free"`
	Paid []SubjectRef `json:"paid"`
}

// LikeLimitResponse es la respuesta de /likelimit.
type LikeLimitResponse struct {
	LikesLeft               int    `json:"likesLeft"`
	SuperlikesLeft          int    `json:"superlikesLeft"`
	FreeSuperlikesLeft      int    `json:"freeSuperlikesLeft"`
	FreeSuperlikeExpiration string `json:"freeSuperlikeExpiration"`
}

// ToDomain proyecta la cuota al modelo propio.
func (r LikeLimitResponse) ToDomain() domain.LikeLimit {
	return domain.LikeLimit{
		LikesLeft:               r.LikesLeft,
		SuperlikesLeft:          r.SuperlikesLeft,
		FreeSuperlikesLeft:      r.FreeSuperlikesLeft,
		FreeSuperlikeExpiration: r.FreeSuperlikeExpiration,
	}
}

// PublicUser es un elemento de /user/v2/public.
type PublicUser struct {
	IdentityID string     `json:"identityId"`
	Profile    rawProfile `json:"profile"`
}

type rawProfile struct {
	FirstName string `json:"firstName"`
	Age       int    `json:"age"`
	Location  struct {
		Name string `json:"name"`
	} `json:"location"`
	JobTitle string `json:"jobTitle"`
	School   string `json:"school"`
	// Height llega como string preformateado (`5' 10"`) o como entero en cm
	// según versión del cliente que subió el perfil.
	Height         json.RawMessage `json:"height"`
	Drinking       int             `json:"drinking"`
	Smoking        int             `json:"smoking"`
	Children       int             `json:"children"`
	FamilyPlans    int             `json:"familyPlans"`
	SelfieVerified bool            `json:"selfieVerified"`
	Photos         []rawPhoto      `json:"photos"`
	Answers        []rawAnswer     `json:"answers"`
}

type rawPhoto struct {
	ContentID string `json:"contentId"`
	CdnID     string `json:"cdnId"`
	URL       string `json:"url"`
}

type rawAnswer struct {
	QuestionID    string `json:"questionId"`
	Type          string `json:"type"`
	Response      string `json:"response"`
	URL           string `json:"url"`
	Transcription struct {
		Transcript string `json:"transcript"`
	} `json:"transcription"`
}

// ToCandidate normaliza el perfil público en un candidato tipado. El token
// de rating lo aporta el feed, no el perfil.
func (u PublicUser) ToCandidate(ratingToken string) domain.ProfileCandidate {
	heightCm, heightDisplay := normalizeHeight(u.Profile.Height)

	c := domain.ProfileCandidate{
		SubjectID:     u.IdentityID,
		RatingToken:   ratingToken,
		FirstName:     u.Profile.FirstName,
		Age:           u.Profile.Age,
		Location:      u.Profile.Location.Name,
		JobTitle:      u.Profile.JobTitle,
		School:        u.Profile.School,
		HeightCm:      heightCm,
		HeightDisplay: heightDisplay,
		Verified:      u.Profile.SelfieVerified,
		Drinking:      u.Profile.Drinking,
		Smoking:       u.Profile.Smoking,
		Children:      u.Profile.Children,
		FamilyPlans:   u.Profile.FamilyPlans,
	}

	for _, p := range u.Profile.Photos {
		c.Photos = append(c.Photos, domain.Photo{
			ContentID: p.ContentID,
			CdnID:     p.CdnID,
			URL:       p.URL,
		})
	}

	for _, a := range u.Profile.Answers {
		answer := domain.PromptAnswer{
			QuestionID: a.QuestionID,
			Question:   PromptText(a.QuestionID),
			Response:   a.Response,
		}
		if a.Type == "voice" {
			answer.Response = a.Transcription.Transcript
		}
		c.Prompts = append(c.Prompts, answer)
	}

	return c
}

// normalizeHeight acepta cm crudos o el string preformateado y devuelve
// ambas representaciones. Valor ausente o no parseable queda en (0, "").
func normalizeHeight(raw json.RawMessage) (int, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, ""
	}

	var cm int
	if err := json.Unmarshal(raw, &cm); err == nil {
		if cm <= 0 {
			return 0, ""
		}
		return cm, formatHeight(cm)
	}

	var display string
	if err := json.Unmarshal(raw, &display); err == nil {
		cm := parseHeightDisplay(display)
		if cm == 0 {
			return 0, strings.TrimSpace(display)
		}
		return cm, strings.TrimSpace(display)
	}

	return 0, ""
}

// parseHeightDisplay interpreta el formato `5' 10"` del cliente iOS.
func parseHeightDisplay(s string) int {
	s = strings.TrimSpace(s)
	feetPart, rest, ok := strings.Cut(s, "'")
	if !ok {
		return 0
	}
	feet, err := strconv.Atoi(strings.TrimSpace(feetPart))
	if err != nil || feet <= 0 {
		return 0
	}
	inchPart := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), `"`))
	inches := 0
	if inchPart != "" {
		inches, err = strconv.Atoi(inchPart)
		if err != nil || inches < 0 {
			return 0
		}
	}
	return int(math.Round(float64(feet*12+inches) * 2.54))
}

// formatHeight produce el display en pies/pulgadas a partir de cm.
func formatHeight(cm int) string {
	totalInches := int(math.Round(float64(cm) / 2.54))
	return strconv.Itoa(totalInches/12) + "' " + strconv.Itoa(totalInches%12) + `"`
}
