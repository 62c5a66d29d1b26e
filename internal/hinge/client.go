package hinge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Credentials son las credenciales de sesión capturadas del tráfico del
// cliente móvil (el flujo de login interactivo queda fuera de alcance).
type Credentials struct {
	AuthToken string
	SessionID string
	UserID    string
	DeviceID  string
	InstallID string
}

// Client habla con la API privada de Hinge usando los headers del cliente
// iOS oficial. Cada llamada consume una unidad del presupuesto implícito de
// rate del upstream, tenga éxito o no.
type Client struct {
	baseURL    string
	mediaURL   string
	creds      Credentials
	appVersion string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient construye un cliente apuntando a la API de producción.
func NewClient(baseURL, mediaURL string, creds Credentials, appVersion string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://prod-api.hingeaws.net"
	}
	if mediaURL == "" {
		mediaURL = "https://media.hingenexus.com"
	}
	if appVersion == "" {
		appVersion = "9.105.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		mediaURL:   strings.TrimRight(mediaURL, "/"),
		creds:      creds,
		appVersion: appVersion,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// UserID devuelve el player id de la sesión.
func (c *Client) UserID() string { return c.creds.UserID }

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Hinge/11668 CFNetwork/3860.400.22 Darwin/25.3.0")
	req.Header.Set("X-App-Identifier", "co.hinge.mobile.ios")
	req.Header.Set("X-App-Version", c.appVersion)
	req.Header.Set("X-Build-Number", "11668")
	req.Header.Set("X-Device-Platform", "iOS")
	req.Header.Set("X-Device-Region", "US")
	if c.creds.DeviceID != "" {
		req.Header.Set("X-Device-Id", c.creds.DeviceID)
	}
	if c.creds.InstallID != "" {
		req.Header.Set("X-Install-Id", c.creds.InstallID)
	}
	if c.creds.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.AuthToken)
	}
	if c.creds.SessionID != "" {
		req.Header.Set("X-Session-Id", c.creds.SessionID)
	}
}

// request arma, ejecuta y clasifica una llamada; si out != nil decodifica
// el body JSON en out.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &APIError{Kind: KindTransient, Endpoint: endpoint, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindTransient, StatusCode: resp.StatusCode, Endpoint: endpoint, Message: "read body: " + err.Error()}
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("hinge api error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    truncate(string(respBody), 200),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Kind: KindFatal, StatusCode: resp.StatusCode, Endpoint: endpoint, Message: "malformed response: " + err.Error()}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Recommendations pide la próxima página del feed (/rec/v2). Una respuesta
// sin sujetos es válida: el upstream no tiene nada nuevo para ofrecer.
func (c *Client) Recommendations(ctx context.Context, activeToday, newHere bool) (RecommendationPage, error) {
	payload := map[string]any{
		"playerId":    c.creds.UserID,
		"activeToday": activeToday,
		"newHere":     newHere,
	}
	var page RecommendationPage
	if err := c.request(ctx, http.MethodPost, "/rec/v2", payload, &page); err != nil {
		return RecommendationPage{}, err
	}
	return page, nil
}

// PublicUsers trae los perfiles públicos para una lista de ids.
func (c *Client) PublicUsers(ctx context.Context, ids []string) ([]PublicUser, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	endpoint := "/user/v2/public?ids=" + url.QueryEscape(strings.Join(ids, ","))
	var users []PublicUser
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// LikeContent es el contenido opcional que acompaña un like: foto o prompt,
// con comentario. Superlike consume una rosa.
type LikeContent struct {
	Comment    string
	ContentID  string
	QuestionID string
	Superlike  bool
}

// LikeProfile envía un like por /rate/v2/initiate. El rating token es de un
// solo uso; no se asume válido después de esta llamada.
func (c *Client) LikeProfile(ctx context.Context, subjectID, ratingToken string, content LikeContent) (json.RawMessage, error) {
	initiatedWith := "standard"
	if content.Superlike {
		initiatedWith = "superlike"
	}
	payload := map[string]any{
		"ratingId":      uuid.NewString(),
		"ratingToken":   ratingToken,
		"subjectId":     subjectID,
		"sessionId":     c.creds.SessionID,
		"rating":        "note",
		"origin":        "compatibles",
		"hasPairing":    false,
		"created":       time.Now().UTC().Format(time.RFC3339),
		"initiatedWith": initiatedWith,
	}

	body := map[string]any{}
	if content.Comment != "" {
		body["comment"] = content.Comment
	}
	if content.ContentID != "" {
		body["photo"] = map[string]any{"contentId": content.ContentID, "comment": content.Comment}
		delete(body, "comment")
	}
	if content.QuestionID != "" {
		body["prompt"] = map[string]any{"questionId": content.QuestionID, "response": content.Comment}
		delete(body, "comment")
	}
	if len(body) > 0 {
		payload["content"] = body
	}

	var out json.RawMessage
	if err := c.request(ctx, http.MethodPost, "/rate/v2/initiate", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SkipProfile descarta un sujeto por el mismo endpoint de rating.
func (c *Client) SkipProfile(ctx context.Context, subjectID, ratingToken string) error {
	payload := map[string]any{
		"ratingId":    uuid.NewString(),
		"ratingToken": ratingToken,
		"subjectId":   subjectID,
		"sessionId":   c.creds.SessionID,
		"rating":      "skip",
		"origin":      "compatibles",
		"hasPairing":  false,
		"created":     time.Now().UTC().Format(time.RFC3339),
	}
	return c.request(ctx, http.MethodPost, "/rate/v2/initiate", payload, nil)
}

// SendMessage manda un mensaje a un match con dedupId generado.
func (c *Client) SendMessage(ctx context.Context, subjectID, message string, matchMessage bool) (json.RawMessage, error) {
	payload := map[string]any{
		"subjectId":    subjectID,
		"matchMessage": matchMessage,
		"origin":       "Native Chat",
		"dedupId":      uuid.NewString(),
		"messageData":  map[string]any{"message": message},
		"messageType":  "message",
		"ays":          true,
	}
	var out json.RawMessage
	if err := c.request(ctx, http.MethodPost, "/message/send", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LikeLimit consulta la cuota de likes restante.
func (c *Client) LikeLimit(ctx context.Context) (LikeLimitResponse, error) {
	var limit LikeLimitResponse
	if err := c.request(ctx, http.MethodGet, "/likelimit", nil, &limit); err != nil {
		return LikeLimitResponse{}, err
	}
	return limit, nil
}

// Standouts trae los sujetos destacados (free y paid) con sus rating tokens.
func (c *Client) Standouts(ctx context.Context) (StandoutsPage, error) {
	var page StandoutsPage
	if err := c.request(ctx, http.MethodGet, "/standouts/v2", nil, &page); err != nil {
		return StandoutsPage{}, err
	}
	return page, nil
}

// AccountInfo devuelve la info de cuenta/suscripción sin interpretar.
func (c *Client) AccountInfo(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.request(ctx, http.MethodGet, "/store/v2/account", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserTraits devuelve preferencias/dealbreakers del usuario propio.
func (c *Client) UserTraits(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.request(ctx, http.MethodGet, "/user/v2/traits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Settings devuelve la configuración del usuario propio.
func (c *Client) Settings(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.request(ctx, http.MethodGet, "/content/v1/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
