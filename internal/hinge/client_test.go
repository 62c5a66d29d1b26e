package hinge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, server.URL, Credentials{
		AuthToken: "token-de-test",
		SessionID: "sesion",
		UserID:    "player-1",
	}, "", zap.NewNop())
	return client, server
}

func TestClient_SendsIOSHeaders(t *testing.T) {
	var got http.Header
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))

	if _, err := client.LikeLimit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Get("X-App-Identifier") != "co.hinge.mobile.ios" {
		t.Fatalf("missing app identifier header, got %q", got.Get("X-App-Identifier"))
	}
	if got.Get("Authorization") != "Bearer token-de-test" {
		t.Fatalf("unexpected auth header %q", got.Get("Authorization"))
	}
	if got.Get("X-Session-Id") != "sesion" {
		t.Fatalf("unexpected session header %q", got.Get("X-Session-Id"))
	}
}

func TestClient_StatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindTransient},
		{http.StatusBadGateway, KindTransient},
		{http.StatusUnauthorized, KindFatal},
		{http.StatusForbidden, KindFatal},
		{http.StatusNotFound, KindFatal},
	}
	for _, tc := range cases {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := client.LikeLimit(context.Background())
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected APIError, got %T", tc.status, err)
		}
		if apiErr.Kind != tc.want {
			t.Fatalf("status %d: expected kind %s, got %s", tc.status, tc.want, apiErr.Kind)
		}
		if apiErr.StatusCode != tc.status {
			t.Fatalf("expected status %d recorded, got %d", tc.status, apiErr.StatusCode)
		}
	}
}

func TestClient_MalformedResponseIsFatal(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>mantenimiento</html>`))
	}))

	_, err := client.LikeLimit(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindFatal {
		t.Fatalf("expected fatal on malformed body, got %v", err)
	}
}

func TestClient_NetworkErrorIsTransient(t *testing.T) {
	client, server := testClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := client.LikeLimit(context.Background())
	if KindOf(err) != KindTransient {
		t.Fatalf("expected transient on connection failure, got %v", err)
	}
}

func TestClient_ContextCancellationPassesThrough(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.LikeLimit(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClient_Recommendations(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rec/v2" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		if payload["playerId"] != "player-1" {
			t.Errorf("expected playerId in payload, got %v", payload["playerId"])
		}
		w.Write([]byte(`{"feeds":[{"subjects":[{"subjectId":"s1","ratingToken":"t1"},{"subjectId":"s2","ratingToken":"t2"}]}]}`))
	}))

	page, err := client.Recommendations(context.Background(), false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subjects := page.Subjects()
	if len(subjects) != 2 || subjects[0].SubjectID != "s1" || subjects[1].RatingToken != "t2" {
		t.Fatalf("unexpected subjects: %v", subjects)
	}
}

func TestClient_LikeProfilePayload(t *testing.T) {
	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rate/v2/initiate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{}`))
	}))

	_, err := client.LikeProfile(context.Background(), "s1", "tok", LikeContent{
		Comment:   "buen perro",
		ContentID: "photo-1",
		Superlike: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["rating"] != "note" {
		t.Fatalf("expected rating note, got %v", payload["rating"])
	}
	if payload["initiatedWith"] != "superlike" {
		t.Fatalf("expected superlike, got %v", payload["initiatedWith"])
	}
	if payload["ratingToken"] != "tok" || payload["subjectId"] != "s1" {
		t.Fatalf("unexpected identity fields: %v", payload)
	}
	content, ok := payload["content"].(map[string]any)
	if !ok {
		t.Fatalf("expected content block, got %v", payload["content"])
	}
	photo, ok := content["photo"].(map[string]any)
	if !ok || photo["contentId"] != "photo-1" || photo["comment"] != "buen perro" {
		t.Fatalf("unexpected photo content: %v", content)
	}
}

func TestClient_SkipProfilePayload(t *testing.T) {
	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.SkipProfile(context.Background(), "s1", "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["rating"] != "skip" {
		t.Fatalf("expected rating skip, got %v", payload["rating"])
	}
	if _, ok := payload["ratingId"]; !ok {
		t.Fatalf("expected generated ratingId")
	}
}

func TestFeedFetcher_AssemblesBatchInFeedOrder(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rec/v2":
			w.Write([]byte(`{"feeds":[{"subjects":[
				{"subjectId":"s1","ratingToken":"t1"},
				{"subjectId":"s2","ratingToken":"t2"},
				{"subjectId":"s3","ratingToken":"t3"}
			]}]}`))
		case "/user/v2/public":
			// s2 deliberadamente ausente del lookup público.
			w.Write([]byte(`[
				{"identityId":"s3","profile":{"firstName":"Carla","age":28}},
				{"identityId":"s1","profile":{"firstName":"Ana","age":25,"height":170}}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	fetcher := NewFeedFetcher(client, false, false, zap.NewNop())
	batch, err := fetcher.FetchBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(batch))
	}
	if batch[0].SubjectID != "s1" || batch[1].SubjectID != "s2" || batch[2].SubjectID != "s3" {
		t.Fatalf("feed order not preserved: %v", batch)
	}
	if batch[0].FirstName != "Ana" || batch[0].RatingToken != "t1" || batch[0].HeightCm != 170 {
		t.Fatalf("unexpected first candidate: %+v", batch[0])
	}
	// El sujeto sin perfil público conserva id y token.
	if batch[1].FirstName != "" || batch[1].RatingToken != "t2" {
		t.Fatalf("expected bare candidate for s2, got %+v", batch[1])
	}
}

func TestFeedFetcher_EmptyPageYieldsEmptyBatch(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rec/v2" {
			t.Errorf("public lookup must not run for empty feed")
		}
		w.Write([]byte(`{"feeds":[]}`))
	}))

	fetcher := NewFeedFetcher(client, false, false, zap.NewNop())
	batch, err := fetcher.FetchBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 0 {
		t.Fatalf("expected empty batch, got %d", len(batch))
	}
}

func TestFeedFetcher_SendsFeedFilters(t *testing.T) {
	var payload map[string]any
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rec/v2" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{"feeds":[]}`))
	}))

	fetcher := NewFeedFetcher(client, true, true, zap.NewNop())
	if _, err := fetcher.FetchBatch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["activeToday"] != true || payload["newHere"] != true {
		t.Fatalf("expected feed filters in payload, got %v", payload)
	}
}

func TestStandoutFetcher_MarksStandouts(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/standouts/v2":
			w.Write([]byte(`{"free":[{"subjectId":"f1","ratingToken":"tf"}],"paid":[{"subjectId":"p1","ratingToken":"tp"}]}`))
		case "/user/v2/public":
			w.Write([]byte(`[{"identityId":"f1","profile":{"firstName":"Flor"}}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	fetcher := NewStandoutFetcher(client, zap.NewNop())
	batch, err := fetcher.FetchBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 standouts, got %d", len(batch))
	}
	for _, c := range batch {
		if !c.Standout {
			t.Fatalf("expected standout flag on %s", c.SubjectID)
		}
	}
}
