package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hinge-bot/internal/hinge"
)

// mockRatingClient programa respuestas para el cliente de rating.
type mockRatingClient struct {
	likeErr    error
	skipErr    error
	limitErr   error
	limit      hinge.LikeLimitResponse
	likeCalls  int
	limitCalls int
}

func (m *mockRatingClient) LikeProfile(_ context.Context, _, _ string, _ hinge.LikeContent) (json.RawMessage, error) {
	m.likeCalls++
	if m.likeErr != nil {
		return nil, m.likeErr
	}
	return json.RawMessage(`{}`), nil
}

func (m *mockRatingClient) SkipProfile(_ context.Context, _, _ string) error {
	return m.skipErr
}

func (m *mockRatingClient) LikeLimit(_ context.Context) (hinge.LikeLimitResponse, error) {
	m.limitCalls++
	if m.limitErr != nil {
		return hinge.LikeLimitResponse{}, m.limitErr
	}
	return m.limit, nil
}

func (m *mockRatingClient) SendMessage(_ context.Context, _, _ string, _ bool) (json.RawMessage, error) {
	return json.RawMessage(`{"sent":true}`), nil
}

func newTestRating(client ratingClient) *RatingService {
	return &RatingService{client: client, quota: NewMemoryQuotaCache(0), logger: zap.NewNop()}
}

func TestRatingLike_RefreshesQuota(t *testing.T) {
	client := &mockRatingClient{limit: hinge.LikeLimitResponse{LikesLeft: 6}}
	svc := newTestRating(client)

	limit, err := svc.Like(context.Background(), "subj", "token", hinge.LikeContent{Comment: "hola"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit.LikesLeft != 6 {
		t.Fatalf("expected refreshed quota 6, got %d", limit.LikesLeft)
	}
	if client.limitCalls != 1 {
		t.Fatalf("expected one refresh call, got %d", client.limitCalls)
	}

	// La cuota quedó cacheada: Limit no repollea.
	if _, err := svc.Limit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.limitCalls != 1 {
		t.Fatalf("expected cached quota, got %d refresh calls", client.limitCalls)
	}
}

func TestRatingLike_FailedLikePropagates(t *testing.T) {
	apiErr := &hinge.APIError{Kind: hinge.KindRateLimited, StatusCode: 429, Endpoint: "/rate/v2/initiate"}
	client := &mockRatingClient{likeErr: apiErr}
	svc := newTestRating(client)

	if _, err := svc.Like(context.Background(), "subj", "token", hinge.LikeContent{}); !errors.Is(err, apiErr) {
		t.Fatalf("expected api error back, got %v", err)
	}
	if client.limitCalls != 0 {
		t.Fatalf("failed like must not refresh quota")
	}
}

func TestRatingLike_RefreshFailureFallsBackToCache(t *testing.T) {
	client := &mockRatingClient{limit: hinge.LikeLimitResponse{LikesLeft: 8}}
	svc := newTestRating(client)
	svc.quota.Set(hinge.LikeLimitResponse{LikesLeft: 8}.ToDomain())

	client.limitErr = errors.New("timeout")
	limit, err := svc.Like(context.Background(), "subj", "token", hinge.LikeContent{})
	if err != nil {
		t.Fatalf("like succeeded, refresh failure must not surface: %v", err)
	}
	if limit.LikesLeft != 8 {
		t.Fatalf("expected cached quota 8, got %d", limit.LikesLeft)
	}
}

func TestRatingSkip(t *testing.T) {
	client := &mockRatingClient{}
	svc := newTestRating(client)
	if err := svc.Skip(context.Background(), "subj", "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.skipErr = errors.New("boom")
	if err := svc.Skip(context.Background(), "subj", "token"); err == nil {
		t.Fatalf("expected skip error to propagate")
	}
}

func TestRatingLimit_PollsOnceThenCaches(t *testing.T) {
	client := &mockRatingClient{limit: hinge.LikeLimitResponse{LikesLeft: 4, SuperlikesLeft: 2}}
	svc := newTestRating(client)

	for i := 0; i < 3; i++ {
		limit, err := svc.Limit(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if limit.LikesLeft != 4 || limit.SuperlikesLeft != 2 {
			t.Fatalf("unexpected quota: %+v", limit)
		}
	}
	if client.limitCalls != 1 {
		t.Fatalf("expected a single upstream poll, got %d", client.limitCalls)
	}
}
