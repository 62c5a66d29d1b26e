package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hinge-bot/internal/domain"
)

func record(id, name string) domain.SavedProfile {
	return domain.SavedProfile{
		SubjectID: id,
		FirstName: name,
		SavedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestStore(t *testing.T) *JSONFileStore {
	t.Helper()
	return NewJSONFileStore(filepath.Join(t.TempDir(), "profiles.json"))
}

func TestJSONFileStore_EmptyBeforeFirstAppend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Fatalf("file must not exist before first append")
	}
}

func TestJSONFileStore_AppendNewIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, total, err := s.AppendNew(ctx, []domain.SavedProfile{record("a", "Ana"), record("b", "Bea")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 2 || total != 2 {
		t.Fatalf("expected (2,2), got (%d,%d)", saved, total)
	}

	// Mismo batch otra vez: nada nuevo, total estable, sin error.
	saved, total, err = s.AppendNew(ctx, []domain.SavedProfile{record("a", "Ana"), record("b", "Bea")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 0 || total != 2 {
		t.Fatalf("expected (0,2) on replay, got (%d,%d)", saved, total)
	}

	// Batch mixto: se persiste solo el ausente.
	saved, total, err = s.AppendNew(ctx, []domain.SavedProfile{record("b", "Bea"), record("c", "Cleo")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 1 || total != 3 {
		t.Fatalf("expected (1,3), got (%d,%d)", saved, total)
	}
}

func TestJSONFileStore_NoOverwriteOnDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, _, err := s.AppendNew(ctx, []domain.SavedProfile{record("a", "Ana")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.AppendNew(ctx, []domain.SavedProfile{record("a", "Otra")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].FirstName != "Ana" {
		t.Fatalf("expected original record kept, got %v", records)
	}
}

func TestJSONFileStore_SkipsEmptySubjectID(t *testing.T) {
	s := newTestStore(t)
	saved, total, err := s.AppendNew(context.Background(), []domain.SavedProfile{{FirstName: "SinID"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 0 || total != 0 {
		t.Fatalf("expected nothing saved, got (%d,%d)", saved, total)
	}
}

func TestJSONFileStore_SavedIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, _, err := s.AppendNew(ctx, []domain.SavedProfile{record("a", ""), record("b", "")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err := s.SavedIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if _, ok := ids["a"]; !ok {
		t.Fatalf("missing id a")
	}
}

func TestJSONFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	ctx := context.Background()

	first := NewJSONFileStore(path)
	if _, _, err := first.AppendNew(ctx, []domain.SavedProfile{record("a", "Ana")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := NewJSONFileStore(path)
	saved, total, err := second.AppendNew(ctx, []domain.SavedProfile{record("a", "Ana"), record("b", "Bea")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 1 || total != 2 {
		t.Fatalf("expected dedup across instances (1,2), got (%d,%d)", saved, total)
	}
}

func TestJSONFileStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Clear sobre store inexistente no es error.
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := s.AppendNew(ctx, []domain.SavedProfile{record("a", "")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(records))
	}
}
