package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hinge-bot/internal/domain"
)

// JSONFileStore persiste los perfiles en un único archivo JSON local con
// forma de lista append-only. El mutex hace crítica la secuencia
// leer-chequear-escribir: un auto-save y un export manual no pueden pisarse.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore crea el store sobre el path dado; el archivo se crea
// recién en el primer append.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

func (s *JSONFileStore) load() ([]domain.SavedProfile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []domain.SavedProfile
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	return records, nil
}

// write reemplaza el archivo de forma atómica (tmp + rename) para no dejar
// un store truncado si el proceso muere a mitad de escritura.
func (s *JSONFileStore) write(records []domain.SavedProfile) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func (s *JSONFileStore) SavedIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.SubjectID] = struct{}{}
	}
	return ids, nil
}

func (s *JSONFileStore) AppendNew(_ context.Context, records []domain.SavedProfile) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.SubjectID] = struct{}{}
	}

	saved := 0
	for _, r := range records {
		if r.SubjectID == "" {
			continue
		}
		if _, ok := seen[r.SubjectID]; ok {
			continue
		}
		seen[r.SubjectID] = struct{}{}
		existing = append(existing, r)
		saved++
	}

	if saved > 0 {
		if err := s.write(existing); err != nil {
			return 0, 0, err
		}
	}
	return saved, len(existing), nil
}

func (s *JSONFileStore) List(_ context.Context) ([]domain.SavedProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONFileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
