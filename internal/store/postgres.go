package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hinge-bot/internal/domain"
)

// PgProfileStore implementa ProfileStore sobre Postgres. La idempotencia la
// da la primary key de subject_id con ON CONFLICT DO NOTHING; sirve cuando
// se quiere compartir el corpus entre máquinas en vez del archivo local.
type PgProfileStore struct {
	pool *pgxpool.Pool
}

func NewPgProfileStore(pool *pgxpool.Pool) *PgProfileStore {
	return &PgProfileStore{pool: pool}
}

func (s *PgProfileStore) SavedIDs(ctx context.Context) (map[string]struct{}, error) {
	const query = `SELECT subject_id FROM saved_profiles`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query saved ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan saved id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *PgProfileStore) AppendNew(ctx context.Context, records []domain.SavedProfile) (int, int, error) {
	const insert = `
		INSERT INTO saved_profiles (subject_id, record, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject_id) DO NOTHING
	`
	saved := 0
	for _, r := range records {
		if r.SubjectID == "" {
			continue
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return saved, 0, fmt.Errorf("encode record: %w", err)
		}
		tag, err := s.pool.Exec(ctx, insert, r.SubjectID, payload, r.SavedAt)
		if err != nil {
			return saved, 0, fmt.Errorf("insert record: %w", err)
		}
		saved += int(tag.RowsAffected())
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM saved_profiles`).Scan(&total); err != nil {
		return saved, 0, fmt.Errorf("count records: %w", err)
	}
	return saved, total, nil
}

func (s *PgProfileStore) List(ctx context.Context) ([]domain.SavedProfile, error) {
	const query = `SELECT record FROM saved_profiles ORDER BY saved_at, subject_id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.SavedProfile
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var r domain.SavedProfile
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *PgProfileStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM saved_profiles`)
	return err
}
