package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"memory-agent/internal/memory"
	"memory-agent/internal/memory/repository"
	"memory-agent/internal/model"
)

func (r *implRepository) Upsert(ctx context.Context, namespace string, rec memory.Record) (string, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return "", err
	}
	if rec.Content == "" {
		return "", memory.ErrEmptyContent
	}
	if rec.ID == "" {
		rec.ID = memory.NewID()
	}
	role := rec.Role
	if role == "" {
		role = model.RoleUser
	}

	vectors, err := r.embedder.Embed(ctx, []string{rec.Content}, memory.PurposeDocument)
	if err != nil || len(vectors) == 0 {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO memory_records (id, user_id, content, role, ts, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			content = excluded.content,
			role = excluded.role,
			ts = excluded.ts,
			embedding = excluded.embedding`,
		rec.ID, namespace, rec.Content, string(role), repository.EncodeTimestamp(rec.Timestamp), encodeVector(vectors[0]))
	if err != nil {
		return "", fmt.Errorf("%w: insert: %w", memory.ErrStoreUnavailable, err)
	}
	return rec.ID, nil
}

// Search scores every record in the namespace by cosine similarity.
func (r *implRepository) Search(ctx context.Context, namespace, query string, topK int) ([]model.MemoryHit, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{query}, memory.PurposeQuery)
	if err != nil || len(vectors) == 0 {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}
	queryVec := vectors[0]

	rows, err := r.db.QueryContext(ctx, `SELECT id, content, embedding FROM memory_records WHERE user_id = ?`, namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", memory.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var hits []model.MemoryHit
	for rows.Next() {
		var (
			hit  model.MemoryHit
			blob []byte
		)
		if err := rows.Scan(&hit.ID, &hit.Content, &blob); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", memory.ErrStoreUnavailable, err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			r.l.Warnf(ctx, "%s: record %s: %v", LogPrefixSearch, hit.ID, err)
			continue
		}
		hit.Score = memory.Cosine(queryVec, vec)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", memory.ErrStoreUnavailable, err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (r *implRepository) ListIDs(ctx context.Context, namespace string) ([]string, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM memory_records WHERE user_id = ? ORDER BY id`, namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", memory.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", memory.ErrStoreUnavailable, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *implRepository) Fetch(ctx context.Context, namespace string, ids []string) ([]model.MemoryRecord, error) {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, namespace)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, role, ts FROM memory_records WHERE user_id = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %w", memory.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []model.MemoryRecord
	for rows.Next() {
		var (
			rec  model.MemoryRecord
			role string
			ts   int64
		)
		if err := rows.Scan(&rec.ID, &rec.Content, &role, &ts); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", memory.ErrStoreUnavailable, err)
		}
		rec.UserID = namespace
		rec.Role = model.Role(role)
		rec.Timestamp = repository.DecodeTimestamp(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *implRepository) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := memory.ValidateNamespace(namespace); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM memory_records WHERE user_id = ?`, namespace); err != nil {
		return fmt.Errorf("%w: delete: %w", memory.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *implRepository) Close() error {
	return r.db.Close()
}
