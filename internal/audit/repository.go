package audit

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type Repository interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO console_audit (id, actor_id, actor_role, action, target_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID.String(), e.ActorID, e.ActorRole, string(e.Action), e.TargetID, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, actor_id, actor_role, action, target_id, detail, created_at
		FROM console_audit
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var action string
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorRole, &action, &e.TargetID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
