package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) GetNote(ctx context.Context, userID int64) (string, error) {
	var content string
	err := q.db.QueryRow(ctx,
		`SELECT content FROM notes WHERE user_id = $1`, userID).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return content, err
}

func (q *Queries) UpsertNote(ctx context.Context, userID int64, content string) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO notes (user_id, content) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET content = $2, updated_at = now()`,
		userID, content)
	return err
}
