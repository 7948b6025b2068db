package repository

import (
	"context"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/jackc/pgx/v5"
)

const fileColumns = `id, user_id, stored_name, original_name, category, date_added`

func scanFile(row pgx.Row) (*domain.VaultFile, error) {
	var f domain.VaultFile
	err := row.Scan(&f.ID, &f.UserID, &f.StoredName, &f.OriginalName, &f.Category, &f.DateAdded)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (q *Queries) CreateFile(ctx context.Context, f *domain.VaultFile) (*domain.VaultFile, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO files (user_id, stored_name, original_name, category)
		VALUES ($1, $2, $3, $4)
		RETURNING `+fileColumns,
		f.UserID, f.StoredName, f.OriginalName, f.Category)
	return scanFile(row)
}

// ListFiles returns a user's files, newest first. Empty category or "All"
// lists everything.
func (q *Queries) ListFiles(ctx context.Context, userID int64, category string, limit int) ([]domain.VaultFile, error) {
	var rows pgx.Rows
	var err error
	if category == "" || category == "All" {
		rows, err = q.db.Query(ctx, `
			SELECT `+fileColumns+` FROM files
			WHERE user_id = $1
			ORDER BY date_added DESC, id DESC
			LIMIT $2`, userID, limit)
	} else {
		rows, err = q.db.Query(ctx, `
			SELECT `+fileColumns+` FROM files
			WHERE user_id = $1 AND category = $2
			ORDER BY date_added DESC, id DESC
			LIMIT $3`, userID, category, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.VaultFile
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

func (q *Queries) GetFileByID(ctx context.Context, fileID int64) (*domain.VaultFile, error) {
	row := q.db.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, fileID)
	return scanFile(row)
}

func (q *Queries) DeleteFile(ctx context.Context, fileID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, fileID)
	return err
}
