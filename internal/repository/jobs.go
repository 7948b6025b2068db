package repository

import (
	"context"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const jobColumns = `id, user_id, company, role, status, link, notes, salary, date_added`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var salary decimal.NullDecimal
	err := row.Scan(&j.ID, &j.UserID, &j.Company, &j.Role, &j.Status,
		&j.Link, &j.Notes, &salary, &j.DateAdded)
	if err != nil {
		return nil, err
	}
	if salary.Valid {
		j.Salary = &salary.Decimal
	}
	return &j, nil
}

func (q *Queries) CreateJob(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO jobs (user_id, company, role, status, link, notes, salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+jobColumns,
		j.UserID, j.Company, j.Role, j.Status, j.Link, j.Notes, j.Salary)
	return scanJob(row)
}

func (q *Queries) GetJobByID(ctx context.Context, jobID int64) (*domain.Job, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	return scanJob(row)
}

func (q *Queries) ListRecentJobs(ctx context.Context, userID int64, limit int) ([]domain.Job, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1
		ORDER BY date_added DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func (q *Queries) ListJobsPage(ctx context.Context, userID int64, limit, offset int) ([]domain.Job, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE user_id = $1
		ORDER BY date_added DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func (q *Queries) UpdateJobStatus(ctx context.Context, jobID int64, status string) error {
	_, err := q.db.Exec(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, jobID, status)
	return err
}

func (q *Queries) DeleteJob(ctx context.Context, jobID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	return err
}

func (q *Queries) CountJobsByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (q *Queries) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}
