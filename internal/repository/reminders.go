package repository

import (
	"context"
	"time"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/jackc/pgx/v5"
)

const reminderColumns = `id, user_id, title, description, due_at, category, notified`

func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var r domain.Reminder
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.DueAt, &r.Category, &r.Notified)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (q *Queries) CreateReminder(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO reminders (user_id, title, description, due_at, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reminderColumns,
		r.UserID, r.Title, r.Description, r.DueAt, r.Category)
	return scanReminder(row)
}

// ListRemindersBetween returns reminders due inside [from, to), soonest first.
func (q *Queries) ListRemindersBetween(ctx context.Context, userID int64, from, to time.Time, limit int) ([]domain.Reminder, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = $1 AND due_at >= $2 AND due_at < $3
		ORDER BY due_at
		LIMIT $4`, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// ListDueReminders returns unnotified reminders whose due time has passed,
// joined with the owner's telegram id for delivery.
func (q *Queries) ListDueReminders(ctx context.Context, now time.Time) ([]DueReminder, error) {
	rows, err := q.db.Query(ctx, `
		SELECT r.id, r.user_id, r.title, r.description, r.due_at, r.category, r.notified, u.telegram_id
		FROM reminders r
		JOIN users u ON u.id = r.user_id
		WHERE r.notified = FALSE AND r.due_at <= $1
		ORDER BY r.due_at`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []DueReminder
	for rows.Next() {
		var d DueReminder
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.DueAt,
			&d.Category, &d.Notified, &d.TelegramID)
		if err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

type DueReminder struct {
	domain.Reminder
	TelegramID int64
}

func (q *Queries) MarkReminderNotified(ctx context.Context, reminderID int64) error {
	_, err := q.db.Exec(ctx, `UPDATE reminders SET notified = TRUE WHERE id = $1`, reminderID)
	return err
}

func (q *Queries) DeleteReminderOwned(ctx context.Context, userID, reminderID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, reminderID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
