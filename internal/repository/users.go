package repository

import (
	"context"
	"fmt"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, telegram_id, first_name, username, is_admin,
	selected_model, temperature, active_conversation_id,
	last_interaction, created_at, updated_at`

func (q *Queries) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &u.Username, &u.IsAdmin,
		&u.SelectedModel, &u.Temperature, &u.ActiveConversationID,
		&u.LastInteraction, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *Queries) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return q.scanUser(row)
}

type CreateUserParams struct {
	TelegramID    int64
	FirstName     string
	Username      string
	IsAdmin       bool
	SelectedModel string
	Temperature   float64
}

func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, first_name, username, is_admin, selected_model, temperature)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		p.TelegramID, p.FirstName, p.Username, p.IsAdmin, p.SelectedModel, p.Temperature)
	return q.scanUser(row)
}

func (q *Queries) UpdateUserLastInteraction(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx,
		`UPDATE users SET last_interaction = now(), updated_at = now() WHERE id = $1`, userID)
	return err
}

func (q *Queries) SetUserActiveConversation(ctx context.Context, userID int64, conversationID *int64) error {
	_, err := q.db.Exec(ctx,
		`UPDATE users SET active_conversation_id = $2, updated_at = now() WHERE id = $1`,
		userID, conversationID)
	return err
}

func (q *Queries) UpdateUserModel(ctx context.Context, userID int64, model string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE users SET selected_model = $2, updated_at = now() WHERE id = $1`, userID, model)
	return err
}

func (q *Queries) UpdateUserTemperature(ctx context.Context, userID int64, temperature float64) error {
	_, err := q.db.Exec(ctx,
		`UPDATE users SET temperature = $2, updated_at = now() WHERE id = $1`, userID, temperature)
	return err
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
