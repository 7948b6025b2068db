package repository

import (
	"context"
	"time"

	"github.com/careerbuddy/bot/internal/domain"
)

// TrySetActiveRequest claims the single in-flight slot for a chat. It fails
// with ErrActiveRequest while a previous turn is still streaming.
func (q *Queries) TrySetActiveRequest(ctx context.Context, chatID int64) error {
	tag, err := q.db.Exec(ctx, `
		INSERT INTO active_requests (chat_id) VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING`, chatID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActiveRequest
	}
	return nil
}

func (q *Queries) RemoveActiveRequest(ctx context.Context, chatID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM active_requests WHERE chat_id = $1`, chatID)
	return err
}

// CleanupStaleRequests drops slots abandoned by crashed turns.
func (q *Queries) CleanupStaleRequests(ctx context.Context, maxAge time.Duration) error {
	_, err := q.db.Exec(ctx,
		`DELETE FROM active_requests WHERE started_at < now() - make_interval(secs => $1)`,
		maxAge.Seconds())
	return err
}

// CheckAndIncrementRateLimit bumps the per-minute counter for a chat and
// returns the new count within the current window.
func (q *Queries) CheckAndIncrementRateLimit(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, date_trunc('minute', now()), 1)
		ON CONFLICT (chat_id, window_start) DO UPDATE SET count = rate_limits.count + 1
		RETURNING count`, chatID).Scan(&count)
	return count, err
}
