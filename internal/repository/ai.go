package repository

import (
	"context"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ---------------------------------------------------------------------------
// Conversations

func (q *Queries) CreateConversation(ctx context.Context, userID int64, title string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := q.db.QueryRow(ctx, `
		INSERT INTO conversations (user_id, title) VALUES ($1, $2)
		RETURNING id, user_id, title, created_at`,
		userID, title).Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) GetConversationByID(ctx context.Context, conversationID int64) (*domain.Conversation, error) {
	var c domain.Conversation
	err := q.db.QueryRow(ctx, `
		SELECT id, user_id, title, created_at FROM conversations WHERE id = $1`,
		conversationID).Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) ListConversationsByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, title, created_at FROM conversations
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (q *Queries) CountConversationsByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversations WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (q *Queries) DeleteConversation(ctx context.Context, conversationID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, conversationID)
	return err
}

// ---------------------------------------------------------------------------
// Messages

func (q *Queries) AddMessage(ctx context.Context, conversationID int64, role, content string) (*domain.Message, error) {
	var m domain.Message
	err := q.db.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, role, content) VALUES ($1, $2, $3)
		RETURNING id, conversation_id, role, content, created_at`,
		conversationID, role, content).Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListRecentMessages returns the last N messages of a conversation reordered
// oldest-first, so replaying them reproduces the stored history.
func (q *Queries) ListRecentMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, conversation_id, role, content, created_at FROM messages
		WHERE conversation_id = $1
		ORDER BY id DESC
		LIMIT $2`, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (q *Queries) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID).Scan(&n)
	return n, err
}

func (q *Queries) CountMessagesTotal(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

func (q *Queries) GetFirstMessage(ctx context.Context, conversationID int64) (*domain.Message, error) {
	var m domain.Message
	err := q.db.QueryRow(ctx, `
		SELECT id, conversation_id, role, content, created_at FROM messages
		WHERE conversation_id = $1
		ORDER BY id
		LIMIT 1`, conversationID).Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ---------------------------------------------------------------------------
// Memories

const memoryColumns = `id, user_id, mem_type, content, importance, pinned, created_at`

func scanMemory(row pgx.Row) (*domain.Memory, error) {
	var m domain.Memory
	err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.Content, &m.Importance, &m.Pinned, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *Queries) CreateMemory(ctx context.Context, userID int64, memType, content string, importance int, pinned bool) (*domain.Memory, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO memories (user_id, mem_type, content, importance, pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+memoryColumns,
		userID, memType, content, importance, pinned)
	return scanMemory(row)
}

// ListMemories orders by pinned first, then importance, then newest id.
func (q *Queries) ListMemories(ctx context.Context, userID int64, limit int) ([]domain.Memory, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+memoryColumns+` FROM memories
		WHERE user_id = $1
		ORDER BY pinned DESC, importance DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mems []domain.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		mems = append(mems, *m)
	}
	return mems, rows.Err()
}

// SearchMemories matches content as a case-insensitive substring.
func (q *Queries) SearchMemories(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+memoryColumns+` FROM memories
		WHERE user_id = $1 AND content ILIKE '%' || $2 || '%'
		ORDER BY pinned DESC, importance DESC, id DESC
		LIMIT $3`, userID, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mems []domain.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		mems = append(mems, *m)
	}
	return mems, rows.Err()
}

func (q *Queries) SetMemoryPinned(ctx context.Context, userID, memoryID int64, pinned bool) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`UPDATE memories SET pinned = $3 WHERE id = $1 AND user_id = $2`,
		memoryID, userID, pinned)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) DeleteMemory(ctx context.Context, userID, memoryID int64) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM memories WHERE id = $1 AND user_id = $2`, memoryID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Summaries

func (q *Queries) CreateSummary(ctx context.Context, userID int64, scope, text string) (*domain.Summary, error) {
	var s domain.Summary
	err := q.db.QueryRow(ctx, `
		INSERT INTO summaries (user_id, scope, summary_text) VALUES ($1, $2, $3)
		RETURNING id, user_id, scope, summary_text, created_at`,
		userID, scope, text).Scan(&s.ID, &s.UserID, &s.Scope, &s.Text, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetLatestSummary returns the active summary for a scope, or "" when none
// has been written yet.
func (q *Queries) GetLatestSummary(ctx context.Context, userID int64, scope string) (string, error) {
	var text string
	err := q.db.QueryRow(ctx, `
		SELECT summary_text FROM summaries
		WHERE user_id = $1 AND scope = $2
		ORDER BY id DESC
		LIMIT 1`, userID, scope).Scan(&text)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return text, err
}
