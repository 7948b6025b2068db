package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/jackc/pgx/v5"
)

const defaultConversationTitle = "AI Buddy"

// SessionService owns the conversation lifecycle: which conversation is
// active per user, its message log, and the digest written when a chat is
// closed with /new.
type SessionService struct {
	queries *repository.Queries
}

func NewSessionService(queries *repository.Queries) *SessionService {
	return &SessionService{queries: queries}
}

func (s *SessionService) FindOrCreate(ctx context.Context, user *domain.User) (*domain.Conversation, error) {
	if user.ActiveConversationID != nil {
		conv, err := s.queries.GetConversationByID(ctx, *user.ActiveConversationID)
		if err == nil {
			return conv, nil
		}
		if err != pgx.ErrNoRows {
			return nil, fmt.Errorf("get conversation: %w", err)
		}
	}
	return s.CreateNew(ctx, user)
}

func (s *SessionService) CreateNew(ctx context.Context, user *domain.User) (*domain.Conversation, error) {
	conv, err := s.queries.CreateConversation(ctx, user.ID, defaultConversationTitle)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	if err := s.queries.SetUserActiveConversation(ctx, user.ID, &conv.ID); err != nil {
		return nil, fmt.Errorf("set active conversation: %w", err)
	}
	user.ActiveConversationID = &conv.ID
	return conv, nil
}

// Reset closes the active conversation and starts a fresh one. A short digest
// of the closed chat is archived so past context survives session resets.
func (s *SessionService) Reset(ctx context.Context, user *domain.User) (*domain.Conversation, error) {
	if user.ActiveConversationID != nil {
		s.archiveDigest(ctx, user.ID, *user.ActiveConversationID)
	}

	user.ActiveConversationID = nil
	if err := s.queries.SetUserActiveConversation(ctx, user.ID, nil); err != nil {
		return nil, fmt.Errorf("clear active conversation: %w", err)
	}
	return s.CreateNew(ctx, user)
}

// archiveDigest is best effort; a failed digest never blocks the reset.
func (s *SessionService) archiveDigest(ctx context.Context, userID, conversationID int64) {
	count, err := s.queries.CountMessages(ctx, conversationID)
	if err != nil || count == 0 {
		return
	}
	first, err := s.queries.GetFirstMessage(ctx, conversationID)
	if err != nil {
		return
	}

	excerpt := strings.TrimSpace(first.Content)
	if len([]rune(excerpt)) > 120 {
		excerpt = string([]rune(excerpt)[:120]) + "…"
	}
	digest := fmt.Sprintf("Closed chat #%d (%d messages), started with: %s", conversationID, count, excerpt)

	if _, err := s.queries.CreateSummary(ctx, userID, "global", digest); err != nil {
		slog.Warn("failed to archive chat digest", "error", err, "conversation_id", conversationID)
	}
}

// LatestDigest returns the most recently archived chat digest, or "" when the
// user never closed a chat.
func (s *SessionService) LatestDigest(ctx context.Context, userID int64) string {
	digest, err := s.queries.GetLatestSummary(ctx, userID, "global")
	if err != nil {
		slog.Warn("failed to load chat digest", "error", err, "user_id", userID)
		return ""
	}
	return digest
}

func (s *SessionService) GetByID(ctx context.Context, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.queries.GetConversationByID(ctx, conversationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

func (s *SessionService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	return s.queries.ListConversationsByUser(ctx, userID, limit, offset)
}

func (s *SessionService) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return s.queries.CountConversationsByUser(ctx, userID)
}

func (s *SessionService) Delete(ctx context.Context, user *domain.User, conversationID int64) error {
	if user.ActiveConversationID != nil && *user.ActiveConversationID == conversationID {
		if err := s.queries.SetUserActiveConversation(ctx, user.ID, nil); err != nil {
			return fmt.Errorf("clear active conversation: %w", err)
		}
		user.ActiveConversationID = nil
	}
	return s.queries.DeleteConversation(ctx, conversationID)
}

func (s *SessionService) SwitchTo(ctx context.Context, user *domain.User, conversationID int64) error {
	conv, err := s.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.UserID != user.ID {
		return domain.ErrConversationNotFound
	}
	if err := s.queries.SetUserActiveConversation(ctx, user.ID, &conversationID); err != nil {
		return fmt.Errorf("set active conversation: %w", err)
	}
	user.ActiveConversationID = &conversationID
	return nil
}

func (s *SessionService) AddMessage(ctx context.Context, conversationID int64, role, content string) (*domain.Message, error) {
	msg, err := s.queries.AddMessage(ctx, conversationID, role, content)
	if err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}
	return msg, nil
}

func (s *SessionService) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	return s.queries.CountMessages(ctx, conversationID)
}

// FirstMessageExcerpt gives a short label for chat listings.
func (s *SessionService) FirstMessageExcerpt(ctx context.Context, conversationID int64, maxLen int) string {
	first, err := s.queries.GetFirstMessage(ctx, conversationID)
	if err != nil {
		return defaultConversationTitle
	}
	excerpt := strings.TrimSpace(first.Content)
	if excerpt == "" {
		return defaultConversationTitle
	}
	if len([]rune(excerpt)) > maxLen {
		excerpt = string([]rune(excerpt)[:maxLen]) + "…"
	}
	return excerpt
}
