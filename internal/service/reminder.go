package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/repository"
)

// ReminderService schedules application deadlines and interview reminders.
type ReminderService struct {
	queries *repository.Queries
}

func NewReminderService(queries *repository.Queries) *ReminderService {
	return &ReminderService{queries: queries}
}

func (s *ReminderService) Add(ctx context.Context, userID int64, title string, dueAt time.Time, category string) (*domain.Reminder, error) {
	if category == "" {
		category = "General"
	}
	rem, err := s.queries.CreateReminder(ctx, &domain.Reminder{
		UserID:   userID,
		Title:    title,
		DueAt:    dueAt,
		Category: category,
	})
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return rem, nil
}

func (s *ReminderService) ListUpcoming(ctx context.Context, userID int64, days, limit int) ([]domain.Reminder, error) {
	now := time.Now()
	return s.queries.ListRemindersBetween(ctx, userID, now, now.AddDate(0, 0, days), limit)
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID int64) error {
	deleted, err := s.queries.DeleteReminderOwned(ctx, userID, reminderID)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if deleted == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

// RunNotifier polls for due reminders and delivers them through send until
// the context is cancelled. Each reminder is delivered at most once.
func (s *ReminderService) RunNotifier(ctx context.Context, send func(chatID int64, text string)) {
	ticker := time.NewTicker(config.ReminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.notifyDue(ctx, send)
		}
	}
}

func (s *ReminderService) notifyDue(ctx context.Context, send func(chatID int64, text string)) {
	due, err := s.queries.ListDueReminders(ctx, time.Now())
	if err != nil {
		slog.Error("failed to list due reminders", "error", err)
		return
	}

	for _, r := range due {
		text := fmt.Sprintf("⏰ Reminder: %s [%s]\nDue %s",
			r.Title, r.Category, r.DueAt.Format("2006-01-02 15:04"))
		send(r.TelegramID, text)

		if err := s.queries.MarkReminderNotified(ctx, r.ID); err != nil {
			slog.Error("failed to mark reminder notified", "error", err, "reminder_id", r.ID)
		}
	}
}
