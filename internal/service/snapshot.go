package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
)

type snapshotStore interface {
	ListRecentJobs(ctx context.Context, userID int64, limit int) ([]domain.Job, error)
	ListRemindersBetween(ctx context.Context, userID int64, from, to time.Time, limit int) ([]domain.Reminder, error)
	ListFiles(ctx context.Context, userID int64, category string, limit int) ([]domain.VaultFile, error)
}

// SnapshotService renders the read-only application state that gets injected
// into model context: recent jobs, upcoming reminders, and vault files.
type SnapshotService struct {
	store snapshotStore
	now   func() time.Time
}

func NewSnapshotService(store snapshotStore) *SnapshotService {
	return &SnapshotService{store: store, now: time.Now}
}

// Render always produces all three sections; a section whose data cannot be
// loaded is rendered as empty rather than failing the whole prompt.
func (s *SnapshotService) Render(ctx context.Context, userID int64) string {
	var b strings.Builder
	b.WriteString("CareerBuddy app context (read-only):\n")

	jobs, err := s.store.ListRecentJobs(ctx, userID, config.SnapshotJobs)
	if err != nil {
		slog.Warn("snapshot: list jobs failed", "error", err, "user_id", userID)
		jobs = nil
	}
	if len(jobs) > 0 {
		b.WriteString("\nRecent job applications:\n")
		for _, j := range jobs {
			fmt.Fprintf(&b, "- #%d: %s — %s (%s) added %s\n",
				j.ID, j.Company, j.Role, j.Status, j.DateAdded.Format("2006-01-02"))
		}
	} else {
		b.WriteString("\nRecent job applications: none\n")
	}

	now := s.now()
	reminders, err := s.store.ListRemindersBetween(ctx, userID,
		now, now.AddDate(0, 0, config.SnapshotReminderDays), config.SnapshotReminderLines)
	if err != nil {
		slog.Warn("snapshot: list reminders failed", "error", err, "user_id", userID)
		reminders = nil
	}
	if len(reminders) > 0 {
		b.WriteString("\nUpcoming reminders (7 days):\n")
		for _, r := range reminders {
			fmt.Fprintf(&b, "- %s — %s [%s]\n",
				r.DueAt.Format("2006-01-02 15:04"), r.Title, r.Category)
		}
	} else {
		b.WriteString("\nUpcoming reminders (7 days): none\n")
	}

	files, err := s.store.ListFiles(ctx, userID, "", config.SnapshotFiles)
	if err != nil {
		slog.Warn("snapshot: list files failed", "error", err, "user_id", userID)
		files = nil
	}
	if len(files) > 0 {
		b.WriteString("\nRecent File Vault items:\n")
		for _, f := range files {
			fmt.Fprintf(&b, "- #%d: %s [%s] added %s\n",
				f.ID, f.OriginalName, f.Category, f.DateAdded.Format("2006-01-02"))
		}
	} else {
		b.WriteString("\nRecent File Vault items: none\n")
	}

	return strings.TrimSpace(b.String())
}
