package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fakeSnapshotStore struct {
	jobs      []domain.Job
	reminders []domain.Reminder
	files     []domain.VaultFile
	jobsErr   error
}

func (f *fakeSnapshotStore) ListRecentJobs(ctx context.Context, userID int64, limit int) ([]domain.Job, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeSnapshotStore) ListRemindersBetween(ctx context.Context, userID int64, from, to time.Time, limit int) ([]domain.Reminder, error) {
	return f.reminders, nil
}

func (f *fakeSnapshotStore) ListFiles(ctx context.Context, userID int64, category string, limit int) ([]domain.VaultFile, error) {
	return f.files, nil
}

func TestSnapshotRenderPopulated(t *testing.T) {
	added := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

	store := &fakeSnapshotStore{
		jobs: []domain.Job{
			{ID: 1, Company: "Acme", Role: "Backend Engineer", Status: "Applied", DateAdded: added},
			{ID: 2, Company: "Globex", Role: "SRE", Status: "Interviewing", DateAdded: added},
			{ID: 3, Company: "Initech", Role: "Platform Engineer", Status: "To Apply", DateAdded: added},
		},
		reminders: []domain.Reminder{
			{ID: 1, Title: "Interview with Acme", DueAt: due, Category: "interview"},
		},
		files: []domain.VaultFile{
			{ID: 4, OriginalName: "cv.pdf", Category: "CV", DateAdded: added},
		},
	}

	out := NewSnapshotService(store).Render(context.Background(), 1)

	assert.Contains(t, out, "CareerBuddy app context (read-only):")
	assert.Contains(t, out, "Recent job applications:")
	assert.Contains(t, out, "- #1: Acme — Backend Engineer (Applied) added 2025-01-10")
	assert.Contains(t, out, "- #2: Globex — SRE (Interviewing) added 2025-01-10")
	assert.Contains(t, out, "Upcoming reminders (7 days):")
	assert.Contains(t, out, "- 2025-01-15 14:00 — Interview with Acme [interview]")
	assert.Contains(t, out, "Recent File Vault items:")
	assert.Contains(t, out, "- #4: cv.pdf [CV] added 2025-01-10")
}

func TestSnapshotRenderEmptySectionsSayNone(t *testing.T) {
	out := NewSnapshotService(&fakeSnapshotStore{}).Render(context.Background(), 1)

	assert.Contains(t, out, "Recent job applications: none")
	assert.Contains(t, out, "Upcoming reminders (7 days): none")
	assert.Contains(t, out, "Recent File Vault items: none")
}

func TestSnapshotRenderToleratesSectionErrors(t *testing.T) {
	store := &fakeSnapshotStore{
		jobsErr: errors.New("db down"),
		files:   []domain.VaultFile{{ID: 1, OriginalName: "cv.pdf", Category: "CV"}},
	}

	out := NewSnapshotService(store).Render(context.Background(), 1)

	// The broken section degrades to its empty form, the rest still renders.
	assert.Contains(t, out, "Recent job applications: none")
	assert.Contains(t, out, "cv.pdf")
}
