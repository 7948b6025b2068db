package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/middleware"
	tg "github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
)

// handleAddJob parses "/addjob Company | Role | Status | Salary" where status
// and salary are optional.
func (h *Handler) handleAddJob(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/addjob"))
	parts := strings.Split(args, "|")
	if args == "" || len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /addjob Company | Role | Status | Salary\nExample: /addjob Acme | Backend Engineer | Applied | 85000",
		})
		return
	}

	company := strings.TrimSpace(parts[0])
	role := strings.TrimSpace(parts[1])
	status := ""
	if len(parts) > 2 {
		status = strings.TrimSpace(parts[2])
	}

	var salary *decimal.Decimal
	if len(parts) > 3 {
		if v, err := decimal.NewFromString(strings.TrimSpace(parts[3])); err == nil {
			salary = &v
		}
	}

	job, err := h.jobService.Add(ctx, user.ID, company, role, status, "", salary)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ " + err.Error(),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Tracking #%d: %s — %s (%s)\nUse /jobs to manage it.", job.ID, job.Company, job.Role, job.Status),
	})
}

func (h *Handler) handleJobs(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	h.sendJobsPage(ctx, b, update.Message.Chat.ID, user.ID, 0, nil)
}

// sendJobsPage renders one page of the application list. Tapping a job cycles
// its status; the trash button removes it.
func (h *Handler) sendJobsPage(ctx context.Context, b *bot.Bot, chatID, userID int64, page int, messageID *int) {
	total, err := h.jobService.CountByUser(ctx, userID)
	if err != nil {
		slog.Error("count jobs", "error", err)
		return
	}
	if total == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No applications tracked yet.\nUse /addjob Company | Role, or /import <url>.",
		})
		return
	}

	totalPages := int((total + int64(config.JobsPerPage) - 1) / int64(config.JobsPerPage))
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	jobs, err := h.jobService.ListPage(ctx, userID, page)
	if err != nil {
		slog.Error("list jobs", "error", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "💼 Applications (%d total) — tap one to advance its status:\n", total)
	var rows [][]models.InlineKeyboardButton
	for _, j := range jobs {
		fmt.Fprintf(&sb, "\n#%d %s — %s\n    %s, added %s", j.ID, j.Company, j.Role, j.Status, j.DateAdded.Format("2006-01-02"))
		if j.Salary != nil {
			fmt.Fprintf(&sb, ", %s", j.Salary.StringFixed(0))
		}
		if j.Link != "" {
			fmt.Fprintf(&sb, "\n    %s", j.Link)
		}

		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(fmt.Sprintf("#%d %s → next status", j.ID, statusEmoji(j.Status)), fmt.Sprintf("job_status_%d_%d", j.ID, page)),
			tg.InlineButton("🗑", fmt.Sprintf("job_delete_%d_%d", j.ID, page)),
		))
	}
	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, "jobs_page"))
	}

	kb := tg.InlineKeyboard(rows...)
	if messageID != nil {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   *messageID,
			Text:        sb.String(),
			ReplyMarkup: kb,
		})
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: kb,
	})
}

func statusEmoji(status string) string {
	switch status {
	case "To Apply":
		return "📋"
	case "Applied":
		return "📨"
	case "Interviewing":
		return "🗣"
	case "Offer":
		return "🎉"
	case "Rejected":
		return "❌"
	}
	return "•"
}

func (h *Handler) handleJobsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "jobs_page_"))
	if err != nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID})
	msgID := cb.Message.Message.ID
	h.sendJobsPage(ctx, b, cb.Message.Message.Chat.ID, user.ID, page, &msgID)
}

func (h *Handler) handleJobStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	jobID, page, ok := parseIDAndPage(cb.Data, "job_status_")
	if !ok {
		return
	}

	job, err := h.jobService.CycleStatus(ctx, user.ID, jobID)
	if err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Job not found.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            fmt.Sprintf("#%d → %s", job.ID, job.Status),
	})
	msgID := cb.Message.Message.ID
	h.sendJobsPage(ctx, b, cb.Message.Message.Chat.ID, user.ID, page, &msgID)
}

func (h *Handler) handleJobDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	jobID, page, ok := parseIDAndPage(cb.Data, "job_delete_")
	if !ok {
		return
	}

	if err := h.jobService.Delete(ctx, user.ID, jobID); err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Job not found.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Deleted.",
	})
	msgID := cb.Message.Message.ID
	h.sendJobsPage(ctx, b, cb.Message.Message.Chat.ID, user.ID, page, &msgID)
}

// parseIDAndPage splits callback data shaped "<prefix><id>_<page>".
func parseIDAndPage(data, prefix string) (int64, int, bool) {
	rest := strings.TrimPrefix(data, prefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return id, page, true
}

// handleImport scrapes a job posting URL into a tracked application.
func (h *Handler) handleImport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	rawURL := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/import"))
	if rawURL == "" || !strings.HasPrefix(rawURL, "http") {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /import <job posting url>",
		})
		return
	}

	job, err := h.jobImporter.ImportFromURL(ctx, user.ID, rawURL)
	if err != nil {
		slog.Warn("import job posting", "error", err, "url", rawURL)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Could not import that posting: " + err.Error(),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Imported #%d: %s — %s\nUse /jobs to manage it.", job.ID, job.Company, job.Role),
	})
}
