package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/careerbuddy/bot/internal/middleware"
	tg "github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleRemind parses "/remind YYYY-MM-DD HH:MM Title [#category]".
func (h *Handler) handleRemind(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if strings.HasPrefix(update.Message.Text, "/reminders") {
		h.handleReminders(ctx, b, update)
		return
	}

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/remind"))
	parts := strings.Fields(args)
	if len(parts) < 3 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /remind YYYY-MM-DD HH:MM Title [#category]\nExample: /remind 2026-09-15 14:00 Interview with Acme #interview",
		})
		return
	}

	dueAt, err := time.ParseInLocation("2006-01-02 15:04", parts[0]+" "+parts[1], time.Local)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Could not parse that date. Use: /remind YYYY-MM-DD HH:MM Title",
		})
		return
	}

	titleParts := parts[2:]
	category := ""
	if last := titleParts[len(titleParts)-1]; strings.HasPrefix(last, "#") {
		category = strings.TrimPrefix(last, "#")
		titleParts = titleParts[:len(titleParts)-1]
	}
	title := strings.Join(titleParts, " ")
	if title == "" {
		title = "Reminder"
	}

	rem, err := h.reminderService.Add(ctx, user.ID, title, dueAt, category)
	if err != nil {
		slog.Error("add reminder", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not save that reminder.")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("⏰ Reminder set: %s [%s]\nDue %s",
			rem.Title, rem.Category, rem.DueAt.Format("2006-01-02 15:04")),
	})
}

func (h *Handler) handleReminders(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	reminders, err := h.reminderService.ListUpcoming(ctx, user.ID, 30, 25)
	if err != nil {
		slog.Error("list reminders", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not load your reminders.")
		return
	}

	if len(reminders) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No upcoming reminders.\nUse /remind YYYY-MM-DD HH:MM Title to set one.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ Upcoming reminders (30 days):\n")
	var rows [][]models.InlineKeyboardButton
	for _, r := range reminders {
		fmt.Fprintf(&sb, "\n- %s — %s [%s]", r.DueAt.Format("2006-01-02 15:04"), r.Title, r.Category)
		rows = append(rows, tg.ButtonRow(tg.InlineButton("🗑 "+r.Title, fmt.Sprintf("reminder_delete_%d", r.ID))))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) handleReminderDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	reminderID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "reminder_delete_"), 10, 64)
	if err != nil {
		return
	}

	if err := h.reminderService.Delete(ctx, user.ID, reminderID); err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Reminder not found.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Reminder deleted.",
	})
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    cb.Message.Message.Chat.ID,
		MessageID: cb.Message.Message.ID,
		Text:      "🗑 Reminder deleted. Use /reminders to see the rest.",
	})
}
