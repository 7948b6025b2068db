package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleNote shows the scratch note, or replaces it when text follows the
// command.
func (h *Handler) handleNote(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	content := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/note"))
	if content != "" {
		if err := h.noteService.Set(ctx, user.ID, content); err != nil {
			slog.Error("save note", "error", err)
			h.sendError(ctx, b, chatID, "❌ Could not save your note.")
			return
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📝 Note saved.",
		})
		return
	}

	note, err := h.noteService.Get(ctx, user.ID)
	if err != nil {
		slog.Error("get note", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not load your note.")
		return
	}
	if note == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No note yet. Use /note <text> to write one.",
		})
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "📝 Your note:\n\n" + note,
	})
}
