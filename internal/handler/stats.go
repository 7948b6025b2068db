package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleStats shows global usage counters. Admin only.
func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil || !user.IsAdmin {
		return
	}
	chatID := update.Message.Chat.ID

	users, err := h.userService.Count(ctx)
	if err != nil {
		slog.Error("count users", "error", err)
		return
	}
	jobs, err := h.queries.CountJobs(ctx)
	if err != nil {
		slog.Error("count jobs", "error", err)
		return
	}
	messages, err := h.queries.CountMessagesTotal(ctx)
	if err != nil {
		slog.Error("count messages", "error", err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("📊 Stats\n\nUsers: %d\nTracked jobs: %d\nChat messages: %d\nBackend: %s",
			users, jobs, messages, h.chatClient.Name()),
	})
}
