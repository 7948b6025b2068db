package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/careerbuddy/bot/internal/middleware"
	tg "github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleModel lists the models the active backend offers.
func (h *Handler) handleModel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	aiModels, err := h.chatClient.ListModels(ctx)
	if err != nil {
		slog.Error("list models", "error", err, "backend", h.chatClient.Name())
		h.sendError(ctx, b, chatID, "❌ Could not load the model list.")
		return
	}
	if len(aiModels) == 0 {
		h.sendError(ctx, b, chatID, "❌ The backend reports no installed models.")
		return
	}

	current := user.SelectedModel
	if current == "" {
		current = h.chatClient.DefaultModel()
	}

	var rows [][]models.InlineKeyboardButton
	for _, m := range aiModels {
		label := m.Name
		if m.ID == current {
			label = "✅ " + label
		}
		if m.Size > 0 {
			label = fmt.Sprintf("%s (%.1f GB)", label, float64(m.Size)/(1<<30))
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(label, "model_"+m.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("🤖 Models on %s — current: %s", h.chatClient.Name(), current),
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) handleModelSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	modelID := strings.TrimPrefix(cb.Data, "model_")
	if err := h.userService.SetModel(ctx, user.ID, modelID); err != nil {
		slog.Error("set model", "error", err)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Could not switch model.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Model switched to " + modelID,
	})
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    cb.Message.Message.Chat.ID,
		MessageID: cb.Message.Message.ID,
		Text:      "🤖 Model set to " + modelID,
	})
}
