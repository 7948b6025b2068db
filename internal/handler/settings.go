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
)

func (h *Handler) handleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	var row []models.InlineKeyboardButton
	for _, t := range config.TemperatureOptions {
		label := fmt.Sprintf("%.1f", t)
		if user.Temperature == t {
			label = "✅ " + label
		}
		row = append(row, tg.InlineButton(label, fmt.Sprintf("temp_%.1f", t)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf("⚙️ Settings\n\nTemperature: %.1f\nLower is more focused, higher is more creative.",
			user.Temperature),
		ReplyMarkup: tg.InlineKeyboard(row),
	})
}

func (h *Handler) handleTempValue(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	temp, err := strconv.ParseFloat(strings.TrimPrefix(cb.Data, "temp_"), 64)
	if err != nil {
		return
	}

	if err := h.userService.SetTemperature(ctx, user.ID, temp); err != nil {
		slog.Error("set temperature", "error", err)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Could not update temperature.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            fmt.Sprintf("Temperature set to %.1f", temp),
	})
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    cb.Message.Message.Chat.ID,
		MessageID: cb.Message.Message.ID,
		Text:      fmt.Sprintf("⚙️ Temperature set to %.1f", temp),
	})
}
