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

func (h *Handler) handleChats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	h.sendChatsPage(ctx, b, update.Message.Chat.ID, 0, nil)
}

// sendChatsPage lists conversations labelled by their first message, with the
// active one marked. Needs the user from context, so callers pass it via ctx.
func (h *Handler) sendChatsPage(ctx context.Context, b *bot.Bot, chatID int64, page int, messageID *int) {
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	total, err := h.sessionService.CountByUser(ctx, user.ID)
	if err != nil {
		slog.Error("count conversations", "error", err)
		return
	}

	var rows [][]models.InlineKeyboardButton
	var sb strings.Builder

	if total == 0 {
		sb.WriteString("No chats yet. Send me a message to start one.")
		if digest := h.sessionService.LatestDigest(ctx, user.ID); digest != "" {
			sb.WriteString("\n\n" + digest)
		}
	} else {
		totalPages := int((total + int64(config.ChatsPerPage) - 1) / int64(config.ChatsPerPage))
		if page < 0 {
			page = 0
		}
		if page >= totalPages {
			page = totalPages - 1
		}

		convs, err := h.sessionService.ListByUser(ctx, user.ID, config.ChatsPerPage, page*config.ChatsPerPage)
		if err != nil {
			slog.Error("list conversations", "error", err)
			return
		}

		fmt.Fprintf(&sb, "💬 Your chats (%d) — tap to switch:", total)
		for _, c := range convs {
			label := h.sessionService.FirstMessageExcerpt(ctx, c.ID, 30)
			marker := ""
			if user.ActiveConversationID != nil && *user.ActiveConversationID == c.ID {
				marker = "▶️ "
			}
			rows = append(rows, tg.ButtonRow(
				tg.InlineButton(fmt.Sprintf("%s#%d %s", marker, c.ID, label), fmt.Sprintf("chat_switch_%d", c.ID)),
				tg.InlineButton("🗑", fmt.Sprintf("chat_delete_%d_%d", c.ID, page)),
			))
		}
		if totalPages > 1 {
			rows = append(rows, tg.PaginationRow(page, totalPages, "chats_page"))
		}
	}

	rows = append(rows, tg.ButtonRow(tg.InlineButton("🆕 New chat", "chat_new")))

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

func (h *Handler) handleChatsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "chats_page_"))
	if err != nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID})
	msgID := cb.Message.Message.ID
	h.sendChatsPage(ctx, b, cb.Message.Message.Chat.ID, page, &msgID)
}

func (h *Handler) handleChatSwitch(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	convID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "chat_switch_"), 10, 64)
	if err != nil {
		return
	}

	if err := h.sessionService.SwitchTo(ctx, user, convID); err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Chat not found.",
		})
		return
	}
	h.attachments.Clear(cb.Message.Message.Chat.ID)

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            fmt.Sprintf("Switched to chat #%d", convID),
	})
	msgID := cb.Message.Message.ID
	h.sendChatsPage(ctx, b, cb.Message.Message.Chat.ID, 0, &msgID)
}

func (h *Handler) handleChatDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	convID, page, ok := parseIDAndPage(cb.Data, "chat_delete_")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(ctx, user, convID); err != nil {
		slog.Error("delete conversation", "error", err)
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "Could not delete that chat.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Deleted.",
	})
	msgID := cb.Message.Message.ID
	h.sendChatsPage(ctx, b, cb.Message.Message.Chat.ID, page, &msgID)
}

func (h *Handler) handleChatNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	if _, err := h.sessionService.Reset(ctx, user); err != nil {
		slog.Error("new conversation", "error", err)
		return
	}
	h.attachments.Clear(cb.Message.Message.Chat.ID)

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            "Started a new chat.",
	})
	msgID := cb.Message.Message.ID
	h.sendChatsPage(ctx, b, cb.Message.Message.Chat.ID, 0, &msgID)
}
