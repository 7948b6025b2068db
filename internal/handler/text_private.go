package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/careerbuddy/bot/internal/service"
	tg "github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleTextPrivate processes private text messages: slash commands go
// through the interpreter, everything else becomes an AI turn.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := msg.Chat.ID

	// 1. Slash commands never reach the model
	if h.handleChatCommand(ctx, b, user, chatID, text) {
		return
	}

	// 2. Auto-attach the CV when the user talks about it with nothing attached
	if (strings.Contains(strings.ToLower(text), "cv") || strings.Contains(strings.ToLower(text), "resume")) &&
		h.attachments.Count(chatID) == 0 {
		h.attachCVFromVault(ctx, b, user, chatID)
	}

	// 3. One in-flight request per chat
	if err := h.queries.TrySetActiveRequest(ctx, chatID); err != nil {
		if errors.Is(err, domain.ErrActiveRequest) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "⏳ Wait for the previous reply to finish.",
			})
			return
		}
		slog.Error("set active request", "error", err)
		return
	}
	defer h.queries.RemoveActiveRequest(context.WithoutCancel(ctx), chatID)

	// 4. Update last interaction
	h.userService.UpdateLastInteraction(ctx, user.ID)

	// 5. Ensure a conversation, resetting when the message cap is hit
	conv, err := h.sessionService.FindOrCreate(ctx, user)
	if err != nil {
		slog.Error("find or create conversation", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not open a chat session.")
		return
	}

	msgCount, err := h.sessionService.CountMessages(ctx, conv.ID)
	if err != nil {
		slog.Error("count messages", "error", err)
		return
	}
	if msgCount >= int64(config.MaxMessagesPerConversation) {
		conv, err = h.sessionService.Reset(ctx, user)
		if err != nil {
			slog.Error("reset conversation on limit", "error", err)
			return
		}
		h.attachments.Clear(chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("📝 Message limit reached (%d). Started a fresh chat.", config.MaxMessagesPerConversation),
		})
	}

	// 6. Build model context before persisting anything
	messages, err := h.builder.Build(ctx, user.ID, chatID, &conv.ID, text)
	if err != nil {
		slog.Error("build context", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not prepare your request.")
		return
	}

	// 7. Persist the user message now that the build succeeded
	if _, err := h.sessionService.AddMessage(ctx, conv.ID, domain.RoleUser, text); err != nil {
		slog.Error("save user message", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not save your message.")
		return
	}

	// 8. Stream the reply, editing a status message as tokens arrive
	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "💭 Thinking...",
	})

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	model := user.SelectedModel
	if model == "" {
		model = h.chatClient.DefaultModel()
	}

	var buffer strings.Builder
	lastEdit := time.Now()

	full, err := h.chatClient.ChatStream(reqCtx, model, user.Temperature, messages, func(delta string) {
		buffer.WriteString(delta)
		if statusMsg == nil || time.Since(lastEdit) < config.StreamEditInterval {
			return
		}
		lastEdit = time.Now()
		preview := tg.StripReasoning(buffer.String())
		if preview == "" {
			return
		}
		tg.EditLongMessage(ctx, b, chatID, statusMsg.ID, preview+" …")
	})
	if err != nil {
		slog.Error("chat stream", "error", err, "model", model, "backend", h.chatClient.Name())
		h.tgLogger.LogError(err, fmt.Sprintf("chat stream (model=%s)", model))

		errText := "❌ Something went wrong while generating the reply."
		switch {
		case errors.Is(err, domain.ErrEmptyStream):
			errText = "⚠️ The reply was cut off before completion. Please try again."
		case reqCtx.Err() != nil:
			errText = "⏳ The model took too long to reply. Please try again."
		}
		if statusMsg != nil {
			b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:    chatID,
				MessageID: statusMsg.ID,
				Text:      errText,
			})
		}
		return
	}

	final := tg.StripReasoning(full)
	if final == "" {
		final = "…"
	}

	// 9. Persist the assistant message only after a complete stream
	if _, err := h.sessionService.AddMessage(ctx, conv.ID, domain.RoleAssistant, final); err != nil {
		slog.Error("save assistant message", "error", err)
	}

	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}
	if err := tg.SendLongMessage(ctx, b, chatID, final, nil); err != nil {
		slog.Error("send reply", "error", err)
	}
}

// handleChatCommand runs the slash-command interpreter. Returns true when the
// message was a command and a reply has been sent.
func (h *Handler) handleChatCommand(ctx context.Context, b *bot.Bot, user *domain.User, chatID int64, text string) bool {
	reply, kind, err := h.interpreter.Handle(ctx, user.ID, text)
	if kind == service.CmdNone {
		return false
	}
	if err != nil {
		slog.Error("command failed", "error", err, "text", text)
		h.sendError(ctx, b, chatID, "❌ That command failed. Please try again.")
		return true
	}

	if kind == service.CmdNewSession {
		if _, err := h.sessionService.Reset(ctx, user); err != nil {
			slog.Error("reset conversation", "error", err)
			h.sendError(ctx, b, chatID, "❌ Could not start a new chat.")
			return true
		}
		h.attachments.Clear(chatID)
		reply = "🆕 Started a new chat. Previous context and attachments were cleared."
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply,
	})
	return true
}

// attachCVFromVault pulls the best CV candidate from the vault into the
// current session. Best effort; chat continues without it on failure.
func (h *Handler) attachCVFromVault(ctx context.Context, b *bot.Bot, user *domain.User, chatID int64) {
	file, err := h.vaultService.FindBestCV(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrFileNotFound) {
			slog.Error("find cv in vault", "error", err)
		}
		return
	}

	kind, extracted := service.ExtractText(h.vaultService.Path(file), config.AttachmentMaxChars)
	h.attachments.Add(chatID, domain.Attachment{
		Path: h.vaultService.Path(file),
		Name: file.OriginalName,
		Kind: kind,
		Text: extracted,
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("📎 Attached %s from your File Vault.", file.OriginalName),
	})
}

func (h *Handler) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}
