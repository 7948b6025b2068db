package handler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/careerbuddy/bot/internal/service"
	tg "github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleVault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	files, err := h.vaultService.List(ctx, user.ID, "", 25)
	if err != nil {
		slog.Error("list vault files", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not load your File Vault.")
		return
	}

	if len(files) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Your File Vault is empty.\nSend me a document with caption \"save CV\" (or any category) to store it.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("🗄 File Vault:\n")
	var rows [][]models.InlineKeyboardButton
	for _, f := range files {
		fmt.Fprintf(&sb, "\n- #%d: %s [%s] added %s", f.ID, f.OriginalName, f.Category, f.DateAdded.Format("2006-01-02"))
		rows = append(rows, tg.ButtonRow(tg.InlineButton(fmt.Sprintf("🗑 #%d %s", f.ID, f.OriginalName), fmt.Sprintf("file_delete_%d", f.ID))))
	}
	sb.WriteString("\n\nSend a document without a caption to attach it to the current chat instead.")
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) handleFileDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	fileID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "file_delete_"), 10, 64)
	if err != nil {
		return
	}

	if err := h.vaultService.Delete(ctx, user.ID, fileID); err != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
			Text:            "File not found.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            fmt.Sprintf("Deleted file #%d", fileID),
	})
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    cb.Message.Message.Chat.ID,
		MessageID: cb.Message.Message.ID,
		Text:      fmt.Sprintf("🗑 Deleted file #%d. Use /vault to see the rest.", fileID),
	})
}

// HandleDocument routes an uploaded document: a caption starting with "save"
// stores it in the vault, anything else attaches it to the current chat
// session for the model to read.
func (h *Handler) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Document == nil || update.Message.Chat.Type != "private" {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID
	doc := msg.Document

	data, _, err := tg.DownloadFile(ctx, b, doc.FileID)
	if err != nil {
		slog.Error("download document", "error", err)
		h.sendError(ctx, b, chatID, "❌ Could not download that file.")
		return
	}

	caption := strings.TrimSpace(msg.Caption)
	if strings.HasPrefix(strings.ToLower(caption), "save") {
		category := strings.TrimSpace(caption[len("save"):])
		file, err := h.vaultService.Store(ctx, user.ID, data, doc.FileName, category)
		if err != nil {
			slog.Error("store vault file", "error", err)
			h.sendError(ctx, b, chatID, "❌ Could not store that file.")
			return
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("🗄 Stored %s in your File Vault [%s].", file.OriginalName, file.Category),
		})
		return
	}

	// Session attachment: write to a temp file so the extractor can sniff it
	tmp, err := os.CreateTemp("", "attach-*"+strings.ToLower(filepath.Ext(doc.FileName)))
	if err != nil {
		slog.Error("create temp attachment", "error", err)
		return
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		slog.Error("write temp attachment", "error", err)
		return
	}
	tmp.Close()

	kind, text := service.ExtractText(tmpPath, config.AttachmentMaxChars)
	os.Remove(tmpPath)

	h.attachments.Add(chatID, domain.Attachment{
		Name: doc.FileName,
		Kind: kind,
		Text: text,
	})

	note := ""
	if strings.TrimSpace(text) == "" {
		note = "\n⚠️ I couldn't extract text from it — if it's a scanned document, paste the content instead."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("📎 Attached %s (%s) to this chat.%s", doc.FileName, kind, note),
	})
}
