package handler

import (
	"context"
	"strings"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleCoverLetter checks that a readable CV is attached before inviting the
// user to paste the job description.
func (h *Handler) handleCoverLetter(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	hasCV := false
	for _, a := range h.attachments.List(chatID) {
		switch a.Kind {
		case domain.KindPDF, domain.KindDOCX, domain.KindText:
			if strings.TrimSpace(a.Text) != "" {
				hasCV = true
			}
		}
	}

	if !hasCV {
		// Try the vault before giving up
		h.attachCVFromVault(ctx, b, user, chatID)
		for _, a := range h.attachments.List(chatID) {
			if strings.TrimSpace(a.Text) != "" {
				hasCV = true
				break
			}
		}
	}

	if !hasCV {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Upload your CV first (PDF/DOCX/TXT), then run /coverletter again.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "Cover Letter Mode ✅\n\n" +
			"1) Paste the job description in your next message.\n" +
			"2) I'll generate a tailored cover letter using your uploaded CV.\n\n" +
			"Tip: include company name + role title if possible.",
	})
}
