package handler

import (
	"context"
	"log/slog"

	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = `👋 Hi! I'm CareerBuddy — your job search assistant.

I keep track of your applications, reminders and documents, and I can chat about all of it. Just send me a message.

Quick start:
• /addjob Company | Role — track an application
• /import <url> — import a job posting
• /remind 2026-09-15 14:00 Interview — set a reminder
• Send me a document to attach it to the chat, or caption it "save CV" to store it in your File Vault
• /remember <fact> — teach me something I should always know

/help shows everything I can do.`

const helpText = `🤖 CareerBuddy commands

Chat:
/new — start a fresh chat
/chats — list and switch between chats
/coverletter — cover letter mode (needs your CV attached)

Memory:
/remember <text> — save a long-term memory
/memories — list saved memories
/pin <id> / /unpin <id> — always include a memory (or stop)
/forget <id> — delete a memory

Job tracker:
/addjob Company | Role | Status | Salary — add an application
/jobs — browse applications, tap a job to advance its status
/import <url> — import a job posting from a link

Planning:
/remind YYYY-MM-DD HH:MM Title — set a reminder
/reminders — upcoming reminders
/note [text] — show or replace your scratch note

Files:
/vault — list stored documents
Send a document with caption "save <category>" to store it

Settings:
/model — pick the AI model
/settings — response temperature`

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
	if err != nil {
		slog.Error("send welcome", "error", err)
	}
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}
