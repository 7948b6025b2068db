package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addjob", bot.MatchTypePrefix, h.handleAddJob)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/jobs", bot.MatchTypePrefix, h.handleJobs)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/import", bot.MatchTypePrefix, h.handleImport)
	// "/reminders" first so the "/remind" prefix cannot swallow it
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reminders", bot.MatchTypePrefix, h.handleReminders)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/remind", bot.MatchTypePrefix, h.handleRemind)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/vault", bot.MatchTypePrefix, h.handleVault)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/chats", bot.MatchTypePrefix, h.handleChats)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/note", bot.MatchTypePrefix, h.handleNote)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/coverletter", bot.MatchTypePrefix, h.handleCoverLetter)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/model", bot.MatchTypePrefix, h.handleModel)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, h.handleSettings)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Jobs callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "jobs_page_", bot.MatchTypePrefix, h.handleJobsPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "job_status_", bot.MatchTypePrefix, h.handleJobStatus)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "job_delete_", bot.MatchTypePrefix, h.handleJobDelete)

	// Chats callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "chats_page_", bot.MatchTypePrefix, h.handleChatsPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "chat_switch_", bot.MatchTypePrefix, h.handleChatSwitch)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "chat_delete_", bot.MatchTypePrefix, h.handleChatDelete)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "chat_new", bot.MatchTypeExact, h.handleChatNew)

	// Vault / reminder callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "file_delete_", bot.MatchTypePrefix, h.handleFileDelete)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "reminder_delete_", bot.MatchTypePrefix, h.handleReminderDelete)

	// Model / settings callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "model_", bot.MatchTypePrefix, h.handleModelSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "temp_", bot.MatchTypePrefix, h.handleTempValue)

	// Pagination indicator
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges non-interactive inline buttons such as the
// pagination indicator.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
