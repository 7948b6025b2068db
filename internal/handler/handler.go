package handler

import (
	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/careerbuddy/bot/internal/service"
	"github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot             *bot.Bot
	cfg             *config.Config
	userService     *service.UserService
	sessionService  *service.SessionService
	memoryService   *service.MemoryService
	jobService      *service.JobService
	jobImporter     *service.JobImporter
	reminderService *service.ReminderService
	vaultService    *service.VaultService
	noteService     *service.NoteService
	builder         *service.ContextBuilder
	interpreter     *service.CommandInterpreter
	attachments     *service.AttachmentStore
	chatClient      service.ChatClient
	queries         *repository.Queries
	tgLogger        *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot             *bot.Bot
	Cfg             *config.Config
	UserService     *service.UserService
	SessionService  *service.SessionService
	MemoryService   *service.MemoryService
	JobService      *service.JobService
	JobImporter     *service.JobImporter
	ReminderService *service.ReminderService
	VaultService    *service.VaultService
	NoteService     *service.NoteService
	Builder         *service.ContextBuilder
	Interpreter     *service.CommandInterpreter
	Attachments     *service.AttachmentStore
	ChatClient      service.ChatClient
	Queries         *repository.Queries
	TgLogger        *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:             deps.Bot,
		cfg:             deps.Cfg,
		userService:     deps.UserService,
		sessionService:  deps.SessionService,
		memoryService:   deps.MemoryService,
		jobService:      deps.JobService,
		jobImporter:     deps.JobImporter,
		reminderService: deps.ReminderService,
		vaultService:    deps.VaultService,
		noteService:     deps.NoteService,
		builder:         deps.Builder,
		interpreter:     deps.Interpreter,
		attachments:     deps.Attachments,
		chatClient:      deps.ChatClient,
		queries:         deps.Queries,
		tgLogger:        deps.TgLogger,
	}
}
