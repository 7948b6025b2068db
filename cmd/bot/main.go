package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	careerbuddy "github.com/careerbuddy/bot"
	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/handler"
	"github.com/careerbuddy/bot/internal/middleware"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/careerbuddy/bot/internal/service"
	"github.com/careerbuddy/bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(careerbuddy.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	queries := repository.New(pool)

	// Resolve the chat backend once; the bot runs against it for its lifetime
	chatClient, err := service.ResolveBackend(ctx, cfg)
	if err != nil {
		slog.Error("failed to resolve chat backend", "error", err)
		os.Exit(1)
	}
	slog.Info("chat backend selected", "backend", chatClient.Name(), "default_model", chatClient.DefaultModel())

	// Initialize services
	userService := service.NewUserService(queries)
	sessionService := service.NewSessionService(queries)
	memoryService := service.NewMemoryService(queries)
	jobService := service.NewJobService(queries)
	jobImporter := service.NewJobImporter(jobService)
	reminderService := service.NewReminderService(queries)
	noteService := service.NewNoteService(queries)
	snapshotService := service.NewSnapshotService(queries)
	attachments := service.NewAttachmentStore(config.MaxPromptAttachments)
	builder := service.NewContextBuilder(snapshotService, memoryService, attachments, queries)
	interpreter := service.NewCommandInterpreter(memoryService)

	vaultService, err := service.NewVaultService(queries, cfg.FilesDir)
	if err != nil {
		slog.Error("failed to init file vault", "error", err)
		os.Exit(1)
	}

	// Handler and logger pointers for use in closures created before bot.New
	var (
		h        *handler.Handler
		tgLogger *telegram.TelegramLogger
	)

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(queries),
			middleware.UserLoader(userService, cfg, func(u *domain.User) {
				if tgLogger != nil {
					tgLogger.LogRegistration(u.TelegramID, u.FirstName, u.Username)
				}
			}),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			if update.Message.Document != nil {
				h.HandleDocument(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true})
	}

	tgLogger = telegram.NewTelegramLogger(b, cfg)

	h = handler.New(handler.Deps{
		Bot:             b,
		Cfg:             cfg,
		UserService:     userService,
		SessionService:  sessionService,
		MemoryService:   memoryService,
		JobService:      jobService,
		JobImporter:     jobImporter,
		ReminderService: reminderService,
		VaultService:    vaultService,
		NoteService:     noteService,
		Builder:         builder,
		Interpreter:     interpreter,
		Attachments:     attachments,
		ChatClient:      chatClient,
		Queries:         queries,
		TgLogger:        tgLogger,
	})

	// Register command and callback handlers
	h.Register()

	// Catch-all text handler: plain messages and interpreter-level slash
	// commands. Registered last so specific commands match first.
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if update.Message.Chat.Type == "private" {
			h.HandleTextPrivate(ctx, b, update)
		}
	})

	// Stale request cleanup: a crashed turn must not lock its chat forever
	go func() {
		ticker := time.NewTicker(config.StaleRequestCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := queries.CleanupStaleRequests(context.Background(), config.StaleRequestAge); err != nil {
					slog.Error("cleanup stale requests", "error", err)
				}
			}
		}
	}()

	// Reminder notifier
	go reminderService.RunNotifier(ctx, func(chatID int64, text string) {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
		if err != nil {
			slog.Error("send reminder notification", "error", err, "chat_id", chatID)
		}
	})

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
