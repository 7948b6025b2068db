package config

import "time"

const (
	// Context limits
	HistoryLimit         = 16
	PinnedMemoryLimit    = 50
	RelevantMemoryLimit  = 20
	MaxPromptAttachments = 3
	AttachmentMaxChars   = 25_000

	// Snapshot limits
	SnapshotJobs          = 10
	SnapshotFiles         = 10
	SnapshotReminderLines = 12
	SnapshotReminderDays  = 7

	// Conversation message limit before auto-reset
	MaxMessagesPerConversation = 100

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// AI request timeout (local generation can be slow)
	RequestTimeout = 300 * time.Second

	// Minimum interval between streamed status-message edits
	StreamEditInterval = 1200 * time.Millisecond

	// Model cache duration
	ModelCacheDuration = 1 * time.Hour

	// Default models per backend
	DefaultOllamaModel = "deepseek-r1:8b"
	DefaultGeminiModel = "gemini-2.0-flash"

	// Sampling
	DefaultTemperature = 0.7
	OllamaNumCtx       = 4096
	OllamaKeepAlive    = "5m"

	// Importance assigned to memories stored via /remember
	RememberImportance = 6

	// Rate limit (messages per minute per chat)
	RateLimitPerMinute = 20

	// Stale request cleanup
	StaleRequestCleanup = 60 * time.Second
	StaleRequestAge     = 5 * time.Minute

	// Reminder notifier poll interval
	ReminderPollInterval = time.Minute

	// Items per page in inline listings
	JobsPerPage  = 5
	ChatsPerPage = 5
)

// JobStatuses in board order.
var JobStatuses = []string{"To Apply", "Applied", "Interviewing", "Offer", "Rejected"}

// TemperatureOptions offered in /settings.
var TemperatureOptions = []float64{0.1, 0.4, 0.7, 1.0, 1.5}
