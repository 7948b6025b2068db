package domain

import "time"

type Conversation struct {
	ID        int64
	UserID    int64
	Title     string
	CreatedAt time.Time
}

// Message roles as stored. Only user and assistant messages re-enter the
// model context; anything else is dropped on replay.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Message struct {
	ID             int64
	ConversationID int64
	Role           string
	Content        string
	CreatedAt      time.Time
}
