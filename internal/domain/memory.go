package domain

import "time"

// Memory is a long-term fact stored by the user. Pinned memories are always
// injected into model context; unpinned ones only when they match the query.
type Memory struct {
	ID         int64
	UserID     int64
	Type       string
	Content    string
	Importance int
	Pinned     bool
	CreatedAt  time.Time
}

type Summary struct {
	ID        int64
	UserID    int64
	Scope     string
	Text      string
	CreatedAt time.Time
}
