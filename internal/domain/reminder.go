package domain

import "time"

type Reminder struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DueAt       time.Time
	Category    string
	Notified    bool
}
