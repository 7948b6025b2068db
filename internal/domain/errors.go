package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMemoryNotFound       = errors.New("memory not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrFileNotFound         = errors.New("file not found")
	ErrActiveRequest        = errors.New("active request exists")
	ErrEmptyStream          = errors.New("stream ended before completion")
)
