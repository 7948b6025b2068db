package service

import (
	"sync"
	"time"

	"github.com/careerbuddy/bot/internal/domain"
)

// AttachmentStore keeps per-chat session attachments in memory. Attachments
// are deliberately not persisted: they belong to the current chat session and
// are cleared when the user starts a new one.
type AttachmentStore struct {
	mu      sync.RWMutex
	byChat  map[int64][]domain.Attachment
	maxSize int
}

func NewAttachmentStore(maxSize int) *AttachmentStore {
	return &AttachmentStore{
		byChat:  make(map[int64][]domain.Attachment),
		maxSize: maxSize,
	}
}

func (s *AttachmentStore) Add(chatID int64, a domain.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.AddedAt.IsZero() {
		a.AddedAt = time.Now()
	}

	list := append(s.byChat[chatID], a)
	if len(list) > s.maxSize {
		list = list[len(list)-s.maxSize:]
	}
	s.byChat[chatID] = list
}

// List returns a copy of the chat's attachments, oldest first.
func (s *AttachmentStore) List(chatID int64) []domain.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byChat[chatID]
	out := make([]domain.Attachment, len(list))
	copy(out, list)
	return out
}

func (s *AttachmentStore) Count(chatID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byChat[chatID])
}

func (s *AttachmentStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}
