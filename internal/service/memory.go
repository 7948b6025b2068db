package service

import (
	"context"
	"fmt"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
)

type memoryStore interface {
	CreateMemory(ctx context.Context, userID int64, memType, content string, importance int, pinned bool) (*domain.Memory, error)
	ListMemories(ctx context.Context, userID int64, limit int) ([]domain.Memory, error)
	SearchMemories(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error)
	SetMemoryPinned(ctx context.Context, userID, memoryID int64, pinned bool) (int64, error)
	DeleteMemory(ctx context.Context, userID, memoryID int64) (int64, error)
}

// MemoryService manages long-term user memories. Memories are facts the user
// explicitly asked to keep; pinned ones are always injected into model
// context, the rest only when they match the current message.
type MemoryService struct {
	store memoryStore
}

func NewMemoryService(store memoryStore) *MemoryService {
	return &MemoryService{store: store}
}

func (s *MemoryService) List(ctx context.Context, userID int64, limit int) ([]domain.Memory, error) {
	mems, err := s.store.ListMemories(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	return mems, nil
}

// Search matches unpinned context candidates against the user's message.
// A blank query matches nothing.
func (s *MemoryService) Search(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error) {
	if query == "" {
		return nil, nil
	}
	mems, err := s.store.SearchMemories(ctx, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}
	return mems, nil
}

func (s *MemoryService) Remember(ctx context.Context, userID int64, content string) (*domain.Memory, error) {
	mem, err := s.store.CreateMemory(ctx, userID, "fact", content, config.RememberImportance, false)
	if err != nil {
		return nil, fmt.Errorf("create memory: %w", err)
	}
	return mem, nil
}

// SetPinned is idempotent: pinning an already-pinned memory succeeds.
// Returns ErrMemoryNotFound when the id does not belong to the user.
func (s *MemoryService) SetPinned(ctx context.Context, userID, memoryID int64, pinned bool) error {
	affected, err := s.store.SetMemoryPinned(ctx, userID, memoryID, pinned)
	if err != nil {
		return fmt.Errorf("set memory pinned: %w", err)
	}
	if affected == 0 {
		return domain.ErrMemoryNotFound
	}
	return nil
}

func (s *MemoryService) Delete(ctx context.Context, userID, memoryID int64) error {
	affected, err := s.store.DeleteMemory(ctx, userID, memoryID)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	if affected == 0 {
		return domain.ErrMemoryNotFound
	}
	return nil
}
