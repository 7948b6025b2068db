package service

import (
	"context"
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemoryStore struct {
	created       []domain.Memory
	pinnedRows    int64
	deletedRows   int64
	searchQueries []string
}

func (f *fakeMemoryStore) CreateMemory(ctx context.Context, userID int64, memType, content string, importance int, pinned bool) (*domain.Memory, error) {
	m := domain.Memory{
		ID:         int64(len(f.created) + 1),
		UserID:     userID,
		Type:       memType,
		Content:    content,
		Importance: importance,
		Pinned:     pinned,
	}
	f.created = append(f.created, m)
	return &m, nil
}

func (f *fakeMemoryStore) ListMemories(ctx context.Context, userID int64, limit int) ([]domain.Memory, error) {
	return f.created, nil
}

func (f *fakeMemoryStore) SearchMemories(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error) {
	f.searchQueries = append(f.searchQueries, query)
	return nil, nil
}

func (f *fakeMemoryStore) SetMemoryPinned(ctx context.Context, userID, memoryID int64, pinned bool) (int64, error) {
	return f.pinnedRows, nil
}

func (f *fakeMemoryStore) DeleteMemory(ctx context.Context, userID, memoryID int64) (int64, error) {
	return f.deletedRows, nil
}

func TestRememberStoresFactWithDefaultImportance(t *testing.T) {
	store := &fakeMemoryStore{}
	svc := NewMemoryService(store)

	mem, err := svc.Remember(context.Background(), 42, "open to relocation")
	require.NoError(t, err)

	assert.Equal(t, "fact", mem.Type)
	assert.Equal(t, 6, mem.Importance)
	assert.False(t, mem.Pinned)
	assert.Equal(t, "open to relocation", mem.Content)
}

func TestSetPinnedMissingMemory(t *testing.T) {
	store := &fakeMemoryStore{pinnedRows: 0}
	svc := NewMemoryService(store)

	err := svc.SetPinned(context.Background(), 1, 99, true)
	assert.ErrorIs(t, err, domain.ErrMemoryNotFound)

	store.pinnedRows = 1
	assert.NoError(t, svc.SetPinned(context.Background(), 1, 99, true))
}

func TestDeleteMissingMemory(t *testing.T) {
	store := &fakeMemoryStore{deletedRows: 0}
	svc := NewMemoryService(store)

	err := svc.Delete(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrMemoryNotFound)

	store.deletedRows = 1
	assert.NoError(t, svc.Delete(context.Background(), 1, 99))
}

func TestSearchBlankQuerySkipsStore(t *testing.T) {
	store := &fakeMemoryStore{}
	svc := NewMemoryService(store)

	mems, err := svc.Search(context.Background(), 1, "", 20)
	require.NoError(t, err)
	assert.Nil(t, mems)
	assert.Empty(t, store.searchQueries)
}
