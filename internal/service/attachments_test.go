package service

import (
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentStoreEvictsOldest(t *testing.T) {
	store := NewAttachmentStore(2)

	store.Add(1, domain.Attachment{Name: "a.txt"})
	store.Add(1, domain.Attachment{Name: "b.txt"})
	store.Add(1, domain.Attachment{Name: "c.txt"})

	list := store.List(1)
	require.Len(t, list, 2)
	assert.Equal(t, "b.txt", list[0].Name)
	assert.Equal(t, "c.txt", list[1].Name)
}

func TestAttachmentStoreIsolatesChats(t *testing.T) {
	store := NewAttachmentStore(3)

	store.Add(1, domain.Attachment{Name: "mine.txt"})
	store.Add(2, domain.Attachment{Name: "yours.txt"})

	assert.Equal(t, 1, store.Count(1))
	assert.Equal(t, 1, store.Count(2))
	assert.Equal(t, "mine.txt", store.List(1)[0].Name)
}

func TestAttachmentStoreClear(t *testing.T) {
	store := NewAttachmentStore(3)
	store.Add(1, domain.Attachment{Name: "a.txt"})

	store.Clear(1)
	assert.Equal(t, 0, store.Count(1))
	assert.Empty(t, store.List(1))
}

func TestAttachmentStoreListReturnsCopy(t *testing.T) {
	store := NewAttachmentStore(3)
	store.Add(1, domain.Attachment{Name: "a.txt"})

	list := store.List(1)
	list[0].Name = "mutated"

	assert.Equal(t, "a.txt", store.List(1)[0].Name)
}

func TestAttachmentStoreSetsAddedAt(t *testing.T) {
	store := NewAttachmentStore(3)
	store.Add(1, domain.Attachment{Name: "a.txt"})

	assert.False(t, store.List(1)[0].AddedAt.IsZero())
}
