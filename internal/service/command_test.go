package service

import (
	"context"
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemoryCommander struct {
	memories   []domain.Memory
	remembered []string
	pins       map[int64]bool
	deleted    []int64
	missing    bool
}

func newFakeMemoryCommander() *fakeMemoryCommander {
	return &fakeMemoryCommander{pins: make(map[int64]bool)}
}

func (f *fakeMemoryCommander) List(ctx context.Context, userID int64, limit int) ([]domain.Memory, error) {
	return f.memories, nil
}

func (f *fakeMemoryCommander) Remember(ctx context.Context, userID int64, content string) (*domain.Memory, error) {
	f.remembered = append(f.remembered, content)
	return &domain.Memory{ID: int64(len(f.remembered)), Type: "fact", Content: content}, nil
}

func (f *fakeMemoryCommander) SetPinned(ctx context.Context, userID, memoryID int64, pinned bool) error {
	if f.missing {
		return domain.ErrMemoryNotFound
	}
	f.pins[memoryID] = pinned
	return nil
}

func (f *fakeMemoryCommander) Delete(ctx context.Context, userID, memoryID int64) error {
	if f.missing {
		return domain.ErrMemoryNotFound
	}
	f.deleted = append(f.deleted, memoryID)
	return nil
}

func TestInterpreterPlainTextIsNotACommand(t *testing.T) {
	ci := NewCommandInterpreter(newFakeMemoryCommander())

	reply, kind, err := ci.Handle(context.Background(), 1, "how do I write a cover letter?")
	require.NoError(t, err)
	assert.Equal(t, CmdNone, kind)
	assert.Empty(t, reply)
}

func TestInterpreterUnknownCommandShowsHelp(t *testing.T) {
	ci := NewCommandInterpreter(newFakeMemoryCommander())

	reply, kind, err := ci.Handle(context.Background(), 1, "/frobnicate now")
	require.NoError(t, err)
	assert.Equal(t, CmdUnknown, kind)
	assert.Contains(t, reply, "Unknown command.")
	assert.Contains(t, reply, "/remember <text>")
	assert.Contains(t, reply, "/new")
}

func TestInterpreterNewSession(t *testing.T) {
	ci := NewCommandInterpreter(newFakeMemoryCommander())

	for _, cmd := range []string{"/new", "/reset", "/NEW"} {
		_, kind, err := ci.Handle(context.Background(), 1, cmd)
		require.NoError(t, err)
		assert.Equal(t, CmdNewSession, kind, cmd)
	}
}

func TestInterpreterRemember(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/remember I prefer hybrid roles")
	require.NoError(t, err)
	assert.Equal(t, CmdRemember, kind)
	assert.Contains(t, reply, "Saved memory")
	assert.Contains(t, reply, "I prefer hybrid roles")
	require.Equal(t, []string{"I prefer hybrid roles"}, store.remembered)
}

func TestInterpreterRememberWithoutTextShowsUsage(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/remember")
	require.NoError(t, err)
	assert.Equal(t, CmdRemember, kind)
	assert.Contains(t, reply, "Usage: /remember")
	assert.Empty(t, store.remembered)
}

func TestInterpreterPinBadIDDoesNotMutate(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/pin abc")
	require.NoError(t, err)
	assert.Equal(t, CmdPin, kind)
	assert.Contains(t, reply, "Could not pin")
	assert.Empty(t, store.pins)

	reply, _, err = ci.Handle(context.Background(), 1, "/pin")
	require.NoError(t, err)
	assert.Contains(t, reply, "Usage: /pin <memory_id>")
	assert.Empty(t, store.pins)
}

func TestInterpreterPinUnpinRoundTrip(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/pin 12")
	require.NoError(t, err)
	assert.Equal(t, CmdPin, kind)
	assert.Contains(t, reply, "Pinned memory #12")
	assert.True(t, store.pins[12])

	// Pinning again is idempotent
	_, _, err = ci.Handle(context.Background(), 1, "/pin 12")
	require.NoError(t, err)
	assert.True(t, store.pins[12])

	reply, kind, err = ci.Handle(context.Background(), 1, "/unpin 12")
	require.NoError(t, err)
	assert.Equal(t, CmdUnpin, kind)
	assert.Contains(t, reply, "Unpinned memory #12")
	assert.False(t, store.pins[12])
}

func TestInterpreterPinMissingMemory(t *testing.T) {
	store := newFakeMemoryCommander()
	store.missing = true
	ci := NewCommandInterpreter(store)

	reply, _, err := ci.Handle(context.Background(), 1, "/pin 99")
	require.NoError(t, err)
	assert.Contains(t, reply, "Could not pin")
}

func TestInterpreterForget(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/forget 4")
	require.NoError(t, err)
	assert.Equal(t, CmdForget, kind)
	assert.Contains(t, reply, "Deleted memory #4")
	assert.Equal(t, []int64{4}, store.deleted)

	// Alias
	_, kind, err = ci.Handle(context.Background(), 1, "/delete_memory 5")
	require.NoError(t, err)
	assert.Equal(t, CmdForget, kind)
	assert.Equal(t, []int64{4, 5}, store.deleted)
}

func TestInterpreterListMemories(t *testing.T) {
	store := newFakeMemoryCommander()
	ci := NewCommandInterpreter(store)

	reply, kind, err := ci.Handle(context.Background(), 1, "/memories")
	require.NoError(t, err)
	assert.Equal(t, CmdListMemories, kind)
	assert.Contains(t, reply, "No memories saved yet.")

	store.memories = []domain.Memory{
		{ID: 1, Type: "fact", Content: "pinned one", Importance: 6, Pinned: true},
		{ID: 2, Type: "fact", Content: "loose one", Importance: 5},
	}
	reply, _, err = ci.Handle(context.Background(), 1, "/memories")
	require.NoError(t, err)
	assert.Contains(t, reply, "📌 #1 (fact, imp=6) — pinned one")
	assert.Contains(t, reply, "#2 (fact, imp=5) — loose one")
}

func TestInterpreterStripsBotMention(t *testing.T) {
	ci := NewCommandInterpreter(newFakeMemoryCommander())

	_, kind, err := ci.Handle(context.Background(), 1, "/new@CareerBuddyBot")
	require.NoError(t, err)
	assert.Equal(t, CmdNewSession, kind)
}
