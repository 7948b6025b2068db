package service

import (
	"context"
	"errors"
	"testing"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshot struct {
	text string
}

func (f *fakeSnapshot) Render(ctx context.Context, userID int64) string { return f.text }

type fakeMemories struct {
	listed    []domain.Memory
	relevant  []domain.Memory
	listErr   error
	searchErr error
	lastQuery string
}

func (f *fakeMemories) List(ctx context.Context, userID int64, limit int) ([]domain.Memory, error) {
	return f.listed, f.listErr
}

func (f *fakeMemories) Search(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error) {
	f.lastQuery = query
	return f.relevant, f.searchErr
}

type fakeAttachments struct {
	items []domain.Attachment
}

func (f *fakeAttachments) List(chatID int64) []domain.Attachment { return f.items }

type fakeHistory struct {
	messages []domain.Message
	err      error
	calls    int
}

func (f *fakeHistory) ListRecentMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error) {
	f.calls++
	return f.messages, f.err
}

func newTestBuilder(snap string, mems *fakeMemories, atts *fakeAttachments, hist *fakeHistory) *ContextBuilder {
	if mems == nil {
		mems = &fakeMemories{}
	}
	if atts == nil {
		atts = &fakeAttachments{}
	}
	if hist == nil {
		hist = &fakeHistory{}
	}
	return NewContextBuilder(&fakeSnapshot{text: snap}, mems, atts, hist)
}

func TestBuildSectionOrder(t *testing.T) {
	mems := &fakeMemories{
		listed: []domain.Memory{{ID: 1, Type: "fact", Content: "prefers remote work", Pinned: true}},
	}
	atts := &fakeAttachments{
		items: []domain.Attachment{{Name: "cv.txt", Kind: domain.KindText, Text: "experienced gopher"}},
	}
	hist := &fakeHistory{
		messages: []domain.Message{
			{Role: domain.RoleUser, Content: "earlier question"},
			{Role: domain.RoleAssistant, Content: "earlier answer"},
		},
	}

	convID := int64(7)
	b := newTestBuilder("app snapshot", mems, atts, hist)
	msgs, err := b.Build(context.Background(), 1, 100, &convID, "what jobs did I apply to?")
	require.NoError(t, err)
	require.Len(t, msgs, 7)

	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "CareerBuddy AI")
	assert.Equal(t, "app snapshot", msgs[1].Content)
	assert.Contains(t, msgs[2].Content, "User memory context:")
	assert.Contains(t, msgs[3].Content, "cv.txt")
	assert.Equal(t, "earlier question", msgs[4].Content)
	assert.Equal(t, "earlier answer", msgs[5].Content)
	assert.Equal(t, domain.RoleUser, msgs[6].Role)
	assert.Equal(t, "what jobs did I apply to?", msgs[6].Content)
}

func TestBuildOmitsEmptySections(t *testing.T) {
	b := newTestBuilder("", nil, nil, nil)
	msgs, err := b.Build(context.Background(), 1, 100, nil, "hello")
	require.NoError(t, err)

	// Only the system prompt and the current message remain.
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestBuildSkipsHistoryWithoutConversation(t *testing.T) {
	hist := &fakeHistory{messages: []domain.Message{{Role: domain.RoleUser, Content: "old"}}}
	b := newTestBuilder("", nil, nil, hist)

	msgs, err := b.Build(context.Background(), 1, 100, nil, "fresh start")
	require.NoError(t, err)
	assert.Equal(t, 0, hist.calls)
	require.Len(t, msgs, 2)
}

func TestBuildFiltersNonChatRoles(t *testing.T) {
	hist := &fakeHistory{
		messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "internal"},
			{Role: domain.RoleUser, Content: "kept"},
			{Role: "tool", Content: "dropped"},
		},
	}
	convID := int64(3)
	b := newTestBuilder("", nil, nil, hist)

	msgs, err := b.Build(context.Background(), 1, 100, &convID, "hi")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "kept", msgs[1].Content)
}

func TestBuildPinnedNotDuplicatedInRelevant(t *testing.T) {
	pinned := domain.Memory{ID: 5, Type: "fact", Content: "lives in Berlin", Pinned: true}
	mems := &fakeMemories{
		listed:   []domain.Memory{pinned},
		relevant: []domain.Memory{pinned, {ID: 9, Type: "fact", Content: "knows Go"}},
	}
	b := newTestBuilder("", mems, nil, nil)

	msgs, err := b.Build(context.Background(), 1, 100, nil, "berlin jobs")
	require.NoError(t, err)

	memCtx := msgs[1].Content
	assert.Contains(t, memCtx, "Pinned:")
	assert.Contains(t, memCtx, "Relevant:")
	assert.Equal(t, 1, countOccurrences(memCtx, "lives in Berlin"))
	assert.Contains(t, memCtx, "[#9] (fact) knows Go")
}

func TestBuildSkipsSearchForBlankMessage(t *testing.T) {
	mems := &fakeMemories{lastQuery: "unset"}
	b := newTestBuilder("", mems, nil, nil)

	_, err := b.Build(context.Background(), 1, 100, nil, "   ")
	require.NoError(t, err)
	assert.Equal(t, "unset", mems.lastQuery)
}

func TestBuildPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")

	mems := &fakeMemories{listErr: boom}
	b := newTestBuilder("", mems, nil, nil)
	_, err := b.Build(context.Background(), 1, 100, nil, "hi")
	assert.ErrorIs(t, err, boom)

	convID := int64(1)
	hist := &fakeHistory{err: boom}
	b = newTestBuilder("", nil, nil, hist)
	_, err = b.Build(context.Background(), 1, 100, &convID, "hi")
	assert.ErrorIs(t, err, boom)
}

func TestBuildAttachmentWithoutText(t *testing.T) {
	atts := &fakeAttachments{
		items: []domain.Attachment{{Name: "scan.pdf", Kind: domain.KindPDF, Text: ""}},
	}
	b := newTestBuilder("", nil, atts, nil)

	msgs, err := b.Build(context.Background(), 1, 100, nil, "hi")
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, "--- scan.pdf (PDF) ---")
	assert.Contains(t, msgs[1].Content, "[No extracted text available]")
}

func TestBuildKeepsOnlyNewestAttachments(t *testing.T) {
	atts := &fakeAttachments{
		items: []domain.Attachment{
			{Name: "one.txt", Kind: domain.KindText, Text: "1"},
			{Name: "two.txt", Kind: domain.KindText, Text: "2"},
			{Name: "three.txt", Kind: domain.KindText, Text: "3"},
			{Name: "four.txt", Kind: domain.KindText, Text: "4"},
		},
	}
	b := newTestBuilder("", nil, atts, nil)

	msgs, err := b.Build(context.Background(), 1, 100, nil, "hi")
	require.NoError(t, err)
	attCtx := msgs[1].Content
	assert.NotContains(t, attCtx, "one.txt")
	assert.Contains(t, attCtx, "two.txt")
	assert.Contains(t, attCtx, "four.txt")
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
