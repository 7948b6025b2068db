package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
)

const systemPrompt = "You are CareerBuddy AI, a helpful career assistant.\n" +
	"Style rules:\n" +
	"- Be concise and practical.\n" +
	"- Ask only for missing info.\n" +
	"- Use user memory + app context when relevant.\n" +
	"- Do NOT invent facts from the CV; only use what the user provided.\n" +
	"- Do not use Markdown formatting.\n" +
	"- Write in plain text with normal paragraphs.\n\n" +
	"Attachment behavior:\n" +
	"- If attachments are present, you DO have access to their extracted text inside this chat.\n" +
	"- Never claim you cannot access the uploaded file if it was attached in this session.\n" +
	"- If attachment text is empty (e.g. scanned PDF), say you couldn't extract text and ask the user to paste it.\n\n" +
	"Cover letter behavior:\n" +
	"- If the user asks for a cover letter or CV summary, use attached CV/JD text first.\n" +
	"- If only CV is attached, ask for the job description.\n" +
	"- If only JD is attached, ask for the CV."

type snapshotRenderer interface {
	Render(ctx context.Context, userID int64) string
}

type memorySource interface {
	List(ctx context.Context, userID int64, limit int) ([]domain.Memory, error)
	Search(ctx context.Context, userID int64, query string, limit int) ([]domain.Memory, error)
}

type attachmentSource interface {
	List(chatID int64) []domain.Attachment
}

type historySource interface {
	ListRecentMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error)
}

// ContextBuilder assembles the model input for one chat turn. The section
// order is fixed: system prompt, app snapshot, memory context, attachments,
// recent history, then the current message. Empty sections are omitted
// entirely rather than sent as blank system turns.
type ContextBuilder struct {
	snapshot    snapshotRenderer
	memories    memorySource
	attachments attachmentSource
	history     historySource
}

func NewContextBuilder(snapshot snapshotRenderer, memories memorySource, attachments attachmentSource, history historySource) *ContextBuilder {
	return &ContextBuilder{
		snapshot:    snapshot,
		memories:    memories,
		attachments: attachments,
		history:     history,
	}
}

// Build is read-only: it never writes the current message to history. The
// caller persists the user message after a successful build so an aborted
// turn leaves no trace.
func (b *ContextBuilder) Build(ctx context.Context, userID, chatID int64, conversationID *int64, userText string) ([]ChatMessage, error) {
	msgs := []ChatMessage{{Role: domain.RoleSystem, Content: systemPrompt}}

	if appCtx := b.snapshot.Render(ctx, userID); appCtx != "" {
		msgs = append(msgs, ChatMessage{Role: domain.RoleSystem, Content: appCtx})
	}

	memCtx, err := b.memoryContext(ctx, userID, userText)
	if err != nil {
		return nil, err
	}
	if memCtx != "" {
		msgs = append(msgs, ChatMessage{Role: domain.RoleSystem, Content: memCtx})
	}

	if attCtx := b.attachmentsContext(chatID); attCtx != "" {
		msgs = append(msgs, ChatMessage{Role: domain.RoleSystem, Content: attCtx})
	}

	if conversationID != nil {
		history, err := b.history.ListRecentMessages(ctx, *conversationID, config.HistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		for _, m := range history {
			if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
				continue
			}
			msgs = append(msgs, ChatMessage{Role: m.Role, Content: m.Content})
		}
	}

	msgs = append(msgs, ChatMessage{Role: domain.RoleUser, Content: userText})
	return msgs, nil
}

// memoryContext renders pinned memories plus keyword-relevant ones, with
// pinned entries never repeated in the relevant block.
func (b *ContextBuilder) memoryContext(ctx context.Context, userID int64, userText string) (string, error) {
	listed, err := b.memories.List(ctx, userID, config.PinnedMemoryLimit)
	if err != nil {
		return "", fmt.Errorf("list memories: %w", err)
	}

	var relevant []domain.Memory
	if strings.TrimSpace(userText) != "" {
		relevant, err = b.memories.Search(ctx, userID, userText, config.RelevantMemoryLimit)
		if err != nil {
			return "", fmt.Errorf("search memories: %w", err)
		}
	}

	pinnedIDs := make(map[int64]bool)
	var pinnedLines []string
	for _, m := range listed {
		if m.Pinned {
			pinnedIDs[m.ID] = true
			pinnedLines = append(pinnedLines, fmt.Sprintf("- [#%d] (%s) %s", m.ID, m.Type, m.Content))
		}
	}

	var relLines []string
	for _, m := range relevant {
		if pinnedIDs[m.ID] {
			continue
		}
		relLines = append(relLines, fmt.Sprintf("- [#%d] (%s) %s", m.ID, m.Type, m.Content))
	}

	if len(pinnedLines) == 0 && len(relLines) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("User memory context:\n")
	if len(pinnedLines) > 0 {
		sb.WriteString("\nPinned:\n")
		sb.WriteString(strings.Join(pinnedLines, "\n"))
		sb.WriteString("\n")
	}
	if len(relLines) > 0 {
		sb.WriteString("\nRelevant:\n")
		sb.WriteString(strings.Join(relLines, "\n"))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// attachmentsContext injects the newest attachments as ground-truth text.
// Only the last few are kept to hold prompt size down.
func (b *ContextBuilder) attachmentsContext(chatID int64) string {
	attachments := b.attachments.List(chatID)
	if len(attachments) == 0 {
		return ""
	}
	if len(attachments) > config.MaxPromptAttachments {
		attachments = attachments[len(attachments)-config.MaxPromptAttachments:]
	}

	var sb strings.Builder
	sb.WriteString("Attached documents below are available to you as text. Use them directly as ground truth.")
	for _, a := range attachments {
		text := strings.TrimSpace(a.Text)
		if text == "" {
			text = "[No extracted text available]"
		}
		fmt.Fprintf(&sb, "\n\n--- %s (%s) ---\n%s", a.Name, a.Kind, text)
	}
	return sb.String()
}
