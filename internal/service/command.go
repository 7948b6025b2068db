package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
)

// CommandKind classifies what a chat message asked for.
type CommandKind int

const (
	CmdNone CommandKind = iota // plain text, goes to the model
	CmdNewSession
	CmdListMemories
	CmdRemember
	CmdPin
	CmdUnpin
	CmdForget
	CmdUnknown
)

const unknownCommandHelp = "Unknown command.\n\n" +
	"Commands:\n" +
	"- /remember <text>\n" +
	"- /memories\n" +
	"- /pin <id>\n" +
	"- /unpin <id>\n" +
	"- /forget <id>\n" +
	"- /new"

type memoryCommander interface {
	List(ctx context.Context, userID int64, limit int) ([]domain.Memory, error)
	Remember(ctx context.Context, userID int64, content string) (*domain.Memory, error)
	SetPinned(ctx context.Context, userID, memoryID int64, pinned bool) error
	Delete(ctx context.Context, userID, memoryID int64) error
}

// CommandInterpreter routes slash commands in chat messages. Memory commands
// are executed directly; a new-session command is reported back to the caller
// so it can reset conversation state it owns.
type CommandInterpreter struct {
	memories memoryCommander
}

func NewCommandInterpreter(memories memoryCommander) *CommandInterpreter {
	return &CommandInterpreter{memories: memories}
}

// Handle classifies text and executes it when it is a memory command. The
// returned kind is CmdNone for plain chat text, in which case reply is empty
// and the caller sends the text to the model instead.
func (ci *CommandInterpreter) Handle(ctx context.Context, userID int64, text string) (string, CommandKind, error) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "/") {
		return "", CmdNone, nil
	}

	parts := strings.Fields(t)
	cmd := strings.ToLower(parts[0])
	// Telegram appends the bot name on commands sent from menus.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/new", "/reset":
		return "", CmdNewSession, nil

	case "/memories", "/memory":
		reply, err := ci.listMemories(ctx, userID)
		return reply, CmdListMemories, err

	case "/remember":
		if len(parts) < 2 {
			return "Usage: /remember <something to remember>", CmdRemember, nil
		}
		content := strings.TrimSpace(strings.TrimPrefix(t, parts[0]))
		mem, err := ci.memories.Remember(ctx, userID, content)
		if err != nil {
			return "", CmdRemember, err
		}
		reply := fmt.Sprintf("Saved memory ✅\n\n“%s”\n\nTip: /pin %d to keep it always included.", mem.Content, mem.ID)
		return reply, CmdRemember, nil

	case "/pin":
		return ci.pinCommand(ctx, userID, parts, true)

	case "/unpin":
		return ci.pinCommand(ctx, userID, parts, false)

	case "/forget", "/delete_memory":
		if len(parts) < 2 {
			return "Usage: /forget <memory_id>", CmdForget, nil
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return "Could not delete that memory id.", CmdForget, nil
		}
		if err := ci.memories.Delete(ctx, userID, id); err != nil {
			if errors.Is(err, domain.ErrMemoryNotFound) {
				return "Could not delete that memory id.", CmdForget, nil
			}
			return "", CmdForget, err
		}
		return fmt.Sprintf("Deleted memory #%d", id), CmdForget, nil
	}

	return unknownCommandHelp, CmdUnknown, nil
}

func (ci *CommandInterpreter) pinCommand(ctx context.Context, userID int64, parts []string, pinned bool) (string, CommandKind, error) {
	kind := CmdPin
	verb := "pin"
	if !pinned {
		kind = CmdUnpin
		verb = "unpin"
	}

	if len(parts) < 2 {
		return fmt.Sprintf("Usage: /%s <memory_id>", verb), kind, nil
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return fmt.Sprintf("Could not %s that memory id.", verb), kind, nil
	}

	if err := ci.memories.SetPinned(ctx, userID, id, pinned); err != nil {
		if errors.Is(err, domain.ErrMemoryNotFound) {
			return fmt.Sprintf("Could not %s that memory id.", verb), kind, nil
		}
		return "", kind, err
	}

	if pinned {
		return fmt.Sprintf("Pinned memory #%d 📌", id), kind, nil
	}
	return fmt.Sprintf("Unpinned memory #%d", id), kind, nil
}

func (ci *CommandInterpreter) listMemories(ctx context.Context, userID int64) (string, error) {
	mems, err := ci.memories.List(ctx, userID, config.PinnedMemoryLimit)
	if err != nil {
		return "", err
	}
	if len(mems) == 0 {
		return "No memories saved yet.\nUse: /remember <text>", nil
	}

	lines := []string{"Saved memories (use /pin <id>, /unpin <id>, /forget <id>):"}
	for _, m := range mems {
		pin := " "
		if m.Pinned {
			pin = "📌"
		}
		lines = append(lines, fmt.Sprintf("%s #%d (%s, imp=%d) — %s", pin, m.ID, m.Type, m.Importance, m.Content))
	}
	return strings.Join(lines, "\n"), nil
}
