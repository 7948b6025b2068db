package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortUnchanged(t *testing.T) {
	parts := SplitMessage("hello", 100)
	require.Len(t, parts, 1)
	assert.Equal(t, "hello", parts[0])
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := strings.Repeat("x", 80) + "\n" + strings.Repeat("y", 80)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("x", 80)+"\n", parts[0])
	assert.Equal(t, strings.Repeat("y", 80), parts[1])
}

func TestSplitMessageHardSplitWithoutNewlines(t *testing.T) {
	text := strings.Repeat("a", 250)
	parts := SplitMessage(text, 100)

	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 100)
	assert.Len(t, parts[1], 100)
	assert.Len(t, parts[2], 50)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestStripReasoningRemovesThinkBlocks(t *testing.T) {
	in := "<think>step by step...</think>The answer is 42."
	assert.Equal(t, "The answer is 42.", StripReasoning(in))
}

func TestStripReasoningUnclosedBlock(t *testing.T) {
	in := "prefix <think>still thinking"
	assert.Equal(t, "prefix", StripReasoning(in))
}

func TestStripReasoningNoBlocks(t *testing.T) {
	assert.Equal(t, "plain reply", StripReasoning("plain reply"))
}
