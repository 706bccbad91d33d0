package service

import (
	"fmt"
	"strings"

	"frappeinsight/models"
)

// shortTermWindow bounds the conversation context to the last 6 messages
// (3 exchanges) to keep prompts small.
const shortTermWindow = 6

// BuildPromptContext assembles long-term memory facts and recent
// conversation turns into the context block shared by all reasoning prompts.
// Memory facts come first in stored order, then the last messages in
// chronological order tagged by speaker. Facts and messages are never
// truncated; only the turn count is bounded. Pure and deterministic.
func BuildPromptContext(history []models.Message, memory []string) string {
	var b strings.Builder

	if len(memory) > 0 {
		b.WriteString("\nLONG TERM MEMORY (User Facts & Rules):\n")
		for _, fact := range memory {
			b.WriteString("- ")
			b.WriteString(fact)
			b.WriteString("\n")
		}
	}

	if len(history) > 0 {
		b.WriteString("\nSHORT TERM MEMORY (Recent Conversation):\n")
		start := 0
		if len(history) > shortTermWindow {
			start = len(history) - shortTermWindow
		}
		for _, m := range history[start:] {
			role := "Assistant"
			if m.Sender == models.SenderUser {
				role = "User"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", role, m.Text))
		}
	}

	return b.String()
}
