package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frappeinsight/models"
)

func msg(sender models.Sender, text string) models.Message {
	return models.Message{ID: text, Sender: sender, Text: text, Timestamp: time.Now()}
}

func TestBuildPromptContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildPromptContext(nil, nil))
	assert.Equal(t, "", BuildPromptContext([]models.Message{}, []string{}))
}

func TestBuildPromptContextMemoryFirstThenHistory(t *testing.T) {
	history := []models.Message{
		msg(models.SenderUser, "show sales"),
		msg(models.SenderBot, "here are your sales"),
	}
	memory := []string{"Fiscal Year 2023", "Currency is EUR"}

	out := BuildPromptContext(history, memory)

	memIdx := strings.Index(out, "LONG TERM MEMORY")
	histIdx := strings.Index(out, "SHORT TERM MEMORY")
	assert.True(t, memIdx >= 0 && histIdx > memIdx, "memory block must precede history block")

	// Facts keep stored order.
	assert.Less(t, strings.Index(out, "- Fiscal Year 2023"), strings.Index(out, "- Currency is EUR"))

	// Turns are tagged by speaker in chronological order.
	assert.Less(t, strings.Index(out, "User: show sales"), strings.Index(out, "Assistant: here are your sales"))
}

func TestBuildPromptContextBoundsHistoryToSixMessages(t *testing.T) {
	var history []models.Message
	for i := 0; i < 10; i++ {
		history = append(history, msg(models.SenderUser, fmt.Sprintf("message %d", i)))
	}

	out := BuildPromptContext(history, nil)

	assert.NotContains(t, out, "message 3")
	for i := 4; i < 10; i++ {
		assert.Contains(t, out, fmt.Sprintf("message %d", i))
	}
}

func TestBuildPromptContextDoesNotTruncateFacts(t *testing.T) {
	fact := strings.Repeat("very long fact ", 500)
	out := BuildPromptContext(nil, []string{fact})
	assert.Contains(t, out, fact)
}

func TestBuildPromptContextDeterministic(t *testing.T) {
	history := []models.Message{msg(models.SenderUser, "hello")}
	memory := []string{"a", "b"}
	assert.Equal(t, BuildPromptContext(history, memory), BuildPromptContext(history, memory))
}
