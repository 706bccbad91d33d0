package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frappeinsight/models"
)

func TestChatToCSV(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	messages := []models.Message{
		{ID: "1", Sender: models.SenderUser, Text: "Hi", Timestamp: t1},
		{ID: "2", Sender: models.SenderBot, Text: "Hello", Timestamp: t2},
	}

	lines := strings.Split(ChatToCSV(messages), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp,Sender,Message,Chart Type,Chart Title", lines[0])

	userCols := strings.Split(lines[1], ",")
	assert.Equal(t, "user", userCols[1])
	assert.Equal(t, `"Hi"`, userCols[2])
	assert.Equal(t, "", userCols[3])
	assert.Equal(t, "", userCols[4])

	botCols := strings.Split(lines[2], ",")
	assert.Equal(t, "bot", botCols[1])
	assert.Equal(t, `"Hello"`, botCols[2])
}

func TestChatToCSVChartColumnsAndQuoteEscaping(t *testing.T) {
	messages := []models.Message{
		{
			ID: "1", Sender: models.SenderBot, Text: `He said "hi"`, Timestamp: time.Now(),
			Visualization: &models.Visualization{Type: models.ChartBar, Title: "Revenue by Month"},
		},
	}

	lines := strings.Split(ChatToCSV(messages), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"He said ""hi"""`)
	assert.Contains(t, lines[1], `bar,"Revenue by Month"`)
}

func TestChatToJSONRoundTrips(t *testing.T) {
	messages := []models.Message{
		{ID: "1", Sender: models.SenderUser, Text: "Hi", Timestamp: time.Now(), OriginalQuery: "Hi"},
	}
	data, err := ChatToJSON(messages)
	require.NoError(t, err)

	var decoded struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Messages, 1)
	assert.Equal(t, "Hi", decoded.Messages[0].Text)
}

func TestChartToCSVXAxisFirstAndUnionOfKeys(t *testing.T) {
	viz := &models.Visualization{
		Type:       models.ChartBar,
		Title:      "Sales",
		XAxisKey:   "month",
		SeriesKeys: []string{"sales", "returns"},
		Data: []map[string]interface{}{
			{"month": "Jan", "sales": float64(100)},
			{"month": "Feb", "sales": float64(80), "returns": float64(5)},
		},
	}

	lines := strings.Split(ChartToCSV(viz), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], ",")
	assert.Equal(t, "month", header[0], "xAxisKey column comes first")
	assert.ElementsMatch(t, []string{"month", "sales", "returns"}, header)

	// Strings quoted, numbers bare, missing values empty.
	assert.Contains(t, lines[1], `"Jan"`)
	assert.Contains(t, lines[1], "100")
	cells := strings.Split(lines[1], ",")
	assert.Contains(t, cells, "")
}

func TestChartToCSVEmpty(t *testing.T) {
	assert.Equal(t, "", ChartToCSV(nil))
	assert.Equal(t, "", ChartToCSV(&models.Visualization{XAxisKey: "x"}))
}

func TestChartToJSONRawRows(t *testing.T) {
	viz := &models.Visualization{
		XAxisKey: "month",
		Data: []map[string]interface{}{
			{"month": "Jan", "sales": float64(100)},
		},
	}
	data, err := ChartToJSON(viz)
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Jan", rows[0]["month"])
}
