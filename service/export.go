package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"frappeinsight/models"
)

// csvQuote wraps a value in double quotes with "" escaping. The chat export
// always quotes free-text columns regardless of content.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ChatToCSV renders the chat log with the columns
// Timestamp,Sender,Message,Chart Type,Chart Title. Chart columns stay empty
// for messages without a visualization.
func ChatToCSV(messages []models.Message) string {
	var b strings.Builder
	b.WriteString("Timestamp,Sender,Message,Chart Type,Chart Title")
	for _, m := range messages {
		chartType := ""
		chartTitle := ""
		if m.Visualization != nil {
			chartType = string(m.Visualization.Type)
			chartTitle = csvQuote(m.Visualization.Title)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			m.Timestamp.Format(time.RFC3339),
			string(m.Sender),
			csvQuote(m.Text),
			chartType,
			chartTitle,
		}, ","))
	}
	return b.String()
}

type chatExport struct {
	Timestamp time.Time        `json:"timestamp"`
	Messages  []models.Message `json:"messages"`
}

// ChatToJSON renders the full message objects wrapped with an export
// timestamp.
func ChatToJSON(messages []models.Message) ([]byte, error) {
	return json.MarshalIndent(chatExport{
		Timestamp: time.Now(),
		Messages:  messages,
	}, "", "  ")
}

// ChartToCSV renders chart rows with one column per key present in any row,
// xAxisKey first. Strings are quoted, numbers stay bare, missing values
// produce empty cells.
func ChartToCSV(viz *models.Visualization) string {
	if viz == nil || len(viz.Data) == 0 {
		return ""
	}

	// Union of row keys in first-seen order, then xAxisKey moved to front.
	seen := map[string]bool{}
	keys := []string{}
	for _, row := range viz.Data {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	ordered := make([]string, 0, len(keys))
	if seen[viz.XAxisKey] {
		ordered = append(ordered, viz.XAxisKey)
	}
	for _, k := range sortedRowKeys(keys) {
		if k != viz.XAxisKey {
			ordered = append(ordered, k)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(ordered, ","))
	for _, row := range viz.Data {
		cells := make([]string, 0, len(ordered))
		for _, k := range ordered {
			cells = append(cells, formatCell(row[k]))
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(cells, ","))
	}
	return b.String()
}

// sortedRowKeys keeps column order deterministic across rows with differing
// key sets.
func sortedRowKeys(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return csvQuote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ChartToJSON renders the raw flat row array.
func ChartToJSON(viz *models.Visualization) ([]byte, error) {
	if viz == nil {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(viz.Data, "", "  ")
}
