package models

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
	ChartArea ChartType = "area"
)

// Visualization is the flat, render-ready chart shape. Every row contains
// XAxisKey; a series key missing from a row is a missing data point, not an
// error.
type Visualization struct {
	Type        ChartType                `json:"type"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	XAxisKey    string                   `json:"xAxisKey"`
	SeriesKeys  []string                 `json:"seriesKeys"`
	Data        []map[string]interface{} `json:"data"`
}

// Message is one entry in the conversation log. A bot message is in exactly
// one of three display states: thinking placeholder, error, or normal answer.
type Message struct {
	ID                 string         `json:"id"`
	Sender             Sender         `json:"sender"`
	Text               string         `json:"text"`
	Timestamp          time.Time      `json:"timestamp"`
	Visualization      *Visualization `json:"visualization,omitempty"`
	IsThinking         bool           `json:"isThinking,omitempty"`
	StatusMessage      string         `json:"statusMessage,omitempty"`
	SuggestedQuestions []string       `json:"suggestedQuestions,omitempty"`
	IsError            bool           `json:"isError,omitempty"`
	OriginalQuery      string         `json:"originalQuery,omitempty"`
}

type DocField struct {
	Fieldname string `json:"fieldname"`
	Label     string `json:"label"`
	Fieldtype string `json:"fieldtype"`
	Options   string `json:"options,omitempty"`
}

type DocType struct {
	Name   string     `json:"name"`
	Fields []DocField `json:"fields"`
}

// FrappeConfig holds the credentials of a connected session. A nil config
// means demo mode.
type FrappeConfig struct {
	URL       string `json:"url"`
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

// QueryConfig is the structured query descriptor the AI produces for
// frappe.client.get_list. Filters is never nil after synthesis.
type QueryConfig struct {
	Doctype string                 `json:"doctype"`
	Fields  []string               `json:"fields"`
	Filters map[string]interface{} `json:"filters"`
	OrderBy string                 `json:"order_by,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
}

// InsightResponse is the normalized output of the insight generator.
type InsightResponse struct {
	Answer             string         `json:"answer"`
	Visualization      *Visualization `json:"visualization,omitempty"`
	SuggestedQuestions []string       `json:"suggestedQuestions"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Message Message `json:"message"`
}

type RetryRequest struct {
	MessageID string `json:"message_id" binding:"required"`
}

type ConnectRequest struct {
	URL       string `json:"url" binding:"required"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

type ConnectResponse struct {
	Connected    bool   `json:"connected"`
	DocTypeCount int    `json:"doctype_count"`
	Warning      string `json:"warning,omitempty"`
}

type MemoryRequest struct {
	Fact string `json:"fact" binding:"required"`
}
