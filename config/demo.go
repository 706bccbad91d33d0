package config

import (
	_ "embed"
	"encoding/json"
	"log"

	"frappeinsight/models"
)

//go:embed demo_schema.json
var demoSchemaJSON []byte

// SuggestedQuestions are the canned starter questions shown before a
// conversation begins.
var SuggestedQuestions = []string{
	"Show me sales trends for the last 6 months",
	"Top 5 customers by revenue",
	"What is the distribution of sales by territory?",
	"Compare sales between Electronics and Furniture",
	"List employees who joined this year",
}

// GreetingText is the bot message seeded into an empty chat history.
const GreetingText = "Hello! I'm your Frappe data assistant. \n\nI am currently in 'Demo Mode'. Connect a database to give me full access to your real Frappe data."

// DemoSchema returns the embedded demo DocTypes used when no database is
// connected. Each call returns a fresh copy so callers can replace it freely.
func DemoSchema() []models.DocType {
	var schema []models.DocType
	if err := json.Unmarshal(demoSchemaJSON, &schema); err != nil {
		log.Fatalf("Failed to parse embedded demo schema: %v", err)
	}
	return schema
}
