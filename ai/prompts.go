package ai

import (
	"fmt"
	"strings"

	"frappeinsight/models"
)

const assistantSystemPrompt = "You are a helpful, professional ERP assistant. Always respond in the language of the user's query."

// formatSchemas renders DocType schemas as compact "fieldname (Fieldtype)"
// lists for prompt inclusion.
func formatSchemas(schemas []models.DocType) string {
	var b strings.Builder
	for i, dt := range schemas {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("DocType: %s\nFields: ", dt.Name))
		parts := make([]string, 0, len(dt.Fields))
		for _, f := range dt.Fields {
			parts = append(parts, fmt.Sprintf("%s (%s)", f.Fieldname, f.Fieldtype))
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}

// BuildDocTypeSelectionPrompt asks the model to pick the 1-3 DocTypes most
// relevant to the user's question.
func BuildDocTypeSelectionPrompt(userQuery string, allDocTypes []string, promptContext string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("User Query: %q\n\n", userQuery))
	if promptContext != "" {
		b.WriteString(promptContext)
		b.WriteString("\n")
	}
	b.WriteString("Available DocTypes:\n")
	b.WriteString(strings.Join(allDocTypes, ", "))
	b.WriteString("\n\n")
	b.WriteString("Based on the User Query and the Context (Memory/History), identify the top 1-3 DocTypes from the list above that are most likely to contain the data needed.\n")
	b.WriteString("If the user refers to previous context (e.g. \"Show me ITS details\"), use the history to infer the DocType.\n\n")
	b.WriteString("Return ONLY a JSON array of strings. Example: [\"Sales Invoice\", \"Customer\"]\n")
	b.WriteString("If none are relevant, return [].")
	return b.String()
}

// BuildQueryConfigPrompt asks the model for a frappe.client.get_list query
// configuration against the given schemas.
func BuildQueryConfigPrompt(userQuery string, schemas []models.DocType, promptContext string) string {
	var b strings.Builder
	b.WriteString("Context: You are a database expert for Frappe ERP.\n")
	b.WriteString(fmt.Sprintf("User Query: %q\n\n", userQuery))
	if promptContext != "" {
		b.WriteString(promptContext)
		b.WriteString("\n")
	}
	b.WriteString("Schemas:\n")
	b.WriteString(formatSchemas(schemas))
	b.WriteString("\n\n")
	b.WriteString("Generate a JSON configuration to query the Frappe API (frappe.client.get_list).\n")
	b.WriteString("1. Select the most relevant 'doctype'.\n")
	b.WriteString("2. Select specific 'fields' needed to answer the question.\n")
	b.WriteString("3. Create 'filters' if the user specifies conditions (e.g., specific date, status). Use Long Term Memory for default preferences (e.g. if memory says \"Fiscal Year 2023\", filter dates accordingly).\n")
	b.WriteString("4. Set 'limit' to a reasonable amount (max 100 for lists, 1000 for charts).\n\n")
	b.WriteString("IMPORTANT: Return ONLY a valid JSON object with keys \"doctype\" (string), \"fields\" (array of strings), \"filters\" (object) and optionally \"limit\" (number). No markdown, no explanation.")
	return b.String()
}

const insightOutputSpec = `Return ONLY a valid JSON object with this shape (no markdown, no explanation):
{
  "answer": "<natural language answer, required>",
  "visualization": {
    "type": "bar" | "line" | "pie" | "area",
    "title": "<chart title>",
    "xAxisKey": "<key for the x axis>",
    "seriesKeys": ["<series key>", ...],
    "data": [
      { "category": "<x-axis value>", "values": [ { "key": "<must match seriesKeys>", "value": <number> } ] }
    ]
  },
  "suggestedQuestions": ["<3 short, contextually relevant follow-up questions>"]
}
Omit "visualization" entirely if a chart does not make sense for the question.`

// BuildInsightPrompt asks the model to analyze retrieved rows (grounded mode,
// rows non-nil) or to fabricate a plausible dataset (demo mode, rows nil) and
// answer in the structured insight shape. rowsJSON is the size-capped JSON
// serialization of the retrieved rows.
func BuildInsightPrompt(userQuery string, schemas []models.DocType, rowsJSON string, grounded bool, promptContext string) string {
	var b strings.Builder
	if grounded {
		b.WriteString("You are a data analyst.\n")
	} else {
		b.WriteString("You are a data analyst for a Demo Mode ERP.\n")
	}
	b.WriteString(fmt.Sprintf("User Query: %q\n\n", userQuery))
	if promptContext != "" {
		b.WriteString(promptContext)
		b.WriteString("\n")
	}
	b.WriteString("DocType Schema Used:\n")
	b.WriteString(formatSchemas(schemas))
	b.WriteString("\n\n")
	if grounded {
		b.WriteString("ACTUAL DATABASE RESULTS (JSON):\n")
		b.WriteString(rowsJSON)
		b.WriteString("\n\n")
		b.WriteString("Analyze the actual data above to answer the user's question.\n")
		b.WriteString("Use the Long Term Memory to tailor the tone or focus of the answer.\n")
		b.WriteString("Create a visualization if appropriate based on the data provided.\n")
		b.WriteString("Also provide 3 follow-up questions to help the user explore this data further.\n\n")
	} else {
		b.WriteString("The user wants to see how the system works. GENERATE REALISTIC MOCK DATA to answer the question.\n")
		b.WriteString("Synthesize data that looks authentic for a business context and adheres to any rules in Long Term Memory.\n")
		b.WriteString("Also provide 3 follow-up questions.\n\n")
	}
	b.WriteString(insightOutputSpec)
	return b.String()
}
