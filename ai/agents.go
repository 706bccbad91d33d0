package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"frappeinsight/models"
)

const (
	// maxSelectedDocTypes caps how many DocTypes the selector may return.
	maxSelectedDocTypes = 3

	// maxRowsJSONChars bounds the serialized row set embedded in the insight
	// prompt. Truncation is silent; oversized result sets lose their tail.
	maxRowsJSONChars = 50000
)

// SelectDocTypes asks the model which DocTypes are relevant to the question.
// Malformed model output yields an empty result, never an error; callers must
// handle zero relevant DocTypes themselves.
func (a *AIService) SelectDocTypes(ctx context.Context, userQuery string, allDocTypes []string, promptContext string) ([]string, error) {
	prompt := BuildDocTypeSelectionPrompt(userQuery, allDocTypes, promptContext)

	cacheKey := fmt.Sprintf("select_doctypes:%s", prompt)
	if cached, found := a.cache.Get(cacheKey); found {
		return cached.([]string), nil
	}

	response, err := a.callAPI(ctx, []chatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("failed to select doctypes: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(stripFences(response)), &names); err != nil {
		log.Printf("[AI] Unparseable doctype selection %q, treating as no match", response)
		return []string{}, nil
	}
	if len(names) > maxSelectedDocTypes {
		names = names[:maxSelectedDocTypes]
	}

	a.cache.SetDefault(cacheKey, names)
	return names, nil
}

// GenerateQueryConfig asks the model for a query descriptor against the
// loaded schemas. The returned config always has a non-nil filter map.
func (a *AIService) GenerateQueryConfig(ctx context.Context, userQuery string, schemas []models.DocType, promptContext string) (*models.QueryConfig, error) {
	prompt := BuildQueryConfigPrompt(userQuery, schemas, promptContext)

	response, err := a.callAPI(ctx, []chatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("failed to generate query config: %w", err)
	}

	return parseQueryConfig(response)
}

func parseQueryConfig(response string) (*models.QueryConfig, error) {
	var cfg models.QueryConfig
	if err := json.Unmarshal([]byte(stripFences(response)), &cfg); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrSynthesis, err)
	}
	if cfg.Doctype == "" {
		return nil, fmt.Errorf("%w: missing doctype", ErrSynthesis)
	}
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("%w: empty field list", ErrSynthesis)
	}
	if cfg.Filters == nil {
		cfg.Filters = map[string]interface{}{}
	}
	return &cfg, nil
}

// rawInsight is the nested shape the model is asked to produce. Chart data
// arrives as category/values pairs and is flattened before leaving this
// package.
type rawInsight struct {
	Answer             string    `json:"answer"`
	Visualization      *rawChart `json:"visualization"`
	SuggestedQuestions []string  `json:"suggestedQuestions"`
}

type rawChart struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	XAxisKey   string         `json:"xAxisKey"`
	SeriesKeys []string       `json:"seriesKeys"`
	Data       []rawChartItem `json:"data"`
}

type rawChartItem struct {
	Category interface{}     `json:"category"`
	Values   []rawChartValue `json:"values"`
}

type rawChartValue struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// GenerateInsight produces the final answer for a turn. With rows non-nil it
// analyzes the literal data (grounded mode); with rows nil it fabricates a
// plausible dataset for the schema (demo mode). An empty or unparseable
// response fails with ErrInsight.
func (a *AIService) GenerateInsight(ctx context.Context, userQuery string, schemas []models.DocType, rows []map[string]interface{}, promptContext string) (*models.InsightResponse, error) {
	grounded := rows != nil
	rowsJSON := ""
	if grounded {
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize rows: %w", err)
		}
		rowsJSON = string(data)
		if len(rowsJSON) > maxRowsJSONChars {
			rowsJSON = rowsJSON[:maxRowsJSONChars]
		}
	}

	prompt := BuildInsightPrompt(userQuery, schemas, rowsJSON, grounded, promptContext)
	messages := []chatMessage{
		{Role: "system", Content: assistantSystemPrompt},
		{Role: "user", Content: prompt},
	}

	response, err := a.callAPI(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insight: %w", err)
	}

	return parseInsight(response)
}

func parseInsight(response string) (*models.InsightResponse, error) {
	cleaned := stripFences(response)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInsight)
	}

	var raw rawInsight
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInsight, err)
	}

	result := &models.InsightResponse{
		Answer:             raw.Answer,
		SuggestedQuestions: raw.SuggestedQuestions,
	}
	if result.SuggestedQuestions == nil {
		result.SuggestedQuestions = []string{}
	}
	if raw.Visualization != nil {
		result.Visualization = flattenChart(raw.Visualization)
	}
	return result, nil
}

// flattenChart converts the nested category/values chart data into flat rows:
// each item becomes one row keyed by xAxisKey plus its value pairs. Keys
// absent from an item's values stay absent from the row (no zero-fill), and
// keys not declared in seriesKeys pass through unchanged.
func flattenChart(viz *rawChart) *models.Visualization {
	data := make([]map[string]interface{}, 0, len(viz.Data))
	for _, item := range viz.Data {
		row := map[string]interface{}{
			viz.XAxisKey: item.Category,
		}
		for _, v := range item.Values {
			row[v.Key] = v.Value
		}
		data = append(data, row)
	}

	return &models.Visualization{
		Type:       models.ChartType(viz.Type),
		Title:      viz.Title,
		XAxisKey:   viz.XAxisKey,
		SeriesKeys: viz.SeriesKeys,
		Data:       data,
	}
}
