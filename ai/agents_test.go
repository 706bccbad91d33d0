package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frappeinsight/cache"
	"frappeinsight/models"
)

// newModelServer fakes the completion endpoint, answering every request with
// the given content string.
func newModelServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"output": map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": content}},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAI(t *testing.T, content string) *AIService {
	t.Helper()
	srv := newModelServer(t, content)
	svc, err := New("test-key", "test-model", srv.URL, cache.New())
	require.NoError(t, err)
	svc.minRequestInterval = 0
	return svc
}

func TestSelectDocTypesParsesArray(t *testing.T) {
	svc := newTestAI(t, `["Sales Invoice", "Customer"]`)
	names, err := svc.SelectDocTypes(context.Background(), "top customers", []string{"Sales Invoice", "Customer", "Item"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales Invoice", "Customer"}, names)
}

func TestSelectDocTypesStripsFences(t *testing.T) {
	svc := newTestAI(t, "```json\n[\"Customer\"]\n```")
	names, err := svc.SelectDocTypes(context.Background(), "customers", []string{"Customer"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer"}, names)
}

func TestSelectDocTypesMalformedIsEmptyNotError(t *testing.T) {
	svc := newTestAI(t, "I think Sales Invoice would be best")
	names, err := svc.SelectDocTypes(context.Background(), "sales", []string{"Sales Invoice"}, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSelectDocTypesClampsToThree(t *testing.T) {
	svc := newTestAI(t, `["A","B","C","D","E"]`)
	names, err := svc.SelectDocTypes(context.Background(), "everything", []string{"A", "B", "C", "D", "E"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestParseQueryConfigNormalizesMissingFilters(t *testing.T) {
	cfg, err := parseQueryConfig(`{"doctype":"Sales Invoice","fields":["grand_total"],"limit":50}`)
	require.NoError(t, err)
	require.NotNil(t, cfg.Filters)
	assert.Empty(t, cfg.Filters)
	assert.Equal(t, 50, cfg.Limit)
}

func TestParseQueryConfigKeepsFilters(t *testing.T) {
	cfg, err := parseQueryConfig(`{"doctype":"Sales Invoice","fields":["grand_total"],"filters":{"status":"Paid"}}`)
	require.NoError(t, err)
	assert.Equal(t, "Paid", cfg.Filters["status"])
}

func TestParseQueryConfigFailures(t *testing.T) {
	cases := map[string]string{
		"not json":      "the query should select grand_total",
		"no doctype":    `{"fields":["grand_total"]}`,
		"empty fields":  `{"doctype":"Sales Invoice","fields":[]}`,
		"absent fields": `{"doctype":"Sales Invoice"}`,
	}
	for name, response := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseQueryConfig(response)
			assert.ErrorIs(t, err, ErrSynthesis)
		})
	}
}

func TestParseInsightFlattensChart(t *testing.T) {
	response := `{
		"answer": "January sales were strong.",
		"visualization": {
			"type": "bar",
			"title": "Monthly Sales",
			"xAxisKey": "month",
			"seriesKeys": ["sales"],
			"data": [
				{"category": "Jan", "values": [{"key": "sales", "value": 100}]}
			]
		},
		"suggestedQuestions": ["q1", "q2", "q3"]
	}`

	insight, err := parseInsight(response)
	require.NoError(t, err)
	assert.Equal(t, "January sales were strong.", insight.Answer)
	assert.Equal(t, []string{"q1", "q2", "q3"}, insight.SuggestedQuestions)

	require.NotNil(t, insight.Visualization)
	require.Len(t, insight.Visualization.Data, 1)
	row := insight.Visualization.Data[0]
	// Exact flattening: xAxisKey -> category plus one entry per value pair,
	// nothing else.
	assert.Equal(t, map[string]interface{}{"month": "Jan", "sales": float64(100)}, row)
}

func TestParseInsightNoZeroFillForMissingSeries(t *testing.T) {
	response := `{
		"answer": "ok",
		"visualization": {
			"type": "line",
			"title": "Sales vs Returns",
			"xAxisKey": "month",
			"seriesKeys": ["sales", "returns"],
			"data": [
				{"category": "Jan", "values": [{"key": "sales", "value": 100}]},
				{"category": "Feb", "values": [{"key": "sales", "value": 80}, {"key": "returns", "value": 5}]}
			]
		}
	}`

	insight, err := parseInsight(response)
	require.NoError(t, err)
	rows := insight.Visualization.Data
	require.Len(t, rows, 2)
	_, hasReturns := rows[0]["returns"]
	assert.False(t, hasReturns, "missing series keys stay absent, not zero-filled")
	assert.Equal(t, float64(5), rows[1]["returns"])
}

func TestParseInsightPassesThroughUndeclaredSeriesKeys(t *testing.T) {
	response := `{
		"answer": "ok",
		"visualization": {
			"type": "bar",
			"title": "t",
			"xAxisKey": "month",
			"seriesKeys": ["sales"],
			"data": [
				{"category": "Jan", "values": [{"key": "sales", "value": 1}, {"key": "bonus", "value": 2}]}
			]
		}
	}`

	insight, err := parseInsight(response)
	require.NoError(t, err)
	assert.Equal(t, float64(2), insight.Visualization.Data[0]["bonus"])
}

func TestParseInsightWithoutVisualization(t *testing.T) {
	insight, err := parseInsight(`{"answer": "Just text."}`)
	require.NoError(t, err)
	assert.Nil(t, insight.Visualization)
	assert.NotNil(t, insight.SuggestedQuestions)
	assert.Empty(t, insight.SuggestedQuestions)
}

func TestParseInsightFailures(t *testing.T) {
	for name, response := range map[string]string{
		"empty":    "",
		"not json": "Sales look great!",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseInsight(response)
			assert.ErrorIs(t, err, ErrInsight)
		})
	}
}

func TestGenerateInsightGroundedEndToEnd(t *testing.T) {
	svc := newTestAI(t, `{"answer": "Based on the rows, Acme leads."}`)
	rows := []map[string]interface{}{{"customer_name": "Acme", "grand_total": 100}}
	schemas := []models.DocType{{Name: "Sales Invoice"}}

	insight, err := svc.GenerateInsight(context.Background(), "top customer", schemas, rows, "")
	require.NoError(t, err)
	assert.Equal(t, "Based on the rows, Acme leads.", insight.Answer)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
	assert.Equal(t, "[]", stripFences("```\n[]\n```"))
}
