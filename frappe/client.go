package frappe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frappeinsight/models"
)

// Client is the data access gateway to a Frappe instance. All data access
// goes through the authenticated REST API; there is no direct database
// connection.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) authorize(req *http.Request, cfg *models.FrappeConfig) {
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s:%s", cfg.APIKey, cfg.APISecret))
	}
	req.Header.Set("Accept", "application/json")
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// upstreamMessage pulls a human-readable error out of a Frappe error payload,
// falling back to the raw body.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message   string `json:"message"`
		Exception string `json:"exception"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Exception != "" {
			return payload.Exception
		}
	}
	return strings.TrimSpace(string(body))
}

// ListDocTypes returns the names of all DocTypes the credentials can see.
func (c *Client) ListDocTypes(ctx context.Context, cfg *models.FrappeConfig) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/resource/DocType?limit_page_length=0&fields=%s",
		strings.TrimSuffix(cfg.URL, "/"), url.QueryEscape(`["name"]`))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	c.authorize(req, cfg)

	status, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrConnectivity, status, upstreamMessage(body))
	}

	var payload struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrConnectivity, err)
	}

	names := make([]string, 0, len(payload.Data))
	for _, d := range payload.Data {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

// FetchDocTypeSchema retrieves the field definitions of one DocType. Fails
// with ErrNotFound for unknown names; callers treat failures as skippable per
// table, not pipeline-fatal.
func (c *Client) FetchDocTypeSchema(ctx context.Context, cfg *models.FrappeConfig, name string) (*models.DocType, error) {
	endpoint := fmt.Sprintf("%s/api/resource/DocType/%s",
		strings.TrimSuffix(cfg.URL, "/"), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	c.authorize(req, cfg)

	status, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrConnectivity, status, upstreamMessage(body))
	}

	var payload struct {
		Data struct {
			Name   string            `json:"name"`
			Fields []models.DocField `json:"fields"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrConnectivity, err)
	}

	fields := make([]models.DocField, 0, len(payload.Data.Fields))
	for _, f := range payload.Data.Fields {
		if f.Fieldname != "" {
			fields = append(fields, f)
		}
	}

	return &models.DocType{Name: name, Fields: fields}, nil
}

// ExecuteQuery runs a filtered, limited row query via frappe.client.get_list.
func (c *Client) ExecuteQuery(ctx context.Context, cfg *models.FrappeConfig, doctype string, fields []string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	if filters == nil {
		filters = map[string]interface{}{}
	}

	reqBody := map[string]interface{}{
		"doctype":           doctype,
		"fields":            fields,
		"filters":           filters,
		"limit_page_length": limit,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	endpoint := fmt.Sprintf("%s/api/method/frappe.client.get_list", strings.TrimSuffix(cfg.URL, "/"))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	c.authorize(req, cfg)
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrQuery, status, upstreamMessage(body))
	}

	var payload struct {
		Message []map[string]interface{} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrQuery, err)
	}
	if payload.Message == nil {
		return []map[string]interface{}{}, nil
	}
	return payload.Message, nil
}

// CheckConnection probes the credentials during setup. It never returns an
// error; any failure folds into false.
func (c *Client) CheckConnection(ctx context.Context, cfg *models.FrappeConfig) bool {
	endpoint := fmt.Sprintf("%s/api/method/frappe.auth.get_logged_user", strings.TrimSuffix(cfg.URL, "/"))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return false
	}
	c.authorize(req, cfg)

	status, _, err := c.do(req)
	if err != nil {
		return false
	}
	return status == http.StatusOK
}
