package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"frappeinsight/cache"
)

type AIService struct {
	apiKey             string
	modelName          string
	cache              *cache.Cache
	httpClient         *http.Client
	apiURL             string
	lastRequestTime    time.Time     // Track last request time for rate limiting
	requestMutex       sync.Mutex    // Mutex to protect lastRequestTime
	minRequestInterval time.Duration // Minimum time between requests
}

type chatRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []chatMessage `json:"messages"`
	} `json:"input"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func New(apiKey string, modelName string, apiURL string, cache *cache.Cache) (*AIService, error) {
	return &AIService{
		apiKey:             apiKey,
		modelName:          modelName,
		cache:              cache,
		httpClient:         &http.Client{Timeout: 120 * time.Second},
		apiURL:             apiURL,
		minRequestInterval: 500 * time.Millisecond,
	}, nil
}

func (a *AIService) Close() error {
	return nil
}

// rateLimit ensures minimum time between requests to prevent burst rate errors
func (a *AIService) rateLimit() {
	a.requestMutex.Lock()
	defer a.requestMutex.Unlock()

	now := time.Now()
	timeSinceLastRequest := now.Sub(a.lastRequestTime)

	if timeSinceLastRequest < a.minRequestInterval {
		time.Sleep(a.minRequestInterval - timeSinceLastRequest)
	}

	a.lastRequestTime = time.Now()
}

func (a *AIService) callAPI(ctx context.Context, messages []chatMessage) (string, error) {
	a.rateLimit()

	reqBody := chatRequest{Model: a.modelName}
	reqBody.Input.Messages = messages

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry with exponential backoff on rate limit and transport errors
	maxRetries := 3
	baseDelay := 2 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[AI] Retrying after %v (attempt %d/%d)", delay, attempt, maxRetries)
			time.Sleep(delay)
			a.rateLimit()
		}

		req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to send request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("API returned status %d: %s. Max retries exceeded.", resp.StatusCode, string(body))
		}

		if resp.StatusCode != http.StatusOK {
			var errorResp struct {
				Code      string `json:"code"`
				Message   string `json:"message"`
				RequestID string `json:"request_id"`
			}
			if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Code != "" {
				return "", fmt.Errorf("API error (status %d): %s - %s (request_id: %s)",
					resp.StatusCode, errorResp.Code, errorResp.Message, errorResp.RequestID)
			}
			return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}

		var chatResp chatResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}

		if chatResp.Code != "" && chatResp.Code != "Success" {
			return "", fmt.Errorf("API error: %s - %s", chatResp.Code, chatResp.Message)
		}

		if len(chatResp.Output.Choices) == 0 {
			return "", fmt.Errorf("no response from AI model")
		}

		return chatResp.Output.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries exceeded")
}

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
