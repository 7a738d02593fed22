package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generatePath = "/LS/content/v1/generate"

// ErrEmptyQuestion is returned when the trimmed question is empty. It is a
// validation failure: no request is issued.
var ErrEmptyQuestion = errors.New("question must not be empty")

// StatusError is returned for non-2xx responses from the backend. Detail
// carries the FastAPI error body's "detail" field when present.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("generation failed with status %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("generation failed with status %d", e.Code)
}

// Client calls the Literature Surveyor generation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given base URL. The underlying HTTP
// client carries no timeout; callers bound the request via ctx if they want
// one (the generation call can legitimately take minutes).
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Generate submits a question and returns the parsed response.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return nil, ErrEmptyQuestion
	}

	// Provider is meaningless on the local path; never send it there.
	if req.LocalLLM {
		req.Provider = ""
	}

	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))
	log.Info("submitting generation request",
		zap.String("question", req.Question),
		zap.Bool("local_llm", req.LocalLLM),
		zap.String("provider", req.Provider))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("generation request failed", zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Detail: errorDetail(respBody)}
		log.Warn("generation returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", statusErr.Detail))
		return nil, statusErr
	}

	var result GenerateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Info("generation succeeded",
		zap.Bool("structured", result.IsStructured()),
		zap.String("provider_used", result.ProviderUsed))
	return &result, nil
}

// errorDetail extracts the "detail" field from a FastAPI error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}
