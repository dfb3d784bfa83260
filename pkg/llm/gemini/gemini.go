// Package gemini implements the llm.Client interface against the Gemini
// generateContent REST API.
//
// The implementation uses raw HTTP rather than a vendor SDK so that failure
// classification stays under our control: the conversation layer needs to
// distinguish rate limiting and credential problems from generic server
// failures, which maps directly onto the response status code.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/maripally-gautam/smartpad-assistant/pkg/llm"
)

const (
	// DefaultBaseURL is the public Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)

// Client is an llm.Client backed by the Gemini REST API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model used for completions.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at a non-default endpoint, such as a test
// server or a regional proxy.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client. Request timeouts are
// the HTTP client's responsibility; Generate imposes no deadline of its own.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Gemini client. If apiKey is empty, the GEMINI_API_KEY
// environment variable is consulted.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (provide via parameter or GEMINI_API_KEY environment variable)")
	}

	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// wireRequest is the generateContent request body.
type wireRequest struct {
	Contents          []any          `json:"contents"`
	SystemInstruction *wireContent   `json:"systemInstruction,omitempty"`
	Tools             []wireTools    `json:"tools,omitempty"`
	GenerationConfig  *wireGenConfig `json:"generationConfig,omitempty"`
}

type wireContent struct {
	Parts []wireTextPart `json:"parts"`
}

type wireTextPart struct {
	Text string `json:"text"`
}

type wireTools struct {
	FunctionDeclarations []any `json:"functionDeclarations"`
}

type wireGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// wireResponse is the generateContent response body. The error field is set
// on failure payloads, including some returned with a 200 status by
// OpenAI-compatible proxies.
type wireResponse struct {
	Candidates []llm.Candidate `json:"candidates"`
	Error      *wireError      `json:"error"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate issues one generateContent call and classifies failures per the
// llm error taxonomy. There is no retry and no streaming.
func (c *Client) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	body, err := json.Marshal(c.buildBody(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &llm.Error{Kind: llm.KindTransport, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.Error{Kind: llm.KindTransport, StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, respBody)
	}

	var wire wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, llm.Transport(resp.StatusCode, fmt.Sprintf("malformed response body: %v", err))
	}
	if wire.Error != nil {
		return nil, llm.Transport(resp.StatusCode, wire.Error.Message)
	}
	if len(wire.Candidates) == 0 {
		return nil, llm.NoResponse()
	}

	return &llm.Response{Candidates: wire.Candidates}, nil
}

func (c *Client) buildBody(req *llm.Request) wireRequest {
	body := wireRequest{
		GenerationConfig: &wireGenConfig{
			Temperature:     req.GenerationConfig.Temperature,
			MaxOutputTokens: req.GenerationConfig.MaxOutputTokens,
		},
	}

	body.Contents = make([]any, len(req.Contents))
	for i, turn := range req.Contents {
		body.Contents[i] = turn
	}

	if req.SystemInstruction != "" {
		body.SystemInstruction = &wireContent{
			Parts: []wireTextPart{{Text: req.SystemInstruction}},
		}
	}

	if len(req.Tools) > 0 {
		declarations := make([]any, len(req.Tools))
		for i, decl := range req.Tools {
			declarations[i] = decl
		}
		body.Tools = []wireTools{{FunctionDeclarations: declarations}}
	}

	return body
}

// classifyStatus maps a non-success HTTP status onto the llm error taxonomy.
// 400 is grouped with 401/403 because the service reports bad API keys as
// 400 INVALID_ARGUMENT.
func classifyStatus(status int, body []byte) *llm.Error {
	switch status {
	case http.StatusTooManyRequests:
		return llm.RateLimited()
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return llm.Unauthorized(status)
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != nil {
		return llm.Transport(status, wire.Error.Message)
	}
	return llm.Transport(status, "")
}
