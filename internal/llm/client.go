package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	APIVersion       = "2023-06-01"
	DefaultMaxTokens = 1024
)

// CredentialsProvider supplies the API key and model for each call.
type CredentialsProvider interface {
	Credentials(ctx context.Context) (apiKey, model string, err error)
}

// StaticCredentials is a fixed CredentialsProvider.
type StaticCredentials struct {
	APIKey string
	Model  string
}

func (s StaticCredentials) Credentials(context.Context) (string, string, error) {
	return s.APIKey, s.Model, nil
}

// ContentPart is one element of a multi-part user message.
type ContentPart struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart wraps base64-encoded image data.
func ImagePart(mediaType, base64Data string) ContentPart {
	return ContentPart{Type: "image", Source: &ImageSource{Type: "base64", MediaType: mediaType, Data: base64Data}}
}

// MessagesRequest is a single-turn request. Parts, when set, take
// precedence over Prompt.
type MessagesRequest struct {
	System    string
	Prompt    string
	Parts     []ContentPart
	MaxTokens int
}

type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type wireRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []wireMessage `json:"messages"`
}

type wireResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Client talks to the Messages API.
type Client struct {
	creds   CredentialsProvider
	http    *http.Client
	baseURL string
	log     logging.Logger
}

type Option func(*Client)

// WithBaseURL points the client at another host, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = strings.TrimRight(u, "/") }
}

func WithLogger(l logging.Logger) Option { return func(cl *Client) { cl.log = l } }

func NewClient(creds CredentialsProvider, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		http:    &http.Client{},
		baseURL: DefaultBaseURL,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Messages sends req and returns the text of the first text block.
func (c *Client) Messages(ctx context.Context, req MessagesRequest) (string, error) {
	apiKey, model, err := c.creds.Credentials(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve credentials: %w", err)
	}
	switch {
	case strings.TrimSpace(apiKey) == "":
		return "", ErrMissingAPIKey
	case strings.TrimSpace(model) == "":
		return "", ErrMissingModel
	case !IsSupportedModel(model):
		return "", fmt.Errorf("%w: %s", ErrUnsupportedModel, model)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	var content any = req.Prompt
	if len(req.Parts) > 0 {
		content = req.Parts
	}
	body, err := json.Marshal(wireRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []wireMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", APIVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "messages API returned error", "status", resp.StatusCode)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded wireResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			c.log.Debug(ctx, "messages API reply", "model", model, "chars", len(block.Text))
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
