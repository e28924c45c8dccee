// Package suggest generates work order titles and tags from free-text
// descriptions using the Gemini generateContent API. The whole package is
// optional at runtime: without an API key the client constructs fine and
// every call reports itself disabled, so the rest of the application never
// branches on configuration.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("suggestions disabled: no API key")

// Client talks to the Gemini API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host (for tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a suggestion client. An empty apiKey yields a disabled
// client rather than an error.
func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has a key to call with.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// SuggestTitle asks for a concise work order title for the description.
func (c *Client) SuggestTitle(ctx context.Context, description string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(description) == "" {
		return "", nil
	}
	prompt := fmt.Sprintf("Based on the following description, create a concise and professional title for a work order. Description: %q", description)
	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.NewReplacer(`"`, "", "*", "").Replace(text)), nil
}

// SuggestTags asks for up to four tags drawn from the given vocabulary.
// Results outside the vocabulary are dropped.
func (c *Client) SuggestTags(ctx context.Context, description string, available []string) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(description) == "" {
		return nil, nil
	}
	prompt := fmt.Sprintf("From the description, suggest up to 4 relevant tags from this list: %s. Description: %q",
		strings.Join(available, ", "), description)
	text, err := c.generate(ctx, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   &schema{Type: "ARRAY", Items: &schema{Type: "STRING"}},
	})
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("suggest: parse tag response: %w", err)
	}
	known := make(map[string]bool, len(available))
	for _, tag := range available {
		known[tag] = true
	}
	var tags []string
	for _, tag := range raw {
		if known[tag] {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

type schema struct {
	Type  string  `json:"type"`
	Items *schema `json:"items,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents []content         `json:"contents"`
	Config   *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate runs one generateContent call and returns the first candidate's
// text.
func (c *Client) generate(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config:   cfg,
	})
	if err != nil {
		return "", fmt.Errorf("suggest: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("suggest: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("suggest: call %s: %w", c.model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("suggest: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggest: %s returned %s", c.model, resp.Status)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("suggest: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("suggest: empty response from %s", c.model)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
