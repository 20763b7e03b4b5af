package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"transparency/internal/config"

	"github.com/tidwall/gjson"
)

// Ollama calls a local Ollama server's /api/generate endpoint
type Ollama struct {
	baseURL string
	model   string
	client  HTTPDoer
}

// NewOllama creates an Ollama client
func NewOllama(cfg *config.AIConfig) *Ollama {
	return &Ollama{
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   cfg.OllamaModel,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// WithHTTPClient swaps the transport, mostly for tests
func (o *Ollama) WithHTTPClient(c HTTPDoer) *Ollama {
	o.client = c
	return o
}

func (o *Ollama) Name() string { return "ollama:" + o.model }

// Complete runs a non-streaming generation and returns its response text
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	if o.baseURL == "" || o.model == "" {
		return "", ErrNotConfigured
	}

	jsonBody, err := json.Marshal(map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Service: "ollama", Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("ollama: malformed response body")
	}

	text := gjson.GetBytes(body, "response").String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
