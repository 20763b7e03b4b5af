package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"transparency/internal/config"

	"github.com/tidwall/gjson"
)

// Gemini calls the generateContent endpoint of the Gemini API
type Gemini struct {
	config *config.AIConfig
	client HTTPDoer
}

// NewGemini creates a Gemini client
func NewGemini(cfg *config.AIConfig) *Gemini {
	return &Gemini{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// WithHTTPClient swaps the transport, mostly for tests
func (g *Gemini) WithHTTPClient(c HTTPDoer) *Gemini {
	g.client = c
	return g
}

func (g *Gemini) Name() string { return "gemini:" + g.config.Model }

// Complete sends prompt and returns the first candidate's text
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if !g.config.IsEnabled() {
		return "", ErrNotConfigured
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	// The key goes in a header so transport errors, which quote the URL, never carry it.
	req, err := http.NewRequestWithContext(ctx, "POST", g.config.ModelEndpoint(g.config.Model), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Service: "gemini", Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("gemini: malformed response body")
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
