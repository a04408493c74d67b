package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
	"github.com/nucleargandhihello/The-Briefing/internal/category"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// ErrNoAPIKey means generation cannot run at all; the server stays up and
// every other endpoint keeps working.
var ErrNoAPIKey = errors.New("no upstream API key configured")

// Attempt records one failed call to a single model.
type Attempt struct {
	Model string `json:"model"`
	Error string `json:"error"`
}

// ExhaustedError reports that every model in the fallback list failed.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d models failed", len(e.Attempts))
}

const articlePrompt = `Generate %d satirical news articles for the category "%s".

Respond with ONLY a JSON array, no other text. Each element must be an object with exactly these string fields:
"category": "%s"
"headline": an absurd but deadpan satirical headline
"summary": one sentence expanding on the headline
"author": a fictional author name
"date": today's date in a format like "January 2, 2006"

Write in the register of The Onion: plausible-sounding, dry, ridiculous.`

// Client generates article batches against a Gemini-style REST API,
// falling back through Models in order until one attempt both succeeds
// and parses.
type Client struct {
	APIKey     string
	BaseURL    string
	Models     []string
	HTTPClient *http.Client
	Log        *zap.Logger

	now func() time.Time
}

func New(apiKey string, models []string, log *zap.Logger) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		Models:     models,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Log:        log,
		now:        time.Now,
	}
}

// Generate builds one prompt and tries each model in order, returning the
// first batch that parses. Extraction failure on a structurally successful
// call is treated the same as an upstream failure: move on to the next
// model rather than surfacing a parse error.
func (c *Client) Generate(ctx context.Context, cat string, count int) ([]cache.Article, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if count <= 0 {
		count = 3
	}

	resolved := category.Resolve(cat)
	prompt := fmt.Sprintf(articlePrompt, count, resolved, resolved)

	var attempts []Attempt
	for _, model := range c.Models {
		text, err := c.call(ctx, model, prompt)
		if err != nil {
			c.Log.Warn("model call failed", zap.String("model", model), zap.Error(err))
			attempts = append(attempts, Attempt{Model: model, Error: err.Error()})
			continue
		}

		articles, err := ExtractArticles(text)
		if err != nil {
			c.Log.Warn("extraction failed", zap.String("model", model), zap.Error(err))
			attempts = append(attempts, Attempt{Model: model, Error: err.Error()})
			continue
		}

		// Intra-batch uniqueness only; the cache is wholesale-replaced so
		// collisions across batches don't matter.
		base := c.now().UnixMilli()
		for i := range articles {
			articles[i].ID = base + int64(i)
			if articles[i].Category == "" {
				articles[i].Category = resolved
			}
		}

		c.Log.Info("generated batch",
			zap.String("model", model),
			zap.String("category", resolved),
			zap.Int("count", len(articles)))
		return articles, nil
	}

	return nil, &ExhaustedError{Attempts: attempts}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, model, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     1.0,
			MaxOutputTokens: 2048,
		},
	})

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.BaseURL, model, url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		var gr generateResponse
		if json.Unmarshal(b, &gr) == nil && gr.Error != nil {
			return "", fmt.Errorf("%s: %s", model, gr.Error.Message)
		}
		return "", fmt.Errorf("%s: status %d: %s", model, resp.StatusCode, string(b))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%s: decoding response: %w", model, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%s: empty response", model)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
