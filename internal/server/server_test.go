package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
	"github.com/nucleargandhihello/The-Briefing/internal/config"
	"github.com/nucleargandhihello/The-Briefing/internal/generate"
)

func testServer(t *testing.T, apiKey string) (*Server, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		Addr:      ":0",
		BaseURL:   "http://localhost:8080",
		SiteTitle: "The Briefing",
		Models:    []string{"flash"},
	}
	gen := generate.New(apiKey, cfg.Models, zap.NewNop())
	srv := New(cfg, cache.NewStore(), gen, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealth(t *testing.T) {
	_, ts := testServer(t, "")
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	_, ts := testServer(t, "")
	resp, err := http.Post(ts.URL+"/api/generate", "application/json",
		strings.NewReader(`{"category": "politics"}`))
	if err != nil {
		t.Fatalf("POST /api/generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 without an API key, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the body")
	}
}

func TestGenerateAllModelsFail(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "overloaded"}})
	}))
	t.Cleanup(upstream.Close)

	srv, ts := testServer(t, "test-key")
	srv.gen.BaseURL = upstream.URL
	srv.gen.HTTPClient = upstream.Client()

	resp, err := http.Post(ts.URL+"/api/generate", "application/json",
		strings.NewReader(`{"category": "cricket", "count": 2}`))
	if err != nil {
		t.Fatalf("POST /api/generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 on exhaustion, got %d", resp.StatusCode)
	}

	var body struct {
		Error    string             `json:"error"`
		Attempts []generate.Attempt `json:"attempts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Attempts) != 1 {
		t.Errorf("expected 1 attempt detail, got %d", len(body.Attempts))
	}
}

func TestGenerateSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := "```json\n" + `[{"category":"cricket","headline":"H","summary":"S","author":"A","date":"March 5, 2025"}]` + "\n```"
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		})
	}))
	t.Cleanup(upstream.Close)

	srv, ts := testServer(t, "test-key")
	srv.gen.BaseURL = upstream.URL
	srv.gen.HTTPClient = upstream.Client()

	resp, err := http.Post(ts.URL+"/api/generate", "application/json",
		strings.NewReader(`{"category": "cricket", "count": 1}`))
	if err != nil {
		t.Fatalf("POST /api/generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var articles []cache.Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		t.Fatalf("decoding articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].ID == 0 {
		t.Error("expected an assigned ID")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	_, ts := testServer(t, "")

	payload := `{"articles": [
		{"id": 1, "category": "politics", "headline": "A", "summary": "S", "author": "X", "date": "March 5, 2025"},
		{"id": 2, "category": "business", "headline": "B", "summary": "S", "author": "Y", "date": "March 5, 2025"}
	]}`
	resp, err := http.Post(ts.URL+"/api/articles", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /api/articles: %v", err)
	}
	defer resp.Body.Close()

	var put struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&put); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !put.Success || put.Count != 2 {
		t.Errorf("expected success with count 2, got %+v", put)
	}

	getResp, err := http.Get(ts.URL + "/api/articles")
	if err != nil {
		t.Fatalf("GET /api/articles: %v", err)
	}
	defer getResp.Body.Close()

	var articles []cache.Article
	if err := json.NewDecoder(getResp.Body).Decode(&articles); err != nil {
		t.Fatalf("decoding articles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Headline != "A" || articles[1].Headline != "B" {
		t.Error("expected stored order to be preserved")
	}
}

func TestListArticlesEmptyIsArray(t *testing.T) {
	_, ts := testServer(t, "")
	resp, err := http.Get(ts.URL + "/api/articles")
	if err != nil {
		t.Fatalf("GET /api/articles: %v", err)
	}
	defer resp.Body.Close()

	var articles []cache.Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		t.Fatalf("expected a JSON array even when empty: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected empty array, got %d articles", len(articles))
	}
}

func TestFeedEndpoint(t *testing.T) {
	srv, ts := testServer(t, "")
	srv.store.Replace([]cache.Article{
		{ID: 1, Category: "politics", Headline: "A", Summary: "S", Author: "X", Date: "March 5, 2025"},
	})

	resp, err := http.Get(ts.URL + "/rss")
	if err != nil {
		t.Fatalf("GET /rss: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/rss+xml") {
		t.Errorf("unexpected content type %q", ct)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "<rss") || !strings.Contains(body, "<item>") {
		t.Errorf("expected an RSS document with items, got: %.200s", body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, ts := testServer(t, "")
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}
