package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
	"github.com/nucleargandhihello/The-Briefing/internal/feed"
	"github.com/nucleargandhihello/The-Briefing/internal/generate"
)

type generateRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type replaceRequest struct {
	Articles []cache.Article `json:"articles"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	articles, err := s.gen.Generate(r.Context(), req.Category, req.Count)
	if err != nil {
		var ex *generate.ExhaustedError
		switch {
		case errors.Is(err, generate.ErrNoAPIKey):
			respondError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		case errors.As(err, &ex):
			respondJSON(w, http.StatusBadGateway, map[string]any{
				"error":    "all models failed",
				"attempts": ex.Attempts,
			})
		default:
			s.log.Error("generate failed", zap.String("request_id", reqID(r.Context())), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "generation failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, articles)
}

func (s *Server) handleReplaceArticles(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count := s.store.Replace(req.Articles)
	s.log.Info("cache replaced",
		zap.String("request_id", reqID(r.Context())),
		zap.Int("count", count))
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.ReadAll())
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	doc, err := feed.Render(s.store.ReadAll(), s.cfg.BaseURL, s.cfg.SiteTitle)
	if err != nil {
		s.log.Error("feed render failed", zap.String("request_id", reqID(r.Context())), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "feed rendering failed")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
