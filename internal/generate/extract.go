package generate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
)

// fencedBlock captures the interior of a code fence, with or without a
// json language tag. Models wrap their output in one more often than not.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractArticles pulls a JSON array of articles out of raw generation
// text. A fenced block wins if present; otherwise the whole text must be
// the array itself. Individual fields are not validated — missing ones
// come through as zero values.
func ExtractArticles(raw string) ([]cache.Article, error) {
	text := strings.TrimSpace(raw)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var articles []cache.Article
	if err := json.Unmarshal([]byte(text), &articles); err != nil {
		return nil, fmt.Errorf("no JSON article array in response: %w", err)
	}
	return articles, nil
}
