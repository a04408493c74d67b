package cache

// Article is one satirical news item. Fields mirror what the model (or a
// submitting client) provides; missing fields pass through as zero values
// rather than being rejected.
type Article struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Author   string `json:"author"`
	Date     string `json:"date"`
}
