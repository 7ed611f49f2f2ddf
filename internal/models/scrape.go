package models

// ScrapeResult is the outcome of scanning one website for keywords
type ScrapeResult struct {
	Success       bool     `json:"success"`
	URL           string   `json:"url"`
	FoundKeywords []string `json:"found_keywords"`
	KeywordCount  int      `json:"keyword_count"`
	Error         string   `json:"error,omitempty"`
}

// ScrapeStatus returns "success" or "failed" for API responses
func (r *ScrapeResult) ScrapeStatus() string {
	if r.Success {
		return "success"
	}
	return "failed"
}
