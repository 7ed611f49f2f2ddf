package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the visible body text of an HTML document, lowercased
// with whitespace collapsed so multi-word keywords match across line breaks.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return strings.ToLower(strings.Join(strings.Fields(text), " ")), nil
}

// MatchKeywords returns the keywords contained in text, in keyword order
func MatchKeywords(text string, keywords []string) []string {
	found := []string{}
	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(text, kw) {
			found = append(found, keyword)
		}
	}
	return found
}
