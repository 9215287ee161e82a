package wotd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carpediction/server/internal/models"
	"golang.org/x/net/html"
)

// Scraper fetches the word-of-the-day source page and extracts the word.
type Scraper struct {
	sourceURL string
	timeout   time.Duration
	hc        *http.Client
	// now is swappable for day-key tests
	now func() time.Time
}

// NewScraper builds a scraper for the given source page.
func NewScraper(sourceURL string, timeout time.Duration, hc *http.Client) *Scraper {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Scraper{sourceURL: sourceURL, timeout: timeout, hc: hc, now: time.Now}
}

// ScrapeOnce fetches and parses the source page. The day key derives from
// the scrape time, not from any date embedded in the page; the page is not
// guaranteed to expose one.
func (s *Scraper) ScrapeOnce(ctx context.Context) (word string, dayKey time.Time, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("fetch %s: %w", s.sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("fetch %s: unexpected status %d", s.sourceURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse page: %w", err)
	}

	word = extractWord(doc)
	if word == "" {
		return "", time.Time{}, fmt.Errorf("no heading found on %s", s.sourceURL)
	}
	return word, models.DayKeyFor(s.now()), nil
}

// extractWord applies the two-stage heading rule: the first h2's text; if
// that is empty, the first h1's text. On the source page the first h1 is
// the page title and the actual word sits in the first h2.
func extractWord(doc *html.Node) string {
	if h2 := findFirst(doc, "h2"); h2 != nil {
		if w := strings.TrimSpace(nodeText(h2)); w != "" {
			return w
		}
	}
	if h1 := findFirst(doc, "h1"); h1 != nil {
		return strings.TrimSpace(nodeText(h1))
	}
	return ""
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
