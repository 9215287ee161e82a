package wotd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scrapeTimeout = 2 * time.Second

func pageServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
}

func TestScrapeOncePrefersFirstH2(t *testing.T) {
	ts := pageServer(`<html><body>
		<h1>Word of the Day</h1>
		<h2>  ephemeral </h2>
		<h2>other heading</h2>
	</body></html>`)
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	word, _, err := s.ScrapeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ephemeral", word)
}

func TestScrapeOnceFallsBackToH1(t *testing.T) {
	ts := pageServer(`<html><body><h1>serendipity</h1><p>no h2 here</p></body></html>`)
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	word, _, err := s.ScrapeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "serendipity", word)
}

func TestScrapeOnceEmptyH2FallsBackToH1(t *testing.T) {
	ts := pageServer(`<html><body><h1>lagniappe</h1><h2>   </h2></body></html>`)
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	word, _, err := s.ScrapeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lagniappe", word)
}

func TestScrapeOnceNoHeadings(t *testing.T) {
	ts := pageServer(`<html><body><p>nothing here</p></body></html>`)
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	_, _, err := s.ScrapeOnce(context.Background())
	assert.Error(t, err)
}

func TestScrapeOnceTransportFailure(t *testing.T) {
	ts := pageServer("")
	ts.Close() // connection refused from here on

	s := NewScraper(ts.URL, scrapeTimeout, nil)
	_, _, err := s.ScrapeOnce(context.Background())
	assert.Error(t, err)
}

func TestScrapeOnceBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	_, _, err := s.ScrapeOnce(context.Background())
	assert.Error(t, err)
}

func TestScrapeDayKeyIsStableAcrossTheDay(t *testing.T) {
	ts := pageServer(`<html><body><h2>word</h2></body></html>`)
	defer ts.Close()

	s := NewScraper(ts.URL, scrapeTimeout, ts.Client())

	s.now = func() time.Time {
		return time.Date(2024, time.July, 4, 0, 0, 1, 0, time.UTC)
	}
	_, early, err := s.ScrapeOnce(context.Background())
	require.NoError(t, err)

	s.now = func() time.Time {
		return time.Date(2024, time.July, 4, 23, 59, 59, 0, time.UTC)
	}
	_, late, err := s.ScrapeOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, early, late)
	assert.Equal(t, time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC), early)
}

func TestRunIngestionCreatesThenSkips(t *testing.T) {
	ts := pageServer(`<html><body><h2>vellichor</h2></body></html>`)
	defer ts.Close()

	store := newMemStore()
	scraper := NewScraper(ts.URL, scrapeTimeout, ts.Client())
	svc := NewService(store, scraper, zap.NewNop())

	first := svc.RunIngestion(context.Background())
	assert.Equal(t, Created, first.Outcome)
	assert.Equal(t, "vellichor", first.Word)

	second := svc.RunIngestion(context.Background())
	assert.Equal(t, DuplicateSkipped, second.Outcome)

	rec, ok := svc.Latest(context.Background())
	require.True(t, ok)
	require.NotNil(t, rec)
	assert.Equal(t, "vellichor", rec.Word)
	assert.Empty(t, rec.Def, "definition stays a placeholder")
}

func TestRunIngestionScrapeFailure(t *testing.T) {
	ts := pageServer("")
	ts.Close()

	store := newMemStore()
	svc := NewService(store, NewScraper(ts.URL, scrapeTimeout, nil), zap.NewNop())

	attempt := svc.RunIngestion(context.Background())
	assert.Equal(t, Failed, attempt.Outcome)
	assert.Error(t, attempt.Err)

	recs, ok := svc.Archive(context.Background())
	require.True(t, ok)
	assert.Empty(t, recs, "failed scrape must not persist anything")
}
