package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/carpediction/server/internal/pkg/querykey"
)

// WordsAPI looks up rhymes via the Words API on RapidAPI.
type WordsAPI struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	hc      *http.Client
}

// NewWordsAPI builds a Words API client. baseURL has no trailing slash.
func NewWordsAPI(baseURL, apiKey string, timeout time.Duration, hc *http.Client) *WordsAPI {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &WordsAPI{baseURL: baseURL, apiKey: apiKey, timeout: timeout, hc: hc}
}

func (w *WordsAPI) Name() string { return "wordsapi" }

// wordsAPIRhymes is the provider's wire shape for /words/{q}/rhymes.
type wordsAPIRhymes struct {
	Word   string `json:"word"`
	Rhymes *struct {
		All []string `json:"all"`
	} `json:"rhymes"`
}

func (w *WordsAPI) Lookup(ctx context.Context, query string) Result {
	url := fmt.Sprintf("%s/words/%s/rhymes", w.baseURL, querykey.Escape(query))
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return failure(KindTransport, err.Error())
	}
	req.Header.Set("X-RapidAPI-Key", w.apiKey)
	req.Header.Set("X-RapidAPI-Host", "wordsapiv1.p.rapidapi.com")

	body, fail := doJSON(ctx, w.hc, w.timeout, req)
	if fail != nil {
		return *fail
	}

	var payload wordsAPIRhymes
	if err := json.Unmarshal(body, &payload); err != nil {
		return failure(KindMalformedResponse, err.Error())
	}
	// An empty rhymes object is the provider's well-formed "no results".
	if payload.Rhymes == nil || len(payload.Rhymes.All) == 0 {
		return failure(KindNotFound, "no rhymes found")
	}

	return success(&Entry{
		Word:  payload.Word,
		Terms: payload.Rhymes.All,
	})
}
