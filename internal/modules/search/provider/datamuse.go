package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Datamuse looks up rhymes via the Datamuse words API. No key required;
// the query travels as a parameter, not a path segment.
type Datamuse struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
}

// NewDatamuse builds a Datamuse client. baseURL has no trailing slash.
func NewDatamuse(baseURL string, timeout time.Duration, hc *http.Client) *Datamuse {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Datamuse{baseURL: baseURL, timeout: timeout, hc: hc}
}

func (d *Datamuse) Name() string { return "datamuse" }

type datamuseWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

func (d *Datamuse) Lookup(ctx context.Context, query string) Result {
	u := d.baseURL + "/words?rel_rhy=" + url.QueryEscape(query)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return failure(KindTransport, err.Error())
	}

	body, fail := doJSON(ctx, d.hc, d.timeout, req)
	if fail != nil {
		return *fail
	}

	var words []datamuseWord
	if err := json.Unmarshal(body, &words); err != nil {
		return failure(KindMalformedResponse, err.Error())
	}
	if len(words) == 0 {
		return failure(KindNotFound, "no rhymes found")
	}

	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, w.Word)
	}
	return success(&Entry{Word: query, Terms: terms})
}
