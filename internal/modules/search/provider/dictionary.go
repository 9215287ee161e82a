package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/carpediction/server/internal/pkg/querykey"
)

// Dictionary looks up definitions via the Merriam-Webster collegiate API.
//
// The response shape is the awkward part of this provider: a hit is an
// array of entry objects, while a near-miss is an array of bare strings
// holding spelling suggestions. Both are valid 200 responses.
type Dictionary struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	hc      *http.Client
}

// NewDictionary builds a collegiate dictionary client.
func NewDictionary(baseURL, apiKey string, timeout time.Duration, hc *http.Client) *Dictionary {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Dictionary{baseURL: baseURL, apiKey: apiKey, timeout: timeout, hc: hc}
}

func (d *Dictionary) Name() string { return "dictionary" }

type dictionaryEntry struct {
	Meta struct {
		ID string `json:"id"`
	} `json:"meta"`
	ShortDef []string `json:"shortdef"`
}

func (d *Dictionary) Lookup(ctx context.Context, query string) Result {
	u := fmt.Sprintf("%s/api/v3/references/collegiate/json/%s?key=%s",
		d.baseURL, querykey.Escape(query), url.QueryEscape(d.apiKey))
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return failure(KindTransport, err.Error())
	}

	body, fail := doJSON(ctx, d.hc, d.timeout, req)
	if fail != nil {
		return *fail
	}

	var entries []dictionaryEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		if len(entries) == 0 {
			return failure(KindNotFound, "no entries found")
		}
		entry := &Entry{Word: query}
		if entries[0].Meta.ID != "" {
			entry.Word = entries[0].Meta.ID
		}
		for _, e := range entries {
			entry.Definitions = append(entry.Definitions, e.ShortDef...)
		}
		if len(entry.Definitions) == 0 {
			return failure(KindNotFound, "no definitions found")
		}
		return success(entry)
	}

	// Fall back to the suggestion shape before declaring the payload bad.
	var suggestions []string
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return failure(KindMalformedResponse, "unrecognized response shape")
	}
	return Result{Err: &Failure{
		Kind:        KindNotFound,
		Message:     "word not found",
		Suggestions: suggestions,
	}}
}
