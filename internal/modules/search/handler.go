package search

import (
	"github.com/carpediction/server/internal/modules/search/provider"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves aggregated lookups over HTTP. Each request runs its own
// aggregator generation; long-lived clients that re-query cancel their
// previous generation through the same Aggregator type.
type Handler struct {
	clients []provider.Client
	cache   *Cache
	log     *zap.Logger
}

// NewHandler builds the search handler. cache may be nil.
func NewHandler(clients []provider.Client, cache *Cache, log *zap.Logger) *Handler {
	return &Handler{clients: clients, cache: cache, log: log}
}

// RegisterRoutes mounts the search API. The engine must run with
// UseRawPath enabled so a %2F inside :query stays one path segment.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search/:query", h.search)
}

// providerBlock is one provider's slot in the response.
type providerBlock struct {
	Provider    string     `json:"provider"`
	Status      string     `json:"status"` // "ok" | "unavailable"
	Kind        string     `json:"kind,omitempty"`
	Word        string     `json:"word,omitempty"`
	Rhymes      TermGroups `json:"rhymes,omitempty"`
	Definitions []string   `json:"definitions,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

func (h *Handler) search(c *gin.Context) {
	// the router delivers the param decoded, %2F included
	query := c.Param("query")

	agg := NewAggregator(h.clients, h.cache, h.log)
	defer agg.Close()

	view, err := agg.Search(query)
	if err != nil {
		response.BadRequest(c, "query must not be empty")
		return
	}
	if err := view.Wait(c.Request.Context()); err != nil {
		// client went away; per-provider timeouts bound the wait otherwise
		c.Abort()
		return
	}

	blocks := make([]providerBlock, 0, len(h.clients))
	for _, client := range h.clients {
		state, _ := view.State(client.Name())
		block := providerBlock{Provider: state.Provider}
		switch {
		case state.Available():
			block.Status = "ok"
			block.Word = state.Entry.Word
			block.Rhymes = Classify(state.Entry.Terms)
			block.Definitions = state.Entry.Definitions
		default:
			block.Status = "unavailable"
			if state.Failure != nil {
				block.Kind = string(state.Failure.Kind)
				block.Suggestions = state.Failure.Suggestions
			}
		}
		blocks = append(blocks, block)
	}

	response.OK(c, gin.H{
		"query":     view.Query,
		"providers": blocks,
	})
}
