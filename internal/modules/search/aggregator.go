package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/carpediction/server/internal/modules/search/provider"
	"go.uber.org/zap"
)

// ErrEmptyQuery is returned when a query is empty after trimming.
var ErrEmptyQuery = errors.New("empty query")

// ProviderState is one provider's slot in a view.
type ProviderState struct {
	Provider string
	Settled  bool
	Entry    *provider.Entry
	Failure  *provider.Failure
}

// Available reports whether the provider settled with a usable entry.
func (s ProviderState) Available() bool { return s.Settled && s.Failure == nil }

// Update is delivered to observers each time a provider settles.
type Update struct {
	Generation uint64
	State      ProviderState
}

// View is the aggregated result of one query generation. Provider slots
// fill in as lookups settle; stale generations never touch it.
type View struct {
	Generation uint64
	Query      string

	mu      sync.RWMutex
	states  map[string]ProviderState
	pending int
	done    chan struct{}
}

func newView(gen uint64, query string, clients []provider.Client) *View {
	v := &View{
		Generation: gen,
		Query:      query,
		states:     make(map[string]ProviderState, len(clients)),
		pending:    len(clients),
		done:       make(chan struct{}),
	}
	for _, c := range clients {
		v.states[c.Name()] = ProviderState{Provider: c.Name()}
	}
	if v.pending == 0 {
		close(v.done)
	}
	return v
}

// State returns the current slot for a provider.
func (v *View) State(name string) (ProviderState, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s, ok := v.states[name]
	return s, ok
}

// States returns a snapshot of all provider slots.
func (v *View) States() []ProviderState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]ProviderState, 0, len(v.states))
	for _, s := range v.states {
		out = append(out, s)
	}
	return out
}

// Wait blocks until every provider for this generation has settled, or ctx
// is cancelled. A superseded generation still settles: each lookup resolves
// to a Cancelled failure.
func (v *View) Wait(ctx context.Context) error {
	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *View) settle(s ProviderState) {
	v.mu.Lock()
	prev := v.states[s.Provider]
	v.states[s.Provider] = s
	if !prev.Settled {
		v.pending--
		if v.pending == 0 {
			close(v.done)
		}
	}
	v.mu.Unlock()
}

// Aggregator fans a query out to every configured provider concurrently
// and folds the settlements into a per-generation view. A new query
// supersedes the previous generation immediately: its context is cancelled
// and any result that still arrives for it is dropped at the merge step.
type Aggregator struct {
	clients   []provider.Client
	cache     *Cache
	log       *zap.Logger
	observers []func(Update)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *View
}

// NewAggregator builds an Aggregator over the given clients. cache may be
// nil to disable result caching.
func NewAggregator(clients []provider.Client, cache *Cache, log *zap.Logger) *Aggregator {
	return &Aggregator{
		clients: clients,
		cache:   cache,
		log:     log.Named("aggregator"),
	}
}

// Subscribe registers an observer invoked on every current-generation
// settlement. Must be called before the first Search.
func (a *Aggregator) Subscribe(fn func(Update)) {
	a.observers = append(a.observers, fn)
}

// Search starts a new query generation and returns its view immediately.
// Provider lookups run in the background; use View.Wait or Subscribe to
// follow settlement. Rejects queries that are empty after trimming.
func (a *Aggregator) Search(rawQuery string) (*View, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	a.mu.Lock()
	a.generation++
	gen := a.generation
	if a.cancel != nil {
		// cancelling an already-settled generation is a no-op
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	view := newView(gen, query, a.clients)
	a.current = view
	a.mu.Unlock()

	for _, c := range a.clients {
		go a.lookup(ctx, gen, view, c, query)
	}
	return view, nil
}

// Current returns the view of the latest generation, or nil before the
// first search.
func (a *Aggregator) Current() *View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Close cancels any in-flight generation.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Aggregator) lookup(ctx context.Context, gen uint64, view *View, c provider.Client, query string) {
	res := a.cache.Lookup(ctx, c, query)

	state := ProviderState{Provider: c.Name(), Settled: true}
	if res.OK() {
		state.Entry = res.Entry
	} else {
		state.Failure = res.Err
		if res.Err.Kind != provider.KindNotFound && res.Err.Kind != provider.KindCancelled {
			a.log.Warn("provider unavailable",
				zap.String("provider", c.Name()),
				zap.String("kind", string(res.Err.Kind)),
				zap.String("message", res.Err.Message),
			)
		}
	}

	// Each generation settles only its own view, so a late result can
	// never leak into a newer query's view. Observers follow the current
	// generation only.
	view.settle(state)

	a.mu.Lock()
	stale := gen != a.generation
	a.mu.Unlock()
	if stale {
		a.log.Debug("stale settlement dropped",
			zap.String("provider", c.Name()),
			zap.Uint64("generation", gen),
		)
		return
	}
	for _, fn := range a.observers {
		fn(Update{Generation: gen, State: state})
	}
}
