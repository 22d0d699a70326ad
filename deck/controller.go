package deck

import (
	"context"
	"sync"

	"giffer/logger"
	"giffer/models"

	"github.com/rs/xid"
)

// InvalidEndpointMessage is the user-facing error for an empty endpoint.
const InvalidEndpointMessage = "Invalid endpoint"

var log = logger.New("deck")

// Fetcher performs the GET for an endpoint and returns the normalized deck.
type Fetcher interface {
	FetchEndpoint(ctx context.Context, endpoint string) ([]models.Gif, error)
}

// State is an immutable snapshot of everything the UI renders.
type State struct {
	Endpoint   string
	Loading    bool
	Err        string
	Current    models.Gif
	HasCurrent bool
	DeckLen    int
	Remaining  int
	Liked      []models.Gif
	Disliked   []models.Gif
}

// Controller owns the deck state and the one effectful routine in the app: the
// fetch triggered by an endpoint change. Every fetch attempt carries a
// monotonically increasing generation number; a resolution whose generation no
// longer matches is discarded without touching loading, error, or deck state.
type Controller struct {
	mu       sync.Mutex
	fetcher  Fetcher
	deck     *Deck
	endpoint string
	gen      uint64
	loading  bool
	errMsg   string
	cancel   context.CancelFunc
	onChange func(State)
}

// NewController creates a controller over an empty deck.
func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		deck:    New(),
	}
}

// OnChange registers the single state listener. The callback runs on whatever
// goroutine produced the change and must not call back into the controller.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetEndpoint reacts to a new endpoint string. An empty endpoint surfaces
// InvalidEndpointMessage and performs no fetch; the deck is left untouched.
// Otherwise the previous in-flight request (if any) is superseded and a new
// fetch starts in the background.
func (c *Controller) SetEndpoint(endpoint string) {
	c.mu.Lock()
	c.gen++ // supersedes any in-flight fetch
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.endpoint = endpoint

	if endpoint == "" {
		c.loading = false
		c.errMsg = InvalidEndpointMessage
		state := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(state)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loading = true
	c.errMsg = ""
	state := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(state)

	requestID := xid.New().String()
	log.Debug().
		Str("request_id", requestID).
		Str("endpoint", endpoint).
		Msg("starting fetch")

	go c.fetch(ctx, gen, endpoint, requestID)
}

func (c *Controller) fetch(ctx context.Context, gen uint64, endpoint, requestID string) {
	gifs, err := c.fetcher.FetchEndpoint(ctx, endpoint)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Debug().
			Str("request_id", requestID).
			Msg("discarding superseded fetch result")
		return
	}

	c.loading = false
	if err != nil {
		// The previous deck stays visible beneath the error message.
		c.errMsg = err.Error()
		log.Warn().
			Err(err).
			Str("request_id", requestID).
			Msg("fetch failed")
	} else {
		c.deck.Reset(gifs)
		log.Info().
			Str("request_id", requestID).
			Int("count", len(gifs)).
			Msg("deck replaced")
	}
	state := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(state)
}

// Vote consumes the current top-of-deck item. A vote on an exhausted deck is a
// no-op; the bucket append and pointer advance happen under one lock so no
// partial state is ever observable.
func (c *Controller) Vote(v Verdict) {
	c.mu.Lock()
	if !c.deck.Vote(v) {
		c.mu.Unlock()
		return
	}
	state := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(state)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close supersedes any in-flight fetch so a late resolution cannot emit
// updates after teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

func (c *Controller) snapshotLocked() State {
	current, ok := c.deck.Current()
	return State{
		Endpoint:   c.endpoint,
		Loading:    c.loading,
		Err:        c.errMsg,
		Current:    current,
		HasCurrent: ok,
		DeckLen:    c.deck.Len(),
		Remaining:  c.deck.Remaining(),
		Liked:      c.deck.Liked(),
		Disliked:   c.deck.Disliked(),
	}
}

func (c *Controller) notify(state State) {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}
