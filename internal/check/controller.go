// Package check implements the input validator and lookup controller: it
// owns the current input, validates its format, debounces existence lookups
// against the known-URL list and publishes the resulting state.
package check

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	core "urlcheck/internal/core"
)

// DefaultDelay is the debounce quiet window.
const DefaultDelay = time.Second

var (
	// ErrClosed is returned by Verify after Close.
	ErrClosed = errors.New("check: controller closed")
	// ErrNoSource is returned by LoadKnownURLs when no source is configured.
	ErrNoSource = errors.New("check: no source configured")
)

// Source supplies the known-URL list.
type Source interface {
	Fetch(ctx context.Context) ([]core.Record, error)
}

// Snapshot is a consistent view of the controller state.
// Records must not be modified.
type Snapshot struct {
	Input    string
	State    core.CheckState
	Records  []core.Record
	Loaded   bool
	Revision uint64
}

type Option func(*Controller)

func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

func WithClock(clk Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers fn to be called after every state change. fn runs
// outside the controller lock, possibly on a timer goroutine.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller drives Idle -> {InvalidFormat | Checking} -> {Found | NotFound}.
// It holds at most one armed debounce timer; arming a new one or closing the
// controller invalidates the previous one.
type Controller struct {
	src      Source
	clock    Clock
	delay    time.Duration
	logger   zerolog.Logger
	observer func(Snapshot)

	mu      sync.Mutex
	input   string
	state   core.CheckState
	records []core.Record
	loaded  bool
	timer   Timer
	gen     uint64 // bumped whenever the pending timer is invalidated
	rev     uint64
	closed  bool
}

func New(src Source, opts ...Option) *Controller {
	c := &Controller{
		src:    src,
		clock:  realClock{},
		delay:  DefaultDelay,
		logger: zerolog.Nop(),
		state:  core.IdleState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "check").Logger()
	return c
}

// SetInput trims raw and re-runs the state machine from the top.
func (c *Controller) SetInput(raw string) {
	text := core.Normalize(raw)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.input = text
	switch {
	case text == "":
		c.state = core.IdleState()
	case !core.ValidateFormat(text):
		c.state = core.InvalidFormatState()
	default:
		c.state = core.CheckingState()
		c.armLocked()
	}
	snap := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Lookup settles url as the current input: any pending debounced lookup is
// cancelled and the outcome is recorded. After Close the state is left as is.
func (c *Controller) Lookup(url string) core.CheckState {
	text := core.Normalize(url)

	c.mu.Lock()
	if c.closed {
		st := c.lookupLocked(text)
		c.mu.Unlock()
		return st
	}
	c.cancelLocked()
	c.input = text
	c.state = c.lookupLocked(text)
	st := c.state
	snap := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap)
	return st
}

// LoadKnownURLs fetches the list once and replaces the in-memory copy.
// On failure, or without a source, the list is left empty; the error is
// logged and returned for reporting only. A fetch that completes after
// Close is discarded.
func (c *Controller) LoadKnownURLs(ctx context.Context) error {
	var (
		records []core.Record
		err     = ErrNoSource
	)
	if c.src != nil {
		records, err = c.src.Fetch(ctx)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug().Msg("Known URLs arrived after close, discarded")
		return err
	}
	if err != nil {
		c.records = nil
		c.logger.Error().Err(err).Msg("Failed to load known URLs")
	} else {
		c.records = records
		c.logger.Info().Int("records", len(records)).Msg("Known URLs loaded")
	}
	c.loaded = true
	snap := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap)
	return err
}

// Verify runs the whole check synchronously, without debouncing: it loads
// the list if needed, validates raw and looks it up.
func (c *Controller) Verify(ctx context.Context, raw string) (core.Record, error) {
	text := core.Normalize(raw)
	if text == "" {
		c.SetInput("")
		return core.Record{}, core.ErrEmptyInput
	}
	if !core.ValidateFormat(text) {
		c.SetInput(text)
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrInvalidFormat, text)
	}

	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if !loaded {
		_ = c.LoadKnownURLs(ctx)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return core.Record{}, ErrClosed
	}
	c.cancelLocked()
	c.input = text
	c.state = c.lookupLocked(text)
	rec, _ := core.Find(c.records, text)
	st := c.state
	snap := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap)
	if st.Kind != core.Found {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, text)
	}
	return rec, nil
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any pending lookup. After Close neither timers nor late
// fetches mutate state, and input changes are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelLocked()
}

func (c *Controller) armLocked() {
	gen := c.gen
	input := c.input
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(gen, input) })
	c.logger.Debug().Str("input", input).Dur("delay", c.delay).Msg("Lookup scheduled")
}

func (c *Controller) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// fire runs on the timer goroutine. A timer whose generation is stale lost
// the race with a newer input and must not touch state.
func (c *Controller) fire(gen uint64, input string) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state = c.lookupLocked(input)
	snap := c.commitLocked()
	c.mu.Unlock()

	c.logger.Debug().Str("input", input).Stringer("state", snap.State).Msg("Lookup done")
	c.notify(snap)
}

func (c *Controller) lookupLocked(url string) core.CheckState {
	if r, ok := core.Find(c.records, url); ok {
		return core.FoundState(r.Type)
	}
	return core.NotFoundState()
}

func (c *Controller) commitLocked() Snapshot {
	c.rev++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Input:    c.input,
		State:    c.state,
		Records:  slices.Clone(c.records),
		Loaded:   c.loaded,
		Revision: c.rev,
	}
}

func (c *Controller) notify(s Snapshot) {
	if c.observer != nil {
		c.observer(s)
	}
}
