package mcrcon

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of one connection.
type State int

const (
	// StateDisconnected is the initial state and the state after a clean close.
	StateDisconnected State = iota
	// StateConnecting means the transport is open and authentication is pending.
	StateConnecting
	// StateAuthenticated means commands may be sent.
	StateAuthenticated
	// StateFaulted is entered on any error event and is terminal.
	StateFaulted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Correlator matches transport events to callers waiting on them.
//
// Each event kind has its own FIFO queue of waiters; an incoming event
// settles the oldest waiter of its kind. The transport carries no request
// identifiers, so replies can only be matched to commands if at most one
// command is awaiting a reply at a time. Exchange enforces that with a
// single in-flight slot.
//
// A Correlator serves exactly one connection: it is created for Connect
// and discarded after Disconnect.
type Correlator struct {
	transport Transport
	logger    *slog.Logger
	timeout   time.Duration

	mu      sync.Mutex
	state   State
	open    bool
	fault   error
	queues  [eventKindCount]waiterQueue
	nextID  uint64
	onFault func(error)

	// Capacity 1: holds a token while a command awaits its reply.
	inflight chan struct{}
}

// NewCorrelator creates a Correlator over transport. A zero timeout
// selects DefaultTimeout; a nil logger discards output.
func NewCorrelator(transport Transport, logger *slog.Logger, timeout time.Duration) *Correlator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Correlator{
		transport: transport,
		logger:    logger,
		timeout:   timeout,
		inflight:  make(chan struct{}, 1),
	}
}

// SetFaultHandler sets a callback invoked once when the connection faults.
// It runs on its own goroutine, so it may call Disconnect.
func (c *Correlator) SetFaultHandler(handler func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFault = handler
}

// State returns the current connection state.
func (c *Correlator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the transport and blocks until the server authenticates
// the connection, the default timeout elapses, or ctx is done.
func (c *Correlator) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected || c.open {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.state = StateConnecting
	c.open = true
	c.mu.Unlock()

	// Registered before Open so an immediate auth reply cannot be missed.
	auth := c.AwaitNext(EventAuthenticated, c.timeout)

	if err := c.transport.Open(c.Dispatch); err != nil {
		auth.Cancel()
		c.mu.Lock()
		c.open = false
		if c.state == StateConnecting {
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		return NewConnectionError("failed to open transport", err)
	}

	if _, err := auth.Wait(ctx); err != nil {
		if KindOf(err) == KindTimeout {
			err = &Error{Kind: KindConnectTimeout, Message: "no authentication reply after " + c.timeout.String()}
		}
		c.Disconnect()
		return err
	}

	c.logger.Debug("connection authenticated")
	return nil
}

// Disconnect requests transport teardown. It is a no-op if the transport
// is not open. Pending waiters fail with ErrDisconnected.
func (c *Correlator) Disconnect() error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil
	}
	c.open = false
	c.mu.Unlock()

	// Close may dispatch a final disconnected event, so the lock is not held.
	err := c.transport.Close()

	c.mu.Lock()
	if c.state != StateFaulted {
		c.state = StateDisconnected
	}
	var pending []*waiter
	for kind := range c.queues {
		pending = append(pending, c.queues[kind].drain()...)
	}
	c.mu.Unlock()

	rejectAll(pending, ErrDisconnected)
	return err
}

// SendCommand transmits text without waiting for a reply.
func (c *Correlator) SendCommand(text string) error {
	c.mu.Lock()
	state, open, fault := c.state, c.open, c.fault
	c.mu.Unlock()

	if state == StateFaulted {
		return &Error{Kind: KindFaulted, Cause: fault}
	}
	if state != StateAuthenticated || !open {
		return ErrNotConnected
	}
	if err := c.transport.Send(text); err != nil {
		return NewConnectionError("failed to send command", err)
	}
	return nil
}

// AwaitNext registers a waiter for the next event of kind. The returned
// Pending resolves to the event payload, or fails with a KindTimeout
// error once timeout elapses. A timeout <= 0 selects the default.
func (c *Correlator) AwaitNext(kind EventKind, timeout time.Duration) *Pending {
	if timeout <= 0 {
		timeout = c.timeout
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w := &waiter{
		id:       c.nextID,
		kind:     kind,
		deadline: time.Now().Add(timeout),
		result:   NewDeferred[string](),
	}
	c.nextID++

	if c.state == StateFaulted {
		w.result.Reject(&Error{Kind: KindFaulted, Cause: c.fault})
		return &Pending{correlator: c, waiter: w}
	}

	c.queues[kind].push(w)
	// The callback takes c.mu, so it cannot observe w before timer is set.
	w.timer = time.AfterFunc(timeout, func() { c.expire(w, timeout) })
	return &Pending{correlator: c, waiter: w}
}

// Exchange sends text and returns the next response event's payload.
// Concurrent callers are serialized; each waits for the previous
// exchange to finish before registering its own waiter.
func (c *Correlator) Exchange(ctx context.Context, text string, timeout time.Duration) (string, error) {
	select {
	case c.inflight <- struct{}{}:
	case <-ctx.Done():
		return "", contextError(ctx.Err())
	}
	defer func() { <-c.inflight }()

	reply := c.AwaitNext(EventResponse, timeout)
	if err := c.SendCommand(text); err != nil {
		reply.Cancel()
		return "", err
	}
	payload, err := reply.Wait(ctx)
	if err != nil {
		return "", contextError(err)
	}
	return payload, nil
}

// Dispatch routes one transport event to the oldest waiter of its kind.
// Events nobody waits for are dropped, except error events, which fault
// the connection and fail every pending waiter.
func (c *Correlator) Dispatch(event Event) {
	if event.Kind < 0 || event.Kind >= eventKindCount {
		c.logger.Warn("ignoring event of unknown kind", "kind", int(event.Kind))
		return
	}

	c.mu.Lock()
	w := c.queues[event.Kind].pop()

	var (
		failed   []*waiter
		resolved []*waiter
		failErr  error
		fault    error
		onFault  func(error)
	)

	switch event.Kind {
	case EventAuthenticated:
		if c.state == StateConnecting {
			c.state = StateAuthenticated
		}

	case EventError:
		if c.state != StateFaulted {
			c.state = StateFaulted
			c.fault = newProtocolError(event.Payload)
			fault = c.fault
			onFault = c.onFault
		}
		failErr = c.fault
		for kind := range c.queues {
			failed = append(failed, c.queues[kind].drain()...)
		}

	case EventDisconnected:
		c.open = false
		if c.state != StateFaulted {
			c.state = StateDisconnected
		}
		failErr = ErrDisconnected
		resolved = c.queues[EventDisconnected].drain()
		for _, kind := range []EventKind{EventAuthenticated, EventResponse, EventError} {
			failed = append(failed, c.queues[kind].drain()...)
		}
	}
	c.mu.Unlock()

	if w != nil {
		settle(w, event.Payload)
	} else if event.Kind != EventError {
		c.logger.Debug("dropping event with no waiter", "kind", event.Kind.String())
	}
	for _, rw := range resolved {
		settle(rw, event.Payload)
	}
	rejectAll(failed, failErr)

	if fault != nil {
		c.logger.Warn("connection faulted", "error", event.Payload)
		if onFault != nil {
			go onFault(fault)
		}
	}
}

// expire fails w with a timeout if it is still queued.
func (c *Correlator) expire(w *waiter, timeout time.Duration) {
	c.mu.Lock()
	removed := c.queues[w.kind].remove(w)
	c.mu.Unlock()

	if removed {
		c.logger.Debug("waiter expired", "kind", w.kind.String(), "id", w.id)
		w.result.Reject(newTimeoutError(w.kind, timeout.String()))
	}
}

// cancel removes w from its queue and fails it with err.
func (c *Correlator) cancel(w *waiter, err error) {
	c.mu.Lock()
	removed := c.queues[w.kind].remove(w)
	c.mu.Unlock()

	if removed {
		stopTimer(w)
		w.result.Reject(err)
	}
}

// pendingCount returns the number of queued waiters for kind.
func (c *Correlator) pendingCount(kind EventKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queues[kind].len()
}

func settle(w *waiter, payload string) {
	stopTimer(w)
	w.result.Resolve(payload)
}

func rejectAll(waiters []*waiter, err error) {
	for _, w := range waiters {
		stopTimer(w)
		w.result.Reject(err)
	}
}

func stopTimer(w *waiter) {
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Pending is a handle to one registered waiter.
type Pending struct {
	correlator *Correlator
	waiter     *waiter
}

// Wait blocks until the waiter settles or ctx is done. If ctx ends first
// the waiter is removed so a later event cannot settle it.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	payload, err := p.waiter.result.Wait(ctx)
	if err != nil && ctx.Err() != nil && err == ctx.Err() {
		p.correlator.cancel(p.waiter, err)
	}
	return payload, err
}

// Done is closed once the waiter settles.
func (p *Pending) Done() <-chan struct{} {
	return p.waiter.result.Done()
}

// Deadline returns the time at which the waiter expires.
func (p *Pending) Deadline() time.Time {
	return p.waiter.deadline
}

// Cancel removes the waiter and fails it with context.Canceled. It is a
// no-op if the waiter has already settled.
func (p *Pending) Cancel() {
	p.correlator.cancel(p.waiter, context.Canceled)
}
