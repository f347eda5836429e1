package mcrcon

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// FaultHandler is a callback invoked when the server reports an error
// and the connection faults. It runs on its own goroutine.
type FaultHandler func(err error)

// Client is an RCON client for one Minecraft server.
//
// Each Connect builds a fresh transport and Correlator; Disconnect
// discards them. Commands are serialized: at most one awaits a reply at
// any time, so replies always match the command that produced them.
//
// Thread Safety:
// The client uses a mutex to protect its state and is safe for concurrent
// use from multiple goroutines.
type Client struct {
	mu sync.Mutex

	options      Options
	correlator   *Correlator
	faultHandler FaultHandler
}

// NewClient creates a new client. Unset options take their defaults.
func NewClient(options Options) *Client {
	return &Client{options: options.withDefaults()}
}

// Options returns the effective options.
func (c *Client) Options() Options {
	return c.options
}

// SetFaultHandler sets the callback for connection faults. The callback
// runs on its own goroutine and may call Disconnect or Connect.
func (c *Client) SetFaultHandler(handler FaultHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faultHandler = handler
	if c.correlator != nil {
		c.correlator.SetFaultHandler(handler)
	}
}

// State returns the state of the current connection.
func (c *Client) State() State {
	c.mu.Lock()
	correlator := c.correlator
	c.mu.Unlock()

	if correlator == nil {
		return StateDisconnected
	}
	return correlator.State()
}

// IsConnected returns true if the client is authenticated and open.
func (c *Client) IsConnected() bool {
	return c.State() == StateAuthenticated
}

// Connect dials the server and authenticates.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	previous := c.correlator
	if previous != nil {
		switch previous.State() {
		case StateConnecting, StateAuthenticated:
			c.mu.Unlock()
			return ErrAlreadyConnected
		}
	}

	transport := c.options.Transport(c.options)
	correlator := NewCorrelator(transport, c.options.Logger, c.options.Timeout)
	correlator.SetFaultHandler(c.faultHandler)
	c.correlator = correlator
	c.mu.Unlock()

	// A faulted or closed connection is released before reconnecting.
	if previous != nil {
		previous.Disconnect()
	}

	c.options.Logger.Debug("connecting", "host", c.options.Host, "port", c.options.Port)
	if err := correlator.Connect(ctx); err != nil {
		c.mu.Lock()
		if c.correlator == correlator && correlator.State() != StateFaulted {
			c.correlator = nil
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// Disconnect closes the connection. It is safe to call when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	correlator := c.correlator
	c.correlator = nil
	c.mu.Unlock()

	if correlator == nil {
		return nil
	}
	return correlator.Disconnect()
}

// Exchange sends text and returns the raw reply without interpreting it.
// A deadline on ctx replaces Options.Timeout for this call.
func (c *Client) Exchange(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	correlator := c.correlator
	c.mu.Unlock()

	if correlator == nil {
		return "", ErrNotConnected
	}

	timeout := c.options.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", contextError(context.DeadlineExceeded)
		}
	}
	return correlator.Exchange(ctx, text, timeout)
}

// SendRaw sends a command line and returns the reply. Replies reporting
// an unknown command or a bad argument are returned as errors.
func (c *Client) SendRaw(ctx context.Context, text string) (string, error) {
	reply, err := RawCommand{Line: text}.Run(ctx, c)
	if err != nil {
		return "", err
	}
	return reply.(string), nil
}

// SendRawWithTimeout sends a raw command with a custom timeout, which may
// be longer or shorter than Options.Timeout.
func (c *Client) SendRawWithTimeout(text string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.SendRaw(ctx, text)
}

// Run executes a parsed command.
func (c *Client) Run(ctx context.Context, cmd Runnable) (any, error) {
	return cmd.Run(ctx, c)
}

// ListPlayers returns the online players, with UUIDs if requested.
func (c *Client) ListPlayers(ctx context.Context, uuids bool) ([]PlayerEntry, error) {
	cmd, err := ListCommand.Prepare(ListArgs{UUIDs: uuids})
	if err != nil {
		return nil, err
	}
	return cmd.Execute(ctx, c)
}

// GameRule returns the current value of rule.
func (c *Client) GameRule(ctx context.Context, rule string) (RuleValue, error) {
	cmd, err := GameRuleCommand.Prepare(GameRuleArgs{Rule: rule})
	if err != nil {
		return RuleValue{}, err
	}
	return cmd.Execute(ctx, c)
}

// SetGameRule sets rule to value and returns the value the server reports.
// Numeric rules are rounded to the nearest integer.
func (c *Client) SetGameRule(ctx context.Context, rule string, value RuleValue) (RuleValue, error) {
	cmd, err := GameRuleCommand.Prepare(GameRuleArgs{Rule: rule, Value: &value})
	if err != nil {
		return RuleValue{}, err
	}
	return cmd.Execute(ctx, c)
}

// Give gives count of item to target.
func (c *Client) Give(ctx context.Context, target, item string, count int) error {
	cmd, err := GiveCommand.Prepare(GiveArgs{Target: target, Item: item, Count: count})
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}

// Kill kills the entities matched by target.
func (c *Client) Kill(ctx context.Context, target string) error {
	cmd, err := KillCommand.Prepare(KillArgs{Target: target})
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}

// Say broadcasts message to all players.
func (c *Client) Say(ctx context.Context, message string) error {
	cmd, err := SayCommand.Prepare(SayArgs{Message: message})
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}

// QueryTime reads one of the world clocks.
func (c *Client) QueryTime(ctx context.Context, target TimeQueryTarget) (int64, error) {
	return c.runTime(ctx, TimeArgs{Action: TimeQuery, Target: string(target)})
}

// SetTime sets the time of day in ticks.
func (c *Client) SetTime(ctx context.Context, ticks int64) (int64, error) {
	return c.runTime(ctx, TimeArgs{Action: TimeSet, Target: strconv.FormatInt(ticks, 10)})
}

// AddTime advances the time of day by ticks.
func (c *Client) AddTime(ctx context.Context, ticks int64) (int64, error) {
	return c.runTime(ctx, TimeArgs{Action: TimeAdd, Target: strconv.FormatInt(ticks, 10)})
}

func (c *Client) runTime(ctx context.Context, args TimeArgs) (int64, error) {
	cmd, err := TimeCommand.Prepare(args)
	if err != nil {
		return 0, err
	}
	return cmd.Execute(ctx, c)
}

// SaveAll saves the world, flushing chunks to disk if flush is set.
func (c *Client) SaveAll(ctx context.Context, flush bool) error {
	cmd, err := SaveCommand.Prepare(SaveArgs{Flush: flush})
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}

// Stop stops the server. The server closes the connection afterwards.
func (c *Client) Stop(ctx context.Context) error {
	cmd, err := StopCommand.Prepare(struct{}{})
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}

// Seed returns the world seed.
func (c *Client) Seed(ctx context.Context) (int64, error) {
	cmd, err := SeedCommand.Prepare(struct{}{})
	if err != nil {
		return 0, err
	}
	return cmd.Execute(ctx, c)
}

// Advancement grants or revokes advancements.
func (c *Client) Advancement(ctx context.Context, args AdvancementArgs) error {
	cmd, err := AdvancementCommand.Prepare(args)
	if err != nil {
		return err
	}
	_, err = cmd.Execute(ctx, c)
	return err
}
