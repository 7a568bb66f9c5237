package chat

import (
	"context"
	"sync"
	"time"

	"github.com/dkim82/studyhall/internal/api"
	"github.com/dkim82/studyhall/internal/request"
)

// DefaultPollInterval is the cadence for incremental message fetches.
const DefaultPollInterval = 3 * time.Second

// Controller keeps a local ordered message log for one group chat
// eventually consistent with the server: an initial full fetch, then
// periodic fetches of messages newer than the cursor. Exactly one
// controller is alive per open chat screen, and StopPolling must run
// on every exit path of the owning screen.
type Controller struct {
	service  api.ChatService
	groupID  int64
	interval time.Duration

	mu       sync.Mutex
	epoch    uint64
	state    request.State[[]api.Message]
	cursor   string
	inFlight bool
	stopPoll context.CancelFunc
	stopped  bool
}

// Snapshot is the controller state handed to the presentation layer.
// Messages are ascending by CreatedAt with no duplicate ids.
type Snapshot struct {
	Phase    request.Phase
	Messages []api.Message
	Reason   string
	Cursor   string
}

// NewController builds a controller for one group's chat. A zero
// interval uses DefaultPollInterval.
func NewController(service api.ChatService, groupID int64, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Controller{
		service:  service,
		groupID:  groupID,
		interval: interval,
	}
}

// Start performs the initial full fetch: publishes Loading, fetches
// every message, orders them ascending, records the cursor from the
// newest message and publishes Success. On failure it publishes Error
// without touching the cursor. Calling Start again supersedes any
// in-flight work; a stale response is discarded.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.state.Begin()
	c.mu.Unlock()

	messages, err := c.service.Messages(ctx, c.groupID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return
	}
	if err != nil {
		c.state.Fail(request.Describe(err))
		return
	}
	ordered := orderMessages(messages)
	if len(ordered) > 0 {
		c.cursor = ordered[len(ordered)-1].CreatedAt
	}
	c.state.Succeed(ordered)
}

// BeginPolling starts the repeating incremental fetch. Any previously
// running timer for this controller is cancelled first, so at most one
// timer is ever active. The timer stops when ctx is cancelled or
// StopPolling is called. Calling BeginPolling on a controller that has
// been stopped is a no-op: the screen startup runs Start and
// BeginPolling asynchronously, so teardown can land between the two,
// and the late BeginPolling must not revive a timer nothing will ever
// cancel.
func (c *Controller) BeginPolling(ctx context.Context) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.stopPoll != nil {
		c.stopPoll()
	}
	pollCtx, cancel := context.WithCancel(ctx)
	c.stopPoll = cancel
	interval := c.interval
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				c.pollOnce(pollCtx)
			}
		}
	}()
}

// StopPolling cancels the active timer and retires the controller.
// Safe to call when nothing is running. Results of requests already in
// flight when the timer was cancelled are discarded, and any later
// BeginPolling is refused.
func (c *Controller) StopPolling() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopPoll != nil {
		c.stopPoll()
		c.stopPoll = nil
	}
	c.stopped = true
	c.epoch++
}

// pollOnce runs one poll tick. Ticks are skipped while the cursor is
// unset, while a previous tick's fetch is still in flight, or while
// the state is not Success. Fetch failures are swallowed: transient
// network trouble never surfaces during polling.
func (c *Controller) pollOnce(ctx context.Context) {
	c.mu.Lock()
	if c.cursor == "" || c.inFlight || !c.state.IsSuccess() {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	epoch := c.epoch
	after := c.cursor
	c.mu.Unlock()

	incoming, err := c.service.MessagesAfter(ctx, c.groupID, after)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil || epoch != c.epoch || !c.state.IsSuccess() {
		return
	}
	if len(incoming) == 0 {
		return
	}
	c.state.Succeed(appendNew(c.state.Value(), incoming))
	c.advanceCursor(incoming[len(incoming)-1].CreatedAt)
}

// Send submits a message. The message is shown only once the server
// echoes it back: on success the confirmed copy is appended and the
// cursor advanced; on failure the conversation state is untouched and
// the error is returned to the caller. Concurrent sends are not
// deduplicated.
func (c *Controller) Send(ctx context.Context, userID int64, content string) error {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	message, err := c.service.SendMessage(ctx, c.groupID, userID, content)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || !c.state.IsSuccess() {
		return nil
	}
	c.state.Succeed(appendNew(c.state.Value(), []api.Message{message}))
	c.advanceCursor(message.CreatedAt)
	return nil
}

// Snapshot returns an independent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Phase:  c.state.Phase(),
		Reason: c.state.Reason(),
		Cursor: c.cursor,
	}
	if messages := c.state.Value(); len(messages) > 0 {
		snap.Messages = make([]api.Message, len(messages))
		copy(snap.Messages, messages)
	}
	return snap
}

// advanceCursor moves the cursor forward, never backward. Callers must
// hold c.mu.
func (c *Controller) advanceCursor(candidate string) {
	if candidate == "" {
		return
	}
	if c.cursor == "" || timestampBefore(c.cursor, candidate) {
		c.cursor = candidate
	}
}
