package normalizer

import (
	"context"
	"sync"
	"time"

	"github.com/nabeel-hussain/ToDoApp/internal/model"
)

type Fetcher interface {
	List(ctx context.Context, req model.PageRequest) (*model.PagedResult[*model.Task], error)
}

type Mutator interface {
	Create(ctx context.Context, title string, description *string, dueDate *time.Time) (*model.Task, error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	ToggleStatus(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is what a view renders: the canonical state plus the last accepted response.
type Snapshot struct {
	State  State
	Result *model.PagedResult[*model.Task]
	Err    error
	Busy   bool
}

// Pending counts unfinished tasks on the current page.
func (s Snapshot) Pending() int {
	if s.Result == nil {
		return 0
	}
	n := 0
	for _, t := range s.Result.Data {
		if !t.IsDone {
			n++
		}
	}
	return n
}

type Option func(*Controller)

func WithState(s State) Option { return func(c *Controller) { c.state = s } }

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = NewDebouncer(d) }
}

// WithSubscriber registers fn to receive every snapshot change. It is called
// without locks held and may run on any goroutine.
func WithSubscriber(fn func(Snapshot)) Option { return func(c *Controller) { c.onChange = fn } }

// Controller owns the list state. Each state change issues one fetch; a newer
// fetch cancels the one in flight and responses carrying an old token are dropped.
type Controller struct {
	fetcher Fetcher
	mutator Mutator

	seq      Sequencer
	debounce *Debouncer
	onChange func(Snapshot)

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup

	mu       sync.Mutex
	state    State
	result   *model.PagedResult[*model.Task]
	err      error
	busy     bool
	inflight context.CancelFunc
	closed   bool
}

func NewController(f Fetcher, m Mutator, opts ...Option) *Controller {
	c := &Controller{
		fetcher: f,
		mutator: m,
		state:   Initial(model.DefaultPageSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.debounce == nil {
		c.debounce = NewDebouncer(DefaultDebounce)
	}
	c.baseCtx, c.stop = context.WithCancel(context.Background())
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Result: c.result, Err: c.err, Busy: c.busy}
}

func (c *Controller) notify(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// Dispatch applies a to the state and refreshes when anything changed.
func (c *Controller) Dispatch(a Action) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	next := Reduce(c.state, a)
	changed := next != c.state
	c.state = next
	c.mu.Unlock()
	if changed {
		c.Refresh()
	}
	return changed
}

// SearchInput records a keystroke-level change; the query updates only after
// the debounce delay passes without another call.
func (c *Controller) SearchInput(text string) {
	c.debounce.Trigger(func() { c.Dispatch(SearchSettled{Text: text}) })
}

// Refresh re-fetches the current state and returns the request token.
func (c *Controller) Refresh() uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.inflight = cancel
	token := c.seq.Next()
	req := c.state.Request()
	c.busy = true
	snap := c.snapshotLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	c.notify(snap)
	go func() {
		defer c.wg.Done()
		defer cancel()
		res, err := c.fetcher.List(ctx, req)
		c.complete(token, res, err)
	}()
	return token
}

func (c *Controller) complete(token uint64, res *model.PagedResult[*model.Task], err error) {
	c.mu.Lock()
	if c.closed || !c.seq.IsLatest(token) {
		c.mu.Unlock()
		return
	}
	c.busy = false
	c.inflight = nil
	if err != nil {
		c.err = err
	} else {
		c.result, c.err = res, nil
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.err = err
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Mutations run synchronously; a success is followed by a refresh, a failure
// is kept in the snapshot and returned.

func (c *Controller) Add(ctx context.Context, title string, description *string, dueDate *time.Time) (*model.Task, error) {
	t, err := c.mutator.Create(ctx, title, description, dueDate)
	return c.afterMutation(t, err)
}

func (c *Controller) Save(ctx context.Context, t *model.Task) (*model.Task, error) {
	out, err := c.mutator.Update(ctx, t)
	return c.afterMutation(out, err)
}

func (c *Controller) Toggle(ctx context.Context, t *model.Task) (*model.Task, error) {
	out, err := c.mutator.ToggleStatus(ctx, t)
	return c.afterMutation(out, err)
}

func (c *Controller) Remove(ctx context.Context, id string) error {
	_, err := c.afterMutation(nil, c.mutator.Delete(ctx, id))
	return err
}

func (c *Controller) afterMutation(t *model.Task, err error) (*model.Task, error) {
	if err != nil {
		c.fail(err)
		return nil, err
	}
	c.Refresh()
	return t, nil
}

// Close cancels the debounce timer and any fetch in flight and waits for
// outstanding fetch goroutines. Later callbacks are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.inflight != nil {
		c.inflight()
	}
	c.mu.Unlock()
	c.debounce.Close()
	c.stop()
	c.wg.Wait()
}
