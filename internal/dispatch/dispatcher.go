// Package dispatch orchestrates command processing: the priority queue and
// its worker loop for fire-and-forget submission, and the synchronous
// execute path for callers that need the result payload. Both paths share
// one dispatch primitive and one discipline: session state is re-fetched
// fresh before every dispatch, persisted at most once per command, and any
// error aborts the command, its cascade and (on the worker) the loop.
package dispatch

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// ErrHalted is returned by Submit after a worker failure that has not yet
// been collected via WaitForCompletion. The pipeline fails fast: a broken
// handler stops draining rather than dropping work silently.
var ErrHalted = errors.New("dispatcher halted by previous failure")

// Rebuilder rebuilds derived session fields. It runs when a result sets
// Recompute, always before persistence.
type Rebuilder interface {
	Rebuild(s *state.Session) error
}

// Metrics is a point-in-time snapshot of dispatcher counters.
type Metrics struct {
	Submitted  int64
	Dispatched int64
	Saved      int64
	Failed     int64
	QueueDepth int
}

// Dispatcher owns the queue, the registry lookup and both call paths. It is
// constructed explicitly at the composition root; there is no global
// instance.
type Dispatcher struct {
	store    state.Store
	registry *handler.Registry
	rebuild  Rebuilder
	log      *zap.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    commandQueue
	seq      uint64
	draining bool
	haltErr  error

	// flight serializes command processing across the worker loop and
	// synchronous Execute calls: exactly one command (or one Execute
	// cascade) is in flight at a time.
	flight sync.Mutex

	submitted  int64
	dispatched int64
	saved      int64
	failed     int64
}

// New creates a dispatcher. rebuild may be nil when no derived state exists,
// in which case Recompute flags only force persistence.
func New(store state.Store, registry *handler.Registry, rebuild Rebuilder, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		store:    store,
		registry: registry,
		rebuild:  rebuild,
		log:      log,
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Submit appends the command to the priority queue and returns immediately,
// starting a worker goroutine if none is draining. It fails only when the
// pipeline halted on a previous error that has not been collected yet.
func (d *Dispatcher) Submit(cmd command.Command) error {
	d.mu.Lock()
	if d.haltErr != nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrHalted, d.haltErr)
	}
	d.enqueueLocked(cmd)
	d.ensureWorkerLocked()
	d.mu.Unlock()

	atomic.AddInt64(&d.submitted, 1)
	d.log.Debug("command queued",
		zap.String("id", cmd.ID()),
		zap.String("kind", string(cmd.Kind())),
		zap.String("session", cmd.SessionID()),
		zap.Stringer("priority", cmd.Priority()))
	return nil
}

func (d *Dispatcher) enqueueLocked(cmd command.Command) {
	d.seq++
	heap.Push(&d.queue, pending{cmd: cmd, seq: d.seq})
}

func (d *Dispatcher) ensureWorkerLocked() {
	if d.draining {
		return
	}
	d.draining = true
	go d.drain()
}

// drain pops the highest-priority command, processes it to completion, and
// repeats until the queue is empty or a command fails. Follow-ups go back
// onto the queue and compete for priority like any other command.
func (d *Dispatcher) drain() {
	for {
		d.mu.Lock()
		if d.haltErr != nil || d.queue.Len() == 0 {
			d.draining = false
			d.cond.Broadcast()
			d.mu.Unlock()
			return
		}
		item := heap.Pop(&d.queue).(pending)
		d.mu.Unlock()

		if err := d.process(context.Background(), item.cmd); err != nil {
			atomic.AddInt64(&d.failed, 1)
			d.log.Error("worker halted",
				zap.String("id", item.cmd.ID()),
				zap.String("kind", string(item.cmd.Kind())),
				zap.Error(err))

			d.mu.Lock()
			d.haltErr = err
			d.draining = false
			d.cond.Broadcast()
			d.mu.Unlock()
			return
		}
	}
}

// process runs one queued command: fresh state fetch, dispatch, persistence,
// and requeueing of follow-ups.
func (d *Dispatcher) process(ctx context.Context, cmd command.Command) error {
	d.flight.Lock()
	defer d.flight.Unlock()

	st, err := d.store.Get(ctx, cmd.SessionID())
	if err != nil {
		return fmt.Errorf("fetching state for %s: %w", cmd.ID(), err)
	}

	res, err := d.dispatchOnce(ctx, cmd, st)
	if err != nil {
		return err
	}
	if err := d.finalize(ctx, cmd, st, res); err != nil {
		return err
	}

	d.mu.Lock()
	for _, follow := range res.FollowUps() {
		d.enqueueLocked(follow)
	}
	d.mu.Unlock()
	return nil
}

// Execute dispatches the command immediately and returns its payload. The
// follow-up cascade is drained inline, depth-first in append order, each
// step re-fetching state, before the root payload is returned.
func (d *Dispatcher) Execute(ctx context.Context, cmd command.Command) (any, error) {
	d.flight.Lock()
	defer d.flight.Unlock()
	return d.execute(ctx, cmd)
}

func (d *Dispatcher) execute(ctx context.Context, cmd command.Command) (any, error) {
	st, err := d.store.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, fmt.Errorf("fetching state for %s: %w", cmd.ID(), err)
	}

	res, err := d.dispatchOnce(ctx, cmd, st)
	if err != nil {
		return nil, err
	}
	if err := d.finalize(ctx, cmd, st, res); err != nil {
		return nil, err
	}

	for _, follow := range res.FollowUps() {
		if _, err := d.execute(ctx, follow); err != nil {
			return nil, err
		}
	}
	return res.Payload, nil
}

// dispatchOnce is the single dispatch primitive shared by both call paths:
// registry lookup, supported-set check, handler invocation.
func (d *Dispatcher) dispatchOnce(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	h, err := d.registry.Resolve(cmd.HandlerName())
	if err != nil {
		return nil, fmt.Errorf("dispatching %s (%s): %w", cmd.ID(), cmd.Kind(), err)
	}
	if !h.CanHandle(cmd) {
		return nil, fmt.Errorf("dispatching %s: %w: %s does not accept %s",
			cmd.ID(), handler.ErrUnsupportedCommand, cmd.HandlerName(), cmd.Kind())
	}

	res, err := h.Handle(ctx, cmd, st)
	if err != nil {
		return nil, fmt.Errorf("handling %s (%s): %w", cmd.ID(), cmd.Kind(), err)
	}
	if res == nil {
		return nil, fmt.Errorf("handling %s (%s): handler returned no result and no error", cmd.ID(), cmd.Kind())
	}

	atomic.AddInt64(&d.dispatched, 1)
	return res, nil
}

// finalize acts on the result's flags: rebuild derived state when requested,
// then persist when anything changed. Save runs at most once per command.
func (d *Dispatcher) finalize(ctx context.Context, cmd command.Command, st *state.Session, res *command.Result) error {
	if res.Recompute && d.rebuild != nil {
		if err := d.rebuild.Rebuild(st); err != nil {
			return fmt.Errorf("recomputing state for %s: %w", cmd.ID(), err)
		}
	}
	if res.Mutated || res.Recompute {
		if err := d.store.Save(ctx, st); err != nil {
			return fmt.Errorf("persisting state for %s: %w", cmd.ID(), err)
		}
		atomic.AddInt64(&d.saved, 1)
	}
	return nil
}

// WaitForCompletion blocks until the worker has drained the queue, then
// returns and clears the first failure if the loop halted. Callers that
// submitted asynchronously use it as a synchronization point before
// responding externally.
func (d *Dispatcher) WaitForCompletion() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for d.draining {
		d.cond.Wait()
	}
	err := d.haltErr
	d.haltErr = nil
	return err
}

// QueueDepth returns the number of commands waiting in the queue.
func (d *Dispatcher) QueueDepth() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Len()
}

// Metrics returns a snapshot of dispatcher counters.
func (d *Dispatcher) Metrics() Metrics {
	return Metrics{
		Submitted:  atomic.LoadInt64(&d.submitted),
		Dispatched: atomic.LoadInt64(&d.dispatched),
		Saved:      atomic.LoadInt64(&d.saved),
		Failed:     atomic.LoadInt64(&d.failed),
		QueueDepth: d.QueueDepth(),
	}
}
