package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrDispatcherStopped = errors.New("dispatcher is stopped")

// EventRouter handles one event to completion.
type EventRouter interface {
	Route(ctx context.Context, ev Event) error
}

// Dispatcher runs events on a fixed set of workers. Every actor is pinned to
// one worker, so events of one actor are handled one at a time in arrival
// order while different actors proceed concurrently.
type Dispatcher struct {
	router  EventRouter
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.RWMutex
	stopped bool
	shards  []chan Event
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given number of workers, each
// buffering up to queueSize events. timeout bounds the handling of one event;
// zero means no bound beyond the caller's context.
func NewDispatcher(router EventRouter, workers, queueSize int, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	shards := make([]chan Event, workers)
	for i := range shards {
		shards[i] = make(chan Event, queueSize)
	}

	return &Dispatcher{
		router:  router,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "dispatcher")),
		shards:  shards,
	}
}

// Start launches the workers. Events are handled with contexts derived from ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, shard := range d.shards {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for ev := range shard {
				d.handle(ctx, ev)
			}
			d.logger.Debug("worker stopped", zap.Int("worker", i))
		}()
	}
	d.logger.Info("dispatcher started", zap.Int("workers", len(d.shards)))
}

// Submit queues ev on its actor's worker. It blocks while that worker's queue
// is full, until ctx is done.
func (d *Dispatcher) Submit(ctx context.Context, ev Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.shards[d.shardOf(ev)] <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new events, lets the workers drain what is queued and waits for
// them to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, shard := range d.shards {
		close(shard)
	}
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}

func (d *Dispatcher) shardOf(ev Event) int {
	return int(uint64(ev.ActorID.Int64()) % uint64(len(d.shards)))
}

func (d *Dispatcher) handle(ctx context.Context, ev Event) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("event handler panicked",
				zap.String("kind", string(ev.Kind)),
				zap.Int64("actor_id", ev.ActorID.Int64()),
				zap.Any("panic", p),
			)
		}
	}()

	_ = d.router.Route(ctx, ev)
}
