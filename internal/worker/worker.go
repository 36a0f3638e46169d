package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/firmdesk/internal/filter"
	"go.uber.org/zap"
)

var (
	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("filter worker stopped")

	// ErrNotStarted is returned by Submit before Start.
	ErrNotStarted = errors.New("filter worker not started")
)

// DefaultBuffer is the request and response queue depth.
const DefaultBuffer = 8

// Config configures a Worker. Zero values use defaults.
type Config struct {
	Buffer int
	Clock  filter.Clock
	Logger *zap.Logger
}

// Worker filters rows on a single background goroutine, one request at a
// time. It keeps no state between requests.
type Worker struct {
	clock  filter.Clock
	logger *zap.Logger

	reqCh  chan Request
	respCh chan Response

	mu      sync.Mutex
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Worker. Call Start before submitting.
func New(cfg Config) *Worker {
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		clock:  clockOrNow(cfg.Clock),
		logger: cfg.Logger.Named("filter_worker"),
		reqCh:  make(chan Request, cfg.Buffer),
		respCh: make(chan Response, cfg.Buffer),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled or
// Stop is called. Starting twice is a no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true

	go func() {
		select {
		case <-ctx.Done():
			w.cancel()
		case <-w.ctx.Done():
		}
	}()
	go w.loop()
}

// Stop halts the worker and waits for its goroutine to exit. In-flight
// requests are dropped without a response. Stop is idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	w.cancel()
	if started {
		<-w.done
	}
}

// Done is closed once the worker has been stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.ctx.Done()
}

// Submit enqueues req. It blocks only while the request queue is full.
func (w *Worker) Submit(ctx context.Context, req Request) error {
	w.mu.Lock()
	started, stopped := w.started, w.stopped
	w.mu.Unlock()
	if stopped || w.ctx.Err() != nil {
		return ErrStopped
	}
	if !started {
		return ErrNotStarted
	}

	select {
	case w.reqCh <- req:
		return nil
	case <-w.ctx.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Responses delivers one Response per accepted Request. The channel is never
// closed; select on Done to stop waiting.
func (w *Worker) Responses() <-chan Response {
	return w.respCh
}

// Await submits req and waits for the next response. With several callers
// awaiting concurrently each receives some response, not necessarily its
// own; route by Response.ID.
func (w *Worker) Await(ctx context.Context, req Request) (Response, error) {
	if err := w.Submit(ctx, req); err != nil {
		return Response{}, err
	}
	select {
	case resp := <-w.respCh:
		return resp, nil
	case <-w.ctx.Done():
		return Response{}, ErrStopped
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.reqCh:
			resp := FilterSync(req, w.clock)
			w.observe(req, resp)
			select {
			case w.respCh <- resp:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) observe(req Request, resp Response) {
	fields := []zap.Field{
		zap.String("id", req.ID),
		zap.String("kind", string(req.Kind)),
		zap.Int("rows_in", req.Len()),
		zap.Int("rows_out", resp.Len()),
		zap.Duration("elapsed", resp.Elapsed),
	}
	if resp.Err != nil {
		w.logger.Warn("filter request failed", append(fields, zap.Error(resp.Err))...)
		return
	}
	w.logger.Debug("filter request processed", fields...)
}
