package operator

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/club-budget-server/internal/operator/actions"
	"github.com/carson-networks/club-budget-server/internal/storage"
)

// IOperatorDelegator is what services use to run ledger mutations.
type IOperatorDelegator interface {
	Process(ctx context.Context, action actions.IAction) error
}

var _ IOperatorDelegator = (*OperatorDelegator)(nil)

// ErrStopped is returned by Process once Stop has been called.
var ErrStopped = errors.New("operator: delegator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    storage.Backend
	queue      chan ActionItem
	numWorkers int
	newBackOff func() backoff.BackOff
	log        *logrus.Logger
	wg         sync.WaitGroup
	stopOnce   sync.Once

	// mu guards stopped and the queue close against concurrent sends.
	mu      sync.RWMutex
	stopped bool
}

type Option func(*OperatorDelegator)

// WithBackOff replaces the retry policy used for conflicting writes.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(d *OperatorDelegator) {
		d.newBackOff = newBackOff
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(d *OperatorDelegator) {
		d.log = log
	}
}

func NewOperatorDelegator(s storage.Backend, numWorkers int, opts ...Option) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	d := &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
		newBackOff: DefaultBackOff,
		log:        discard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.newBackOff, d.log)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop closes the queue and waits for in-flight items to finish. Later calls
// to Process fail with ErrStopped.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
