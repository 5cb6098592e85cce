package operator

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/operator/actions"
	"github.com/carson-networks/club-budget-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage    storage.Backend
	queue      chan ActionItem
	newBackOff func() backoff.BackOff
	log        *logrus.Logger
}

func NewOperator(s storage.Backend, queue chan ActionItem, newBackOff func() backoff.BackOff, log *logrus.Logger) *Operator {
	return &Operator{
		storage:    s,
		queue:      queue,
		newBackOff: newBackOff,
		log:        log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

// processItem runs the action until it commits, fails with anything other
// than a conflicting write, or runs out of retries.
func (o *Operator) processItem(item ActionItem) {
	attempts := 0
	attempt := func() error {
		attempts++
		err := o.performOnce(item.ctx, item.action)
		if err == nil || errors.Is(err, ledger.ErrConflictingWrite) {
			return err
		}
		return backoff.Permanent(err)
	}

	notify := func(err error, wait time.Duration) {
		o.log.WithError(err).
			WithField("attempt", attempts).
			WithField("waitMs", wait.Milliseconds()).
			Warn("Operator.processItem.retry")
	}

	err := backoff.RetryNotify(attempt, backoff.WithContext(o.newBackOff(), item.ctx), notify)
	if logData := logging.GetLogData(item.ctx); logData != nil {
		logData.AddData("operatorAttempts", attempts)
	}
	item.response <- ActionItemResponse{err: err, attempts: attempts}
}

// performOnce runs one attempt inside its own storage transaction. Time spent
// across attempts accumulates under writeMs in the request's LogData.
func (o *Operator) performOnce(ctx context.Context, action actions.IAction) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("writeMs")()
	}

	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	err = action.Perform(ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		return err
	}

	return writer.Commit()
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err      error
	attempts int
}

// DefaultBackOff retries conflicting writes a handful of times over roughly a
// second before giving up with ErrConflictingWrite.
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return backoff.WithMaxRetries(b, 8)
}
