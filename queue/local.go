package queue

import (
	"context"
	"sync"
	"time"

	"bookstore/metrics"

	"github.com/rs/zerolog"
)

// LocalQueue runs jobs in-process. It is used when no broker is configured.
// Retries happen inline on the same worker with a linear backoff.
type LocalQueue struct {
	jobs    chan InvoiceJob
	policy  RetryPolicy
	backoff time.Duration
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewLocalQueue(buffer int, policy RetryPolicy, backoff time.Duration, log zerolog.Logger) *LocalQueue {
	return &LocalQueue{
		jobs:    make(chan InvoiceJob, buffer),
		policy:  policy,
		backoff: backoff,
		log:     log.With().Str("component", "invoice_queue").Str("transport", "local").Logger(),
		done:    make(chan struct{}),
	}
}

func (q *LocalQueue) Publish(ctx context.Context, job InvoiceJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}

	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *LocalQueue) Consume(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case job := <-q.jobs:
			q.run(ctx, h, job)
		}
	}
}

func (q *LocalQueue) run(ctx context.Context, h Handler, job InvoiceJob) {
	for {
		err := h(ctx, job)
		out := q.policy.decide(job, err)
		metrics.RecordInvoiceJob(out.String())

		switch out {
		case outcomeDone:
			return
		case outcomeDead:
			q.log.Error().Err(err).Str("order_id", job.OrderID).Int("attempt", job.Attempt).Msg("invoice job dropped")
			return
		}

		q.log.Warn().Err(err).Str("order_id", job.OrderID).Int("attempt", job.Attempt).Msg("invoice job failed, retrying")
		job.Attempt++
		select {
		case <-ctx.Done():
			return
		case <-time.After(q.backoff * time.Duration(job.Attempt)):
		}
	}
}

func (q *LocalQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	return nil
}
