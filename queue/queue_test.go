package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var errPermanent = errors.New("order not found")

func policy(max int) RetryPolicy {
	return RetryPolicy{
		MaxRetries: max,
		Permanent:  func(err error) bool { return errors.Is(err, errPermanent) },
	}
}

func TestRetryPolicy_Decide(t *testing.T) {
	p := policy(2)

	require.Equal(t, outcomeDone, p.decide(InvoiceJob{}, nil))
	require.Equal(t, outcomeRetry, p.decide(InvoiceJob{Attempt: 0}, errors.New("smtp down")))
	require.Equal(t, outcomeRetry, p.decide(InvoiceJob{Attempt: 1}, errors.New("smtp down")))
	require.Equal(t, outcomeDead, p.decide(InvoiceJob{Attempt: 2}, errors.New("smtp down")))
	require.Equal(t, outcomeDead, p.decide(InvoiceJob{Attempt: 0}, errPermanent))
}

type recorder struct {
	mu       sync.Mutex
	attempts map[string][]int
	fail     func(job InvoiceJob) error
	done     chan string
}

func newRecorder(fail func(InvoiceJob) error) *recorder {
	return &recorder{attempts: map[string][]int{}, fail: fail, done: make(chan string, 16)}
}

func (r *recorder) handle(ctx context.Context, job InvoiceJob) error {
	r.mu.Lock()
	r.attempts[job.OrderID] = append(r.attempts[job.OrderID], job.Attempt)
	r.mu.Unlock()

	err := r.fail(job)
	r.done <- job.OrderID
	return err
}

func (r *recorder) get(id string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.attempts[id]...)
}

func startLocal(t *testing.T, p RetryPolicy, h Handler) *LocalQueue {
	t.Helper()
	q := NewLocalQueue(8, p, time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = q.Consume(ctx, h) }()
	t.Cleanup(func() {
		cancel()
		_ = q.Close()
	})
	return q
}

func waitCalls(t *testing.T, r *recorder, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d handler calls", i, n)
		}
	}
}

func TestLocalQueue_DeliversJob(t *testing.T) {
	rec := newRecorder(func(InvoiceJob) error { return nil })
	q := startLocal(t, policy(3), rec.handle)

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o1", UserID: "u1"}))
	waitCalls(t, rec, 1)

	require.Equal(t, []int{0}, rec.get("o1"))
}

func TestLocalQueue_RetriesTransientFailures(t *testing.T) {
	rec := newRecorder(func(job InvoiceJob) error {
		if job.Attempt < 2 {
			return errors.New("smtp down")
		}
		return nil
	})
	q := startLocal(t, policy(3), rec.handle)

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o1"}))
	waitCalls(t, rec, 3)

	require.Equal(t, []int{0, 1, 2}, rec.get("o1"))
}

func TestLocalQueue_StopsAfterBudget(t *testing.T) {
	rec := newRecorder(func(InvoiceJob) error { return errors.New("smtp down") })
	q := startLocal(t, policy(1), rec.handle)

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o1"}))
	waitCalls(t, rec, 2)

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o2"}))
	waitCalls(t, rec, 1)

	require.Equal(t, []int{0, 1}, rec.get("o1"))
}

func TestLocalQueue_PermanentNotRetried(t *testing.T) {
	rec := newRecorder(func(job InvoiceJob) error {
		if job.OrderID == "bad" {
			return errPermanent
		}
		return nil
	})
	q := startLocal(t, policy(3), rec.handle)

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "bad"}))
	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "good"}))
	waitCalls(t, rec, 2)

	require.Equal(t, []int{0}, rec.get("bad"))
}

func TestLocalQueue_PublishAfterClose(t *testing.T) {
	q := NewLocalQueue(1, policy(1), time.Millisecond, zerolog.Nop())
	require.NoError(t, q.Close())

	err := q.Publish(context.Background(), InvoiceJob{OrderID: "o1"})
	require.ErrorIs(t, err, ErrClosed)
}

func TestLocalQueue_Full(t *testing.T) {
	q := NewLocalQueue(1, policy(1), time.Millisecond, zerolog.Nop())
	defer q.Close()

	require.NoError(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o1"}))
	require.ErrorIs(t, q.Publish(context.Background(), InvoiceJob{OrderID: "o2"}), ErrQueueFull)
}
