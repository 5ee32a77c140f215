package queue

import (
	"context"
	"errors"
)

var (
	ErrClosed    = errors.New("queue: closed")
	ErrQueueFull = errors.New("queue: full")
)

// InvoiceJob asks the worker to email the invoice for one order.
type InvoiceJob struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Attempt int    `json:"attempt"`
}

type Handler func(ctx context.Context, job InvoiceJob) error

type Publisher interface {
	Publish(ctx context.Context, job InvoiceJob) error
}

// Queue is a publisher that can also run the consuming side.
// Consume blocks until ctx is cancelled or the queue is closed.
type Queue interface {
	Publisher
	Consume(ctx context.Context, h Handler) error
	Close() error
}

// RetryPolicy decides what happens to a job after its handler returns.
// Attempt is zero based, so a job runs at most MaxRetries+1 times.
type RetryPolicy struct {
	MaxRetries int
	Permanent  func(error) bool
}

type outcome int

const (
	outcomeDone outcome = iota
	outcomeRetry
	outcomeDead
)

func (o outcome) String() string {
	switch o {
	case outcomeDone:
		return "sent"
	case outcomeRetry:
		return "retried"
	}
	return "dead"
}

func (p RetryPolicy) decide(job InvoiceJob, err error) outcome {
	if err == nil {
		return outcomeDone
	}
	if p.Permanent != nil && p.Permanent(err) {
		return outcomeDead
	}
	if job.Attempt >= p.MaxRetries {
		return outcomeDead
	}
	return outcomeRetry
}
