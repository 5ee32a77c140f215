package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type ackCall struct {
	ack     bool
	requeue bool
}

type fakeAcker struct {
	calls []ackCall
}

func (f *fakeAcker) Ack(tag uint64, multiple bool) error {
	f.calls = append(f.calls, ackCall{ack: true})
	return nil
}

func (f *fakeAcker) Nack(tag uint64, multiple, requeue bool) error {
	f.calls = append(f.calls, ackCall{requeue: requeue})
	return nil
}

func (f *fakeAcker) Reject(tag uint64, requeue bool) error {
	f.calls = append(f.calls, ackCall{requeue: requeue})
	return nil
}

func delivery(t *testing.T, acker *fakeAcker, job InvoiceJob) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: body}
}

func newTestBroker() *RabbitMQ {
	return &RabbitMQ{queue: "invoices", policy: policy(3), log: zerolog.Nop()}
}

func TestRabbitMQHandle_AcksSuccess(t *testing.T) {
	acker := &fakeAcker{}
	newTestBroker().handle(context.Background(), func(context.Context, InvoiceJob) error { return nil },
		delivery(t, acker, InvoiceJob{OrderID: "o1"}))

	require.Equal(t, []ackCall{{ack: true}}, acker.calls)
}

func TestRabbitMQHandle_PermanentFailureIsDeadLettered(t *testing.T) {
	acker := &fakeAcker{}
	newTestBroker().handle(context.Background(), func(context.Context, InvoiceJob) error { return errPermanent },
		delivery(t, acker, InvoiceJob{OrderID: "o1"}))

	require.Equal(t, []ackCall{{requeue: false}}, acker.calls)
}

func TestRabbitMQHandle_ShutdownRequeuesInFlightJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen InvoiceJob
	h := func(ctx context.Context, job InvoiceJob) error {
		seen = job
		cancel()
		return ctx.Err()
	}

	acker := &fakeAcker{}
	newTestBroker().handle(ctx, h, delivery(t, acker, InvoiceJob{OrderID: "o1", Attempt: 1}))

	require.Equal(t, 1, seen.Attempt)
	require.Equal(t, []ackCall{{requeue: true}}, acker.calls)
}

func TestRabbitMQHandle_MalformedBody(t *testing.T) {
	acker := &fakeAcker{}
	called := false
	newTestBroker().handle(context.Background(), func(context.Context, InvoiceJob) error {
		called = true
		return errors.New("unexpected")
	}, amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: []byte("{")})

	require.False(t, called)
	require.Equal(t, []ackCall{{requeue: false}}, acker.calls)
}
