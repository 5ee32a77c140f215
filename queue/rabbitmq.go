package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bookstore/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// RabbitMQ carries invoice jobs on a durable queue. Jobs that exhaust their
// retries, or fail permanently, are rejected into <queue>.dead through the
// <queue>.dlx exchange.
type RabbitMQ struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	policy RetryPolicy
	log    zerolog.Logger

	pubMu sync.Mutex
}

func NewRabbitMQ(url, queue string, policy RetryPolicy, log zerolog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	r := &RabbitMQ{
		conn:   conn,
		ch:     ch,
		queue:  queue,
		policy: policy,
		log:    log.With().Str("component", "invoice_queue").Str("transport", "rabbitmq").Logger(),
	}
	if err := r.SetupQueues(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *RabbitMQ) deadExchange() string { return r.queue + ".dlx" }
func (r *RabbitMQ) deadQueue() string    { return r.queue + ".dead" }

func (r *RabbitMQ) SetupQueues() error {
	if err := r.ch.ExchangeDeclare(
		r.deadExchange(),
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare dead-letter exchange: %w", err)
	}

	if _, err := r.ch.QueueDeclare(
		r.deadQueue(),
		true,
		false,
		false,
		false,
		amqp.Table{"x-queue-type": "classic"},
	); err != nil {
		return fmt.Errorf("declare dead-letter queue: %w", err)
	}

	if err := r.ch.QueueBind(r.deadQueue(), r.deadQueue(), r.deadExchange(), false, nil); err != nil {
		return fmt.Errorf("bind dead-letter queue: %w", err)
	}

	if _, err := r.ch.QueueDeclare(
		r.queue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    r.deadExchange(),
			"x-dead-letter-routing-key": r.deadQueue(),
		},
	); err != nil {
		return fmt.Errorf("declare invoice queue: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Publish(ctx context.Context, job InvoiceJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	return r.ch.PublishWithContext(ctx,
		"",
		r.queue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (r *RabbitMQ) Consume(ctx context.Context, h Handler) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp consumer channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("amqp qos: %w", err)
	}

	msgs, err := ch.Consume(
		r.queue,
		"invoice-worker",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			r.handle(ctx, h, msg)
		}
	}
}

func (r *RabbitMQ) handle(ctx context.Context, h Handler, msg amqp.Delivery) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Msg("invoice handler panicked")
			_ = msg.Nack(false, false)
		}
	}()

	var job InvoiceJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		r.log.Error().Err(err).Str("message_id", msg.MessageId).Msg("malformed invoice job")
		_ = msg.Nack(false, false)
		return
	}

	err := h(ctx, job)
	if err != nil && ctx.Err() != nil {
		// shutdown cut the job short; hand it back unchanged for the next worker
		metrics.RecordInvoiceJob("interrupted")
		r.log.Warn().Err(err).Str("order_id", job.OrderID).Msg("invoice job interrupted, requeueing")
		_ = msg.Nack(false, true)
		return
	}

	out := r.policy.decide(job, err)
	metrics.RecordInvoiceJob(out.String())

	switch out {
	case outcomeDone:
		_ = msg.Ack(false)

	case outcomeRetry:
		r.log.Warn().Err(err).Str("order_id", job.OrderID).Int("attempt", job.Attempt).Msg("invoice job failed, retrying")
		job.Attempt++
		if pubErr := r.Publish(context.WithoutCancel(ctx), job); pubErr != nil {
			r.log.Error().Err(pubErr).Str("order_id", job.OrderID).Msg("requeue failed, dead-lettering")
			_ = msg.Nack(false, false)
			return
		}
		_ = msg.Ack(false)

	case outcomeDead:
		r.log.Error().Err(err).Str("order_id", job.OrderID).Int("attempt", job.Attempt).Msg("invoice job dead-lettered")
		_ = msg.Nack(false, false)
	}
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
