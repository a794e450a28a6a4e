package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CreditGranter is the slice of the credit service the consumer needs.
type CreditGranter interface {
	AddCredits(ctx context.Context, accountID uuid.UUID, amount int, source, paymentRef string) (int, error)
}

// PaymentConsumer listens on the payment-confirmation queue and turns each
// verified purchase into a credit grant.
type PaymentConsumer struct {
	url     string
	queue   string
	credits CreditGranter
	log     *zap.Logger
}

func NewPaymentConsumer(url, queueName string, credits CreditGranter, log *zap.Logger) *PaymentConsumer {
	return &PaymentConsumer{
		url:     url,
		queue:   queueName,
		credits: credits,
		log:     log.With(zap.String("consumer", queueName)),
	}
}

// Run connects to the broker, declares the durable queue and consumes
// messages until ctx is cancelled. Connection failures trigger a reconnect
// loop with exponential backoff; malformed or failing messages are rejected
// without requeue so the consumer keeps moving.
func (c *PaymentConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func (c *PaymentConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("Failed to set QoS", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("Failed to handle payment confirmation", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *PaymentConsumer) handleMessage(ctx context.Context, body []byte) error {
	var ev PaymentConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal payment event: %w", err)
	}

	accountID, err := uuid.Parse(ev.AccountID)
	if err != nil {
		return fmt.Errorf("invalid account ID %q: %w", ev.AccountID, err)
	}

	source := ev.Source
	if source == "" {
		source = "purchased"
	}

	newBalance, err := c.credits.AddCredits(ctx, accountID, ev.Credits, source, ev.PaymentReference)
	if err != nil {
		return fmt.Errorf("grant %d credits to account %s: %w", ev.Credits, ev.AccountID, err)
	}

	c.log.Info("Payment confirmation applied",
		zap.String("account_id", ev.AccountID),
		zap.Int("credits", ev.Credits),
		zap.String("source", source),
		zap.String("payment_reference", ev.PaymentReference),
		zap.Int("new_balance", newBalance),
	)

	return nil
}
