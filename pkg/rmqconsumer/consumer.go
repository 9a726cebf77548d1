package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"docvault-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type (
	Consumer struct {
		cfg         config.MQ
		log         *zap.Logger
		routingKeys []string
		out         io.Writer
		conn        *amqp091.Connection
		chConsume   *amqp091.Channel
		chDelivery  <-chan amqp091.Delivery
	}

	// envelope is the subset of a published event the consumer reads.
	envelope struct {
		Action  string `json:"event_action"`
		UserID  uint64 `json:"user_id"`
		Payload struct {
			DocumentID   uint64   `json:"document_id"`
			OrphanedKeys []string `json:"orphaned_keys"`
			StaleKeys    []string `json:"stale_keys"`
		} `json:"payload"`
	}
)

func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection, routingKeys []string) *Consumer {
	return &Consumer{
		cfg:         cfg,
		log:         logger,
		routingKeys: routingKeys,
		out:         os.Stdout,
		conn:        conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init opens a channel on the shared connection when Connect was not called.
func (c *Consumer) Init() error {
	if c.chConsume == nil {
		if c.conn == nil {
			return fmt.Errorf("amqp channel: no connection")
		}
		ch, err := c.conn.Channel()
		if err != nil {
			return fmt.Errorf("amqp channel: %w", err)
		}
		c.chConsume = ch
	}

	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range c.routingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			_ = c.chConsume.Close()
			return
		}
	}
}

// delivery prints every event and reports the object keys an upload left
// behind so they can be reconciled by hand.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	if _, err := fmt.Fprintf(c.out,
		"Action=%s EventBody=%s\n",
		actionLabel(msg.RoutingKey),
		string(msg.Body),
	); err != nil {
		return err
	}

	var e envelope
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event %q: %w", msg.RoutingKey, err)
	}

	if n := len(e.Payload.OrphanedKeys) + len(e.Payload.StaleKeys); n > 0 {
		c.log.Warn("reconciliation backlog",
			zap.String("action", e.Action),
			zap.Uint64("user_id", e.UserID),
			zap.Uint64("document_id", e.Payload.DocumentID),
			zap.Strings("orphaned_keys", e.Payload.OrphanedKeys),
			zap.Strings("stale_keys", e.Payload.StaleKeys),
			zap.Int("keys", n),
		)
	}

	return nil
}

// actionLabel turns "document.stale_assets" into "DocumentStaleAssets".
func actionLabel(routingKey string) string {
	words := strings.FieldsFunc(routingKey, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "")
}
