package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"overcooked-pos/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrUnsupportedType = errors.New("unsupported notification type")

type Consumer struct {
	Reader *kafka.Reader
	Sender Sender
	Log    DeliveryLog
	Logger *zap.Logger
}

func NewConsumer(reader *kafka.Reader, sender Sender, log DeliveryLog, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Sender: sender,
		Log:    log,
		Logger: logger,
	}
}

// Start reads the notifications topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting notification consumer", zap.String("topic", c.Reader.Config().Topic))
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("notification consumer stopped")
				return
			}
			c.Logger.Error("error reading message", zap.Error(err))
			continue
		}

		var msg domain.Notification
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Logger.Error("error unmarshaling message", zap.Int64("offset", message.Offset), zap.Error(err))
			continue
		}

		key := fmt.Sprintf("%s:%d:%d", message.Topic, message.Partition, message.Offset)
		if err := c.ProcessNotification(ctx, key, msg); err != nil {
			c.Logger.Error("error delivering notification", zap.String("key", key), zap.Error(err))
		}
	}
}

// ProcessNotification delivers msg once per key. A failed delivery releases
// the key so a redelivered copy is attempted again.
func (c *Consumer) ProcessNotification(ctx context.Context, key string, msg domain.Notification) error {
	if msg.Type != domain.TypeEmail {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, msg.Type)
	}

	first, err := c.Log.MarkSent(ctx, key)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if !first {
		c.Logger.Info("skipping duplicate notification", zap.String("key", key))
		return nil
	}

	if err := c.Sender.Send(ctx, msg.To, msg.Body); err != nil {
		if forgetErr := c.Log.Forget(ctx, key); forgetErr != nil {
			c.Logger.Warn("failed to release delivery key", zap.String("key", key), zap.Error(forgetErr))
		}
		return fmt.Errorf("send mail: %w", err)
	}

	c.Logger.Info("notification delivered", zap.String("key", key), zap.String("to", msg.To))
	return nil
}
