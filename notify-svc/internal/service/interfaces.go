package service

import (
	"context"

	"overcooked-pos/notify-svc/internal/domain"
	"overcooked-pos/notify-svc/internal/storage"
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// DeliveryLog remembers which messages were already handed to the Sender.
type DeliveryLog interface {
	MarkSent(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessNotification(ctx context.Context, key string, msg domain.Notification) error
}

var (
	_ Sender            = (*storage.SMTPSender)(nil)
	_ DeliveryLog       = (*storage.RedisDeliveryLog)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
