package storage

import (
	"context"
	"encoding/json"
	"time"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"

	"github.com/segmentio/kafka-go"
)

// KafkaMailer hands mail to notify-svc through the notifications topic.
type KafkaMailer struct {
	Writer *kafka.Writer
}

func NewKafkaMailer(writer *kafka.Writer) *KafkaMailer {
	return &KafkaMailer{Writer: writer}
}

var _ service.Mailer = (*KafkaMailer)(nil)

func (m *KafkaMailer) SendMail(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(domain.Notification{
		Type:      "email",
		To:        to,
		Body:      body,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return m.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: payload,
	})
}
