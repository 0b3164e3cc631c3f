package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"overcooked-pos/notify-svc/internal/domain"
	"overcooked-pos/notify-svc/internal/mocks"
	"overcooked-pos/notify-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestConsumer_ProcessNotification(t *testing.T) {
	email := domain.Notification{
		Type:      domain.TypeEmail,
		To:        "cook@example.com",
		Body:      "123456",
		Timestamp: time.Now(),
	}

	tests := []struct {
		name      string
		msg       domain.Notification
		setupMock func(*mocks.Sender, *mocks.DeliveryLog)
		wantErr   error
		anyErr    bool
	}{
		{
			name: "delivers new message",
			msg:  email,
			setupMock: func(sender *mocks.Sender, log *mocks.DeliveryLog) {
				log.On("MarkSent", mock.Anything, "k1").Return(true, nil).Once()
				sender.On("Send", mock.Anything, "cook@example.com", "123456").Return(nil).Once()
			},
		},
		{
			name: "skips redelivered message",
			msg:  email,
			setupMock: func(sender *mocks.Sender, log *mocks.DeliveryLog) {
				log.On("MarkSent", mock.Anything, "k1").Return(false, nil).Once()
			},
		},
		{
			name: "releases key when sending fails",
			msg:  email,
			setupMock: func(sender *mocks.Sender, log *mocks.DeliveryLog) {
				log.On("MarkSent", mock.Anything, "k1").Return(true, nil).Once()
				sender.On("Send", mock.Anything, "cook@example.com", "123456").Return(errors.New("relay down")).Once()
				log.On("Forget", mock.Anything, "k1").Return(nil).Once()
			},
			anyErr: true,
		},
		{
			name: "delivery log unavailable",
			msg:  email,
			setupMock: func(sender *mocks.Sender, log *mocks.DeliveryLog) {
				log.On("MarkSent", mock.Anything, "k1").Return(false, errors.New("redis down")).Once()
			},
			anyErr: true,
		},
		{
			name:      "unsupported type",
			msg:       domain.Notification{Type: "sms", To: "+100"},
			setupMock: func(sender *mocks.Sender, log *mocks.DeliveryLog) {},
			wantErr:   service.ErrUnsupportedType,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			deliveryLog := mocks.NewDeliveryLog(t)
			testCase.setupMock(sender, deliveryLog)

			consumer := service.NewConsumer(nil, sender, deliveryLog, zap.NewNop())
			err := consumer.ProcessNotification(context.Background(), "k1", testCase.msg)

			switch {
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			case testCase.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
