package workflow

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/mq"
)

// NotificationWorkflow consumes booking.paid events and records a
// confirmation for each. A real deployment would hand these to mail or
// SMS, here the confirmation is a structured log record.
type NotificationWorkflow struct {
	logger *zap.Logger
}

func NewNotificationWorkflow(logger *zap.Logger) *NotificationWorkflow {
	return &NotificationWorkflow{
		logger: logger,
	}
}

func (w *NotificationWorkflow) Start(mqConn *amqp.Connection) error {
	ch, err := mq.NewChannel(mqConn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(mq.BookingPaidQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			w.handlePaidMessage(msg)
		}
	}()

	return nil
}

func (w *NotificationWorkflow) handlePaidMessage(msg amqp.Delivery) {
	var message mq.BookingPaidMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return
	}

	w.logger.Info("booking confirmed",
		zap.Uint("booking_id", message.BookingID),
		zap.Uint("user_id", message.UserID),
		zap.String("train_number", message.TrainNumber),
		zap.String("transaction_id", message.TransactionID),
	)

	msg.Ack(false)
}
