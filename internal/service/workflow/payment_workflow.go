package workflow

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/mq"
	"github.com/qs-lzh/train-ticket/internal/service/domain"
)

type PaymentWorkflow struct {
	paymentService domain.PaymentService
	mqConn         *amqp.Connection
	logger         *zap.Logger
}

func NewPaymentWorkflow(paymentService domain.PaymentService, mqConn *amqp.Connection, logger *zap.Logger) *PaymentWorkflow {
	return &PaymentWorkflow{
		paymentService: paymentService,
		mqConn:         mqConn,
		logger:         logger,
	}
}

// Pay runs the paid-transition and, when this request is the one that
// actually flipped the booking, publishes the confirmation event. The
// publish is best-effort, payment success never depends on it.
func (w *PaymentWorkflow) Pay(userID, bookingID uint) (*model.Booking, bool, error) {
	booking, newlyPaid, err := w.paymentService.Pay(userID, bookingID)
	if err != nil {
		return nil, false, err
	}

	if newlyPaid {
		w.publishPaidEvent(booking)
	}
	return booking, newlyPaid, nil
}

func (w *PaymentWorkflow) publishPaidEvent(booking *model.Booking) {
	if w.mqConn == nil {
		return
	}
	ch, err := mq.NewChannel(w.mqConn)
	if err != nil {
		w.logger.Warn("failed to open mq channel for paid event",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
		return
	}
	defer ch.Close()

	if err := mq.SendImmediateMessage(ch, mq.BookingPaidQueue,
		mq.BookingPaidMessage{
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			TrainNumber:   booking.Train.Number,
			TransactionID: booking.TransactionID,
		}); err != nil {
		w.logger.Warn("failed to publish paid event",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
}
