package mq

// Queue names and message definitions

// immediate queue from payment to notification worker
// deliver message to notify the worker that a booking has been paid
const (
	BookingPaidQueue = "booking.paid.immediate"
)

type BookingPaidMessage struct {
	BookingID     uint   `json:"booking_id"`
	UserID        uint   `json:"user_id"`
	TrainNumber   string `json:"train_number"`
	TransactionID string `json:"transaction_id"`
}
