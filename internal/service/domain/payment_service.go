package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type PaymentService interface {
	Pay(userID, bookingID uint) (booking *model.Booking, newlyPaid bool, err error)
}

type paymentService struct {
	bookingRepo repository.BookingRepo
}

var _ PaymentService = (*paymentService)(nil)

func NewPaymentService(bookingRepo repository.BookingRepo) *paymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
	}
}

// Pay transitions a booking from unpaid to paid exactly once. The update is
// conditional on the row still being unpaid, so two concurrent submissions
// resolve to one transition and one transaction id; the loser sees the
// booking as already paid, same as a sequential resubmission.
func (s *paymentService) Pay(userID, bookingID uint) (*model.Booking, bool, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, service.ErrNotFound
		}
		return nil, false, err
	}
	if booking.UserID != userID {
		return nil, false, service.ErrUnauthorized
	}
	if booking.Paid {
		return booking, false, nil
	}

	transactionID := uuid.NewString()
	paidAt := time.Now().UTC()
	updated, err := s.bookingRepo.MarkPaid(booking.ID, transactionID, paidAt)
	if err != nil {
		return nil, false, service.ErrPaymentProcessing
	}
	if !updated {
		// lost the race to another submission, reload the winner's state
		booking, err = s.bookingRepo.GetByID(bookingID)
		if err != nil {
			return nil, false, service.ErrPaymentProcessing
		}
		return booking, false, nil
	}

	booking.Paid = true
	booking.TransactionID = transactionID
	booking.PaidAt = &paidAt
	return booking, true, nil
}
