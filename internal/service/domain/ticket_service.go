package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type TicketService interface {
	GetTicket(userID, bookingID uint) (*model.Booking, error)
}

type ticketService struct {
	bookingRepo repository.BookingRepo
}

var _ TicketService = (*ticketService)(nil)

func NewTicketService(bookingRepo repository.BookingRepo) *ticketService {
	return &ticketService{
		bookingRepo: bookingRepo,
	}
}

// GetTicket is the read-only projection of a booking joined with its train,
// restricted to the owning user. Valid for unpaid bookings too.
func (s *ticketService) GetTicket(userID, bookingID uint) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, service.ErrUnauthorized
	}
	return booking, nil
}
