package domain

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type BookingService interface {
	CreateBooking(userID uint, input CreateBookingInput) (*model.Booking, error)
	ListUserBookings(userID uint) ([]model.Booking, error)
}

type CreateBookingInput struct {
	TrainID         uint
	PassengerName   string
	PassengerAge    int
	PassengerGender model.Gender
	TravelDate      time.Time
	SeatClass       model.SeatClass
}

type bookingService struct {
	trainRepo   repository.TrainRepo
	bookingRepo repository.BookingRepo
}

var _ BookingService = (*bookingService)(nil)

func NewBookingService(trainRepo repository.TrainRepo, bookingRepo repository.BookingRepo) *bookingService {
	return &bookingService{
		trainRepo:   trainRepo,
		bookingRepo: bookingRepo,
	}
}

// CreateBooking checks, in order: train exists, travel date is not in the
// past, no paid duplicate for (user, train, date, passenger). An unpaid
// duplicate does not block, a failed payment is retried by submitting a
// fresh booking row rather than resuming the old one.
func (s *bookingService) CreateBooking(userID uint, input CreateBookingInput) (*model.Booking, error) {
	train, err := s.trainRepo.GetByID(input.TrainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrTrainNotFound
		}
		return nil, err
	}

	travelDate := truncateToDate(input.TravelDate)
	if travelDate.Before(truncateToDate(time.Now().UTC())) {
		return nil, service.ErrPastDate
	}

	passengerName := strings.TrimSpace(input.PassengerName)
	dup, err := s.bookingRepo.HasPaidDuplicate(userID, train.ID, travelDate, passengerName)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, service.ErrDuplicatePaidBooking
	}

	booking := &model.Booking{
		UserID:          userID,
		TrainID:         train.ID,
		PassengerName:   passengerName,
		PassengerAge:    input.PassengerAge,
		PassengerGender: input.PassengerGender,
		TravelDate:      travelDate,
		SeatClass:       input.SeatClass,
		Fare:            train.Fare,
		Paid:            false,
		BookedAt:        time.Now().UTC(),
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}
	booking.Train = *train
	return booking, nil
}

func (s *bookingService) ListUserBookings(userID uint) ([]model.Booking, error) {
	return s.bookingRepo.GetByUserID(userID)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
