package domain_test

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
)

// In-memory repository fakes. They honor the same contracts the gorm
// implementations do, including gorm.ErrRecordNotFound and the
// conditional-update semantics of MarkPaid.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*model.User
}

var _ repository.UserRepo = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return r }

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateProfile(id uint, name string, profilePic string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Name = name
	u.ProfilePic = profilePic
	return nil
}

type fakeTrainRepo struct {
	nextID uint
	trains map[uint]*model.Train
}

var _ repository.TrainRepo = (*fakeTrainRepo)(nil)

func newFakeTrainRepo() *fakeTrainRepo {
	return &fakeTrainRepo{nextID: 1, trains: map[uint]*model.Train{}}
}

func (r *fakeTrainRepo) WithTx(tx *gorm.DB) repository.TrainRepo { return r }

func (r *fakeTrainRepo) Create(train *model.Train) error {
	train.ID = r.nextID
	r.nextID++
	cp := *train
	r.trains[train.ID] = &cp
	return nil
}

func (r *fakeTrainRepo) GetByID(id uint) (*model.Train, error) {
	t, ok := r.trains[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrainRepo) ListAll() ([]model.Train, error) {
	out := make([]model.Train, 0, len(r.trains))
	for _, t := range r.trains {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTrainRepo) Count() (int64, error) {
	return int64(len(r.trains)), nil
}

type fakeBookingRepo struct {
	nextID   uint
	bookings map[uint]*model.Booking

	failCreate   error
	failMarkPaid error
}

var _ repository.BookingRepo = (*fakeBookingRepo)(nil)

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: map[uint]*model.Booking{}}
}

func (r *fakeBookingRepo) WithTx(tx *gorm.DB) repository.BookingRepo { return r }

func (r *fakeBookingRepo) Create(booking *model.Booking) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	booking.ID = r.nextID
	r.nextID++
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id uint) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByUserID(userID uint) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) HasPaidDuplicate(userID, trainID uint, travelDate time.Time, passengerName string) (bool, error) {
	for _, b := range r.bookings {
		if b.UserID == userID && b.TrainID == trainID &&
			b.TravelDate.Equal(travelDate) && b.PassengerName == passengerName && b.Paid {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkPaid(id uint, transactionID string, paidAt time.Time) (bool, error) {
	if r.failMarkPaid != nil {
		return false, r.failMarkPaid
	}
	b, ok := r.bookings[id]
	if !ok || b.Paid {
		return false, nil
	}
	b.Paid = true
	b.TransactionID = transactionID
	b.PaidAt = &paidAt
	return true, nil
}

var errRepoBroken = errors.New("repo broken")
