package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
)

type BookingRepo interface {
	WithTx(tx *gorm.DB) BookingRepo
	Create(booking *model.Booking) error
	GetByID(id uint) (*model.Booking, error)
	GetByUserID(userID uint) ([]model.Booking, error)
	HasPaidDuplicate(userID, trainID uint, travelDate time.Time, passengerName string) (bool, error)
	MarkPaid(id uint, transactionID string, paidAt time.Time) (bool, error)
}

type bookingRepoGorm struct {
	db *gorm.DB
}

var _ BookingRepo = (*bookingRepoGorm)(nil)

func NewBookingRepoGorm(db *gorm.DB) *bookingRepoGorm {
	return &bookingRepoGorm{
		db: db,
	}
}

func (r *bookingRepoGorm) WithTx(tx *gorm.DB) BookingRepo {
	return &bookingRepoGorm{
		db: tx,
	}
}

func (r *bookingRepoGorm) Create(booking *model.Booking) error {
	ctx := context.Background()
	if err := gorm.G[model.Booking](r.db).Create(ctx, booking); err != nil {
		return err
	}
	return nil
}

func (r *bookingRepoGorm) GetByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.Preload("Train").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepoGorm) GetByUserID(userID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.Preload("Train").
		Where("user_id = ?", userID).
		Order("booked_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// HasPaidDuplicate reports whether a paid booking already exists for the
// same user, train, travel date and passenger. Unpaid duplicates are
// deliberately ignored, they never block a fresh submission.
func (r *bookingRepoGorm) HasPaidDuplicate(userID, trainID uint, travelDate time.Time, passengerName string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).
		Where("user_id = ? AND train_id = ? AND travel_date = ? AND passenger_name = ? AND paid = ?",
			userID, trainID, travelDate, passengerName, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPaid flips the booking to paid with a conditional update guarded by
// "still unpaid", so concurrent double submissions resolve to exactly one
// successful transition. Returns false when another request already won.
func (r *bookingRepoGorm) MarkPaid(id uint, transactionID string, paidAt time.Time) (bool, error) {
	res := r.db.Model(&model.Booking{}).
		Where("id = ? AND paid = ?", id, false).
		Updates(map[string]any{
			"paid":           true,
			"transaction_id": transactionID,
			"paid_at":        paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
