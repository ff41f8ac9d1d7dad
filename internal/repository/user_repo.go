package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
)

type UserRepo interface {
	WithTx(tx *gorm.DB) UserRepo
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	UpdateProfile(id uint, name string, profilePic string) error
}

type userRepoGorm struct {
	db *gorm.DB
}

var _ UserRepo = (*userRepoGorm)(nil)

func NewUserRepoGorm(db *gorm.DB) *userRepoGorm {
	return &userRepoGorm{
		db: db,
	}
}

func (r *userRepoGorm) WithTx(tx *gorm.DB) UserRepo {
	return &userRepoGorm{
		db: tx,
	}
}

func (r *userRepoGorm) Create(user *model.User) error {
	ctx := context.Background()
	if err := gorm.G[model.User](r.db).Create(ctx, user); err != nil {
		return err
	}
	return nil
}

func (r *userRepoGorm) GetByID(id uint) (*model.User, error) {
	ctx := context.Background()
	user, err := gorm.G[model.User](r.db).Where(&model.User{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks the user up case-insensitively, emails are stored
// lowercased but lookups must tolerate any casing.
func (r *userRepoGorm) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) UpdateProfile(id uint, name string, profilePic string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"profile_pic": profilePic,
		}).Error
}
