package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/model"
)

type TrainRepo interface {
	WithTx(tx *gorm.DB) TrainRepo
	Create(train *model.Train) error
	GetByID(id uint) (*model.Train, error)
	ListAll() ([]model.Train, error)
	Count() (int64, error)
}

type trainRepoGorm struct {
	db *gorm.DB
}

var _ TrainRepo = (*trainRepoGorm)(nil)

func NewTrainRepoGorm(db *gorm.DB) *trainRepoGorm {
	return &trainRepoGorm{
		db: db,
	}
}

func (r *trainRepoGorm) WithTx(tx *gorm.DB) TrainRepo {
	return &trainRepoGorm{
		db: tx,
	}
}

func (r *trainRepoGorm) Create(train *model.Train) error {
	ctx := context.Background()
	if err := gorm.G[model.Train](r.db).Create(ctx, train); err != nil {
		return err
	}
	return nil
}

func (r *trainRepoGorm) GetByID(id uint) (*model.Train, error) {
	ctx := context.Background()
	train, err := gorm.G[model.Train](r.db).Where(&model.Train{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &train, nil
}

func (r *trainRepoGorm) ListAll() ([]model.Train, error) {
	var trains []model.Train
	if err := r.db.Order("depart").Find(&trains).Error; err != nil {
		return nil, err
	}
	return trains, nil
}

func (r *trainRepoGorm) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Train{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
