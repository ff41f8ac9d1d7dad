package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/internal/cache"
	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type CatalogService interface {
	ListTrains() ([]model.Train, error)
	GetTrain(trainID uint) (*model.Train, error)
	SeedDefaults() error
}

type catalogService struct {
	db    *gorm.DB
	cache *cache.RedisCache
	repo  repository.TrainRepo
}

var _ CatalogService = (*catalogService)(nil)

func NewCatalogService(db *gorm.DB, redisCache *cache.RedisCache, trainRepo repository.TrainRepo) *catalogService {
	return &catalogService{
		db:    db,
		cache: redisCache,
		repo:  trainRepo,
	}
}

// ListTrains serves the catalog cache-aside. The catalog never changes
// after seeding, so a cache miss or a cache failure just falls back to
// the database.
func (s *catalogService) ListTrains() ([]model.Train, error) {
	if s.cache != nil {
		var trains []model.Train
		if err := s.cache.Get(cache.TrainListKey, &trains); err == nil {
			return trains, nil
		}
	}

	trains, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(cache.TrainListKey, trains, cache.TrainListTTL)
	}
	return trains, nil
}

func (s *catalogService) GetTrain(trainID uint) (*model.Train, error) {
	train, err := s.repo.GetByID(trainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrTrainNotFound
		}
		return nil, err
	}
	return train, nil
}

// SeedDefaults inserts the static catalog on first boot, nothing on later
// boots.
func (s *catalogService) SeedDefaults() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sample := []model.Train{
		{Name: "Blue Express", Number: "BE123", FromStation: "City A", ToStation: "City B", Depart: "08:00", Arrive: "12:30", Duration: "4h 30m", Fare: 450.0},
		{Name: "Coastal Mail", Number: "CM456", FromStation: "City A", ToStation: "City C", Depart: "09:45", Arrive: "15:00", Duration: "5h 15m", Fare: 650.0},
		{Name: "Sunrise Special", Number: "SS789", FromStation: "City B", ToStation: "City C", Depart: "16:00", Arrive: "19:30", Duration: "3h 30m", Fare: 520.0},
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for i := range sample {
			if err := repo.Create(&sample[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
