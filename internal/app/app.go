package app

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/config"
	"github.com/qs-lzh/train-ticket/internal/cache"
	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/mq"
	"github.com/qs-lzh/train-ticket/internal/repository"
	"github.com/qs-lzh/train-ticket/internal/service/domain"
	"github.com/qs-lzh/train-ticket/internal/service/workflow"
	"github.com/qs-lzh/train-ticket/internal/upload"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.RedisCache
	Logger *zap.Logger
	MQConn *amqp.Connection

	Uploads *upload.Store

	UserRepo    repository.UserRepo
	TrainRepo   repository.TrainRepo
	BookingRepo repository.BookingRepo

	AccountService domain.AccountService
	CatalogService domain.CatalogService
	BookingService domain.BookingService
	PaymentService domain.PaymentService
	TicketService  domain.TicketService
	ProfileService domain.ProfileService

	PaymentWorkflow      *workflow.PaymentWorkflow
	NotificationWorkflow *workflow.NotificationWorkflow
}

func New(config *config.Config, db *gorm.DB, redisCache *cache.RedisCache, logger *zap.Logger, mqConn *amqp.Connection) (*App, error) {
	uploads, err := upload.NewStore(config.UploadDir)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepoGorm(db)
	trainRepo := repository.NewTrainRepoGorm(db)
	bookingRepo := repository.NewBookingRepoGorm(db)

	accountService := domain.NewAccountService(userRepo, domain.NewBcryptHasher())
	catalogService := domain.NewCatalogService(db, redisCache, trainRepo)
	bookingService := domain.NewBookingService(trainRepo, bookingRepo)
	paymentService := domain.NewPaymentService(bookingRepo)
	ticketService := domain.NewTicketService(bookingRepo)
	profileService := domain.NewProfileService(userRepo, uploads)

	paymentWorkflow := workflow.NewPaymentWorkflow(paymentService, mqConn, logger)
	notificationWorkflow := workflow.NewNotificationWorkflow(logger)

	return &App{
		Config:               config,
		DB:                   db,
		Cache:                redisCache,
		Logger:               logger,
		MQConn:               mqConn,
		Uploads:              uploads,
		UserRepo:             userRepo,
		TrainRepo:            trainRepo,
		BookingRepo:          bookingRepo,
		AccountService:       accountService,
		CatalogService:       catalogService,
		BookingService:       bookingService,
		PaymentService:       paymentService,
		TicketService:        ticketService,
		ProfileService:       profileService,
		PaymentWorkflow:      paymentWorkflow,
		NotificationWorkflow: notificationWorkflow,
	}, nil
}

func (app *App) Init() error {
	if err := app.DB.AutoMigrate(&model.User{}, &model.Train{}, &model.Booking{}); err != nil {
		return err
	}

	if err := app.CatalogService.SeedDefaults(); err != nil {
		return err
	}

	if app.MQConn != nil {
		if err := mq.InitQueues(app.MQConn); err != nil {
			return err
		}
		if err := app.NotificationWorkflow.Start(app.MQConn); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) Close() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
