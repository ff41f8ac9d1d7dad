package main

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/qs-lzh/train-ticket/config"
	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/cache"
	"github.com/qs-lzh/train-ticket/internal/handler"
	"github.com/qs-lzh/train-ticket/internal/mq"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	var redisCache *cache.RedisCache
	if cfg.CacheURL != "" {
		redisCache, err = cache.NewRedisCache(cfg.CacheURL)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
	}

	// notifications are optional, the app runs without a broker
	var mqConn *amqp.Connection
	if cfg.MQURL != "" {
		mqConn, err = mq.NewMQConn(cfg.MQURL)
		if err != nil {
			logger.Fatal("failed to connect rabbitmq", zap.Error(err))
		}
		defer mqConn.Close()
	}

	application, err := app.New(cfg, db, redisCache, logger, mqConn)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}
	defer application.Close()

	if err := application.Init(); err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}

	r := handler.NewRouter(application)
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
