package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/rocketbooking/api"
	"github.com/Domenick1991/rocketbooking/config"
	"github.com/Domenick1991/rocketbooking/internal/bootstrap"
	"github.com/Domenick1991/rocketbooking/internal/cache"
	"github.com/Domenick1991/rocketbooking/internal/kafka"
	"github.com/Domenick1991/rocketbooking/internal/repository"
	"github.com/Domenick1991/rocketbooking/internal/service/booking"
	"github.com/Domenick1991/rocketbooking/internal/service/customers"
	"github.com/Domenick1991/rocketbooking/internal/service/launches"
	"github.com/Domenick1991/rocketbooking/internal/service/rockets"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.LaunchesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	rocketRepo := repository.NewRocketRepository(pool)
	launchRepo := repository.NewLaunchRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	rocketService := rockets.NewRocketService(rocketRepo, launchRepo, bookingRepo, logger)
	launchService := launches.NewLaunchService(launchRepo, rocketRepo, bookingRepo, redisCache, logger)
	customerService := customers.NewCustomerService(customerRepo, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		launchRepo,
		rocketRepo,
		customerRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	handlers := bootstrap.Handlers{
		Rockets:   api.NewRocketHandler(rocketService),
		Launches:  api.NewLaunchHandler(launchService),
		Customers: api.NewCustomerHandler(customerService),
		Bookings:  api.NewBookingHandler(bookingService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
