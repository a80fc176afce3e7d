package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/config"
	"github.com/styledecor/styledecor/internal/auth"
	"github.com/styledecor/styledecor/internal/bootstrap"
	"github.com/styledecor/styledecor/internal/cache"
	"github.com/styledecor/styledecor/internal/kafka"
	"github.com/styledecor/styledecor/internal/payments"
	"github.com/styledecor/styledecor/internal/repository"
	"github.com/styledecor/styledecor/internal/service/account"
	"github.com/styledecor/styledecor/internal/service/analytics"
	"github.com/styledecor/styledecor/internal/service/booking"
	"github.com/styledecor/styledecor/internal/service/catalog"
	"github.com/styledecor/styledecor/internal/service/payment"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
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

	redisCache := cache.NewRedisCache(
		cfg.Redis,
		time.Duration(cfg.Cache.ServicesTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.TopDecoratorsTTLSeconds)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	accountRepo := repository.NewAccountRepository(pool)
	decoratorRepo := repository.NewDecoratorRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	stripeProvider := payments.NewStripeProvider(cfg.Stripe.SecretKey)

	accountService := account.NewAccountService(accountRepo, decoratorRepo, redisCache, logger)
	catalogService := catalog.NewCatalogService(serviceRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		serviceRepo,
		accountRepo,
		decoratorRepo,
		producer,
		cfg.Kafka.BookingTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	paymentService := payment.NewPaymentService(
		paymentRepo,
		bookingRepo,
		serviceRepo,
		stripeProvider,
		producer,
		cfg.Kafka.PaymentTopic,
		logger,
	)
	analyticsService := analytics.NewAnalyticsService(paymentRepo, bookingRepo)

	if err := bootstrap.Run(ctx, cfg, logger, bootstrap.Services{
		Verifier:  verifier,
		Accounts:  accountService,
		Bookings:  bookingService,
		Catalog:   catalogService,
		Payments:  paymentService,
		Analytics: analyticsService,
	}); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
