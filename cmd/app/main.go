package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	httpserver "orders/internal/adapters/in/http"
	"orders/internal/adapters/in/queue"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/postgres/negotiationrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/paymentrepo"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	producer, err := kafka.NewSyncProducer([]string{configs.KafkaHost})
	if err != nil {
		logger.Error("failed to connect to kafka", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	consumer, err := queue.NewConsumer([]string{configs.KafkaHost})
	if err != nil {
		logger.Error("failed to connect to kafka consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
	defer redisClient.Close()

	root, err := cmd.NewCompositionRoot(configs, gormDB, producer, redisClient, logger)
	if err != nil {
		logger.Error("failed to build composition root", "error", err)
		os.Exit(1)
	}

	jobManager := jobs.NewJobManager(root.CreateMarkLateOrdersCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	settlementWorker := queue.NewSettlementWorker(
		configs.RedisAddr,
		root.CreateRefundOrderPaymentsCommandHandler(),
		root.CreateCancelOrderPaymentsCommandHandler(),
		logger,
	)
	if err := settlementWorker.Start(); err != nil {
		logger.Error("failed to start settlement worker", "error", err)
		os.Exit(1)
	}
	defer settlementWorker.Stop()

	reviewConsumer := queue.NewReviewConsumer(consumer, root.CreateApplyReviewCommandHandler(), logger)
	if err := reviewConsumer.Start(); err != nil {
		logger.Error("failed to start review consumer", "error", err)
		os.Exit(1)
	}
	defer reviewConsumer.Stop()

	e := buildWebServer(&root)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, reading configuration from environment")
	}
	return cmd.Config{
		HTTPPort:             os.Getenv("HTTP_PORT"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            os.Getenv("DB_SSLMODE"),
		KafkaHost:            os.Getenv("KAFKA_HOST"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		GatewayBaseURL:       os.Getenv("GATEWAY_BASE_URL"),
		GatewayAPIKey:        os.Getenv("GATEWAY_API_KEY"),
		GatewayWebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
		StorageBaseURL:       os.Getenv("STORAGE_BASE_URL"),
		StorageAPIKey:        os.Getenv("STORAGE_API_KEY"),
		CatalogBaseURL:       os.Getenv("CATALOG_BASE_URL"),
		GigCacheTTL:          os.Getenv("GIG_CACHE_TTL"),
		PaymentProvider:      os.Getenv("PAYMENT_PROVIDER"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &negotiationrepo.NegotiationDTO{}, &paymentrepo.PaymentDTO{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return gormDB, nil
}

func buildWebServer(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(httpserver.ServerParams{
		CreateOrderHandler:        root.CreateCreateOrderCommandHandler(),
		SubmitRequirementsHandler: root.CreateSubmitRequirementsCommandHandler(),
		DeliverOrderHandler:       root.CreateDeliverOrderCommandHandler(),
		ApproveDeliveryHandler:    root.CreateApproveDeliveryCommandHandler(),
		RequestRevisionHandler:    root.CreateRequestRevisionCommandHandler(),
		CancelOrderHandler:        root.CreateCancelOrderCommandHandler(),
		CreateNegotiationHandler:  root.CreateCreateNegotiationCommandHandler(),
		ApproveNegotiationHandler: root.CreateApproveNegotiationCommandHandler(),
		RejectNegotiationHandler:  root.CreateRejectNegotiationCommandHandler(),
		EscalateDisputeHandler:    root.CreateEscalateDisputeCommandHandler(),
		ConfirmChargeHandler:      root.CreateConfirmChargeCommandHandler(),
		ConfirmRefundHandler:      root.CreateConfirmRefundCommandHandler(),
		GetOrdersByPartyHandler:   root.CreateGetOrdersByPartyQueryHandler(),
		GetPaymentsByOrderHandler: root.CreateGetPaymentsByOrderQueryHandler(),
		Gateway:                   root.Gateway(),
	})
	server.RegisterRoutes(e)
	return e
}
