package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vladima-ai/payment-service/internal/config"
	deliveryhttp "github.com/vladima-ai/payment-service/internal/delivery/http"
	"github.com/vladima-ai/payment-service/internal/delivery/http/handlers"
	publisher "github.com/vladima-ai/payment-service/internal/infrastructure/kafka"
	"github.com/vladima-ai/payment-service/internal/infrastructure/metrics"
	"github.com/vladima-ai/payment-service/internal/infrastructure/migrate"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/repository"
	"github.com/vladima-ai/payment-service/internal/infrastructure/telegram"
	"github.com/vladima-ai/payment-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentsDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentsDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init order repo
	orderRepo := repository.NewDefaultOrderRepository(db)

	// Paid-order events for the digest tooling
	brokers := strings.Split(cfg.Kafka.Brokers, ",")
	pub := publisher.NewDefaultKafkaPublisher(brokers, cfg.Kafka.Topic)
	defer pub.Close()

	// Access-message notifier
	notifier := telegram.NewNotifier(cfg.Telegram.BotToken, telegram.AccessLinks{
		WebinarAccessURL: cfg.Telegram.WebinarAccessURL,
		ProBotURL:        cfg.Telegram.ProBotURL,
	})

	paymentMetrics := metrics.NewPaymentMetrics()

	uc, err := usecase.NewPaymentUsecase(orderRepo, notifier, pub, paymentMetrics, cfg.Gateway())
	if err != nil {
		log.Fatalf("failed to init payment usecase: %v", err)
	}

	robokassaHandler := handlers.NewRobokassaHandler(uc, cfg)
	server := deliveryhttp.NewServer(robokassaHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("payment service started on %s\n", addr)
	if err := server.Start(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
