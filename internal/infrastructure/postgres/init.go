package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vladima-ai/payment-service/internal/config"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PaymentsDB.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	if err := db.AutoMigrate(&models.OrderModel{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v\n", err.Error())
	}

	return db
}
