package models

import (
	"time"

	"github.com/vladima-ai/payment-service/internal/domain"
)

type OrderModel struct {
	InvID       int64              `gorm:"column:inv_id;primaryKey;autoIncrement"`
	OrderToken  string             `gorm:"not null"`
	UserID      int64              `gorm:"index:idx_orders_user"`
	ChatID      int64
	ProductCode string             `gorm:"not null;index:idx_orders_product"`
	Amount      string             `gorm:"type:varchar(32);not null"`
	Description string             `gorm:"not null"`
	Status      domain.OrderStatus `gorm:"type:varchar(16);not null;index:idx_orders_status"`
	CreatedAt   time.Time
	PaidAt      *time.Time         `gorm:"index:idx_orders_paid_at"`
	RawResult   string             `gorm:"column:raw_result_params;type:text"`
}

func (OrderModel) TableName() string {
	return "orders"
}
