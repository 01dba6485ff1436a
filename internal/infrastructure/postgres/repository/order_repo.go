package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/models"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	// inv_id is assigned by the database, exactly once, never reused.
	order.InvID = orderModel.InvID
	order.CreatedAt = orderModel.CreatedAt
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, invID int64) (*domain.Order, error) {
	var orderModel models.OrderModel
	err := r.DB.WithContext(ctx).First(&orderModel, "inv_id = ?", invID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: InvId=%d", domain.ErrUnknownOrder, invID)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

// MarkPaidIfPending is a single conditional UPDATE guarded by the current
// status — not a read-then-write pair. Two concurrent deliveries both reach
// the database, but the WHERE clause lets exactly one of them flip the row,
// so at most one caller ever sees true.
func (r *DefaultOrderRepository) MarkPaidIfPending(ctx context.Context, invID int64, rawParams string) (bool, error) {
	now := time.Now()
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("inv_id = ? AND status = ?", invID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":            domain.StatusPaid,
			"paid_at":           &now,
			"raw_result_params": rawParams,
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark paid: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultOrderRepository) GetPaidOrdersSince(ctx context.Context, productCodes []string, since time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	err := r.DB.WithContext(ctx).
		Where("product_code IN ?", productCodes).
		Where("status = ?", domain.StatusPaid).
		Where("paid_at >= ?", since).
		Order("paid_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, fmt.Errorf("paid orders since: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, nil
}
