package mappers

import (
	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		InvID:           model.InvID,
		OrderToken:      model.OrderToken,
		UserID:          model.UserID,
		ChatID:          model.ChatID,
		ProductCode:     model.ProductCode,
		Amount:          model.Amount,
		Description:     model.Description,
		Status:          model.Status,
		CreatedAt:       model.CreatedAt,
		PaidAt:          model.PaidAt,
		RawResultParams: model.RawResult,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		InvID:       order.InvID,
		OrderToken:  order.OrderToken,
		UserID:      order.UserID,
		ChatID:      order.ChatID,
		ProductCode: order.ProductCode,
		Amount:      order.Amount,
		Description: order.Description,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		PaidAt:      order.PaidAt,
		RawResult:   order.RawResultParams,
	}
}
