package commands

import (
	"makanapa/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

func auditFields(operation string, orderID string, actor kernel.UserID) []zap.Field {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Int64("actor_id", actor.Int64()),
	}
	if orderID != "" {
		fields = append(fields, zap.String("order_id", orderID))
	}
	return fields
}
