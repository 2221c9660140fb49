package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metrics receives business measurements from the order and return services
type Metrics interface {
	RecordOrderCreated(ctx context.Context, tenantID uuid.UUID, total decimal.Decimal)
	RecordStockRejected(ctx context.Context, tenantID uuid.UUID)
	RecordStockMovement(ctx context.Context, tenantID uuid.UUID, direction string, quantity int)
	RecordReturnCreated(ctx context.Context, tenantID uuid.UUID, quantity int)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrderCreated(context.Context, uuid.UUID, decimal.Decimal) {}
func (noopMetrics) RecordStockRejected(context.Context, uuid.UUID)                 {}
func (noopMetrics) RecordStockMovement(context.Context, uuid.UUID, string, int)    {}
func (noopMetrics) RecordReturnCreated(context.Context, uuid.UUID, int)            {}
