package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics counts storefront business activity: orders, stock
// movements and returns, labelled by store.
type BusinessMetrics struct {
	ordersCreated   *Counter
	orderAmount     *Counter
	stockRejections *Counter
	stockMovedUnits *Counter
	returnsCreated  *Counter
	returnedUnits   *Counter
}

// NewBusinessMetrics creates the business counters on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	counters := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&bm.ordersCreated, "storefront_orders_created_total", "Total number of orders created", "{orders}"},
		{&bm.orderAmount, "storefront_order_amount_total", "Total order amount in cents", "{cents}"},
		{&bm.stockRejections, "storefront_stock_rejections_total", "Orders rejected for insufficient stock", "{orders}"},
		{&bm.stockMovedUnits, "storefront_stock_moved_units_total", "Units reserved or restored", "{units}"},
		{&bm.returnsCreated, "storefront_returns_created_total", "Total number of returns created", "{returns}"},
		{&bm.returnedUnits, "storefront_returned_units_total", "Units requested for return", "{units}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	return bm, nil
}

// RecordOrderCreated counts an order and its total
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, tenantID uuid.UUID, total decimal.Decimal) {
	tenant := AttrTenantID.String(tenantID.String())
	bm.ordersCreated.Inc(ctx, tenant)
	bm.orderAmount.Add(ctx, total.Shift(2).Round(0).IntPart(), tenant)
}

// RecordStockRejected counts an order refused for lack of stock
func (bm *BusinessMetrics) RecordStockRejected(ctx context.Context, tenantID uuid.UUID) {
	bm.stockRejections.Inc(ctx, AttrTenantID.String(tenantID.String()))
}

// RecordStockMovement counts units moved in the given direction
func (bm *BusinessMetrics) RecordStockMovement(ctx context.Context, tenantID uuid.UUID, direction string, quantity int) {
	if quantity <= 0 {
		return
	}
	bm.stockMovedUnits.Add(ctx, int64(quantity),
		AttrTenantID.String(tenantID.String()),
		AttrDirection.String(direction),
	)
}

// RecordReturnCreated counts a return and its requested units
func (bm *BusinessMetrics) RecordReturnCreated(ctx context.Context, tenantID uuid.UUID, quantity int) {
	tenant := AttrTenantID.String(tenantID.String())
	bm.returnsCreated.Inc(ctx, tenant)
	bm.returnedUnits.Add(ctx, int64(quantity), tenant)
}
