package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
	"gorm.io/datatypes"
)

// OrderModel is the persistence model for the Order aggregate root.
// The timeline is stored as a jsonb array.
type OrderModel struct {
	TenantAggregateModel
	CustomerID *uuid.UUID                               `gorm:"type:uuid;index"`
	ProductID  uuid.UUID                                `gorm:"type:uuid;not null;index"`
	Quantity   int                                      `gorm:"not null"`
	UnitPrice  decimal.Decimal                          `gorm:"type:decimal(18,2);not null"`
	Total      decimal.Decimal                          `gorm:"type:decimal(18,2);not null"`
	Status     trade.OrderStatus                        `gorm:"type:varchar(20);not null;default:'PENDING'"`
	IsPaid     bool                                     `gorm:"not null;default:false"`
	Timeline   datatypes.JSONSlice[trade.TimelineEntry] `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		CustomerID:          m.CustomerID,
		ProductID:           m.ProductID,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		Total:               m.Total,
		Status:              m.Status,
		IsPaid:              m.IsPaid,
		Timeline:            []trade.TimelineEntry(m.Timeline),
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.CustomerID = o.CustomerID
	m.ProductID = o.ProductID
	m.Quantity = o.Quantity
	m.UnitPrice = o.UnitPrice
	m.Total = o.Total
	m.Status = o.Status
	m.IsPaid = o.IsPaid
	m.Timeline = datatypes.NewJSONSlice(nonNilSlice(o.Timeline))
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderReturnModel is the persistence model for the OrderReturn aggregate root.
// History is stored newest first as a jsonb array.
type OrderReturnModel struct {
	TenantAggregateModel
	OrderID          uuid.UUID                                     `gorm:"type:uuid;not null;index"`
	CustomerID       *uuid.UUID                                    `gorm:"type:uuid;index"`
	ReturnedQuantity int                                           `gorm:"not null"`
	Reason           string                                        `gorm:"type:varchar(1000);not null;default:''"`
	Status           trade.ReturnStatus                            `gorm:"type:varchar(20);not null;default:'SUBMITTED'"`
	RefundAmount     decimal.Decimal                               `gorm:"type:decimal(18,2);not null;default:0"`
	Restocked        bool                                          `gorm:"not null;default:false"`
	History          datatypes.JSONSlice[trade.ReturnHistoryEntry] `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (OrderReturnModel) TableName() string {
	return "order_returns"
}

// ToDomain converts the persistence model to a domain OrderReturn entity.
func (m *OrderReturnModel) ToDomain() *trade.OrderReturn {
	return &trade.OrderReturn{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderID:             m.OrderID,
		CustomerID:          m.CustomerID,
		ReturnedQuantity:    m.ReturnedQuantity,
		Reason:              m.Reason,
		Status:              m.Status,
		RefundAmount:        m.RefundAmount,
		Restocked:           m.Restocked,
		History:             []trade.ReturnHistoryEntry(m.History),
	}
}

// FromDomain populates the persistence model from a domain OrderReturn entity.
func (m *OrderReturnModel) FromDomain(r *trade.OrderReturn) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.OrderID = r.OrderID
	m.CustomerID = r.CustomerID
	m.ReturnedQuantity = r.ReturnedQuantity
	m.Reason = r.Reason
	m.Status = r.Status
	m.RefundAmount = r.RefundAmount
	m.Restocked = r.Restocked
	m.History = datatypes.NewJSONSlice(nonNilSlice(r.History))
}

// OrderReturnModelFromDomain creates a new persistence model from a domain OrderReturn entity.
func OrderReturnModelFromDomain(r *trade.OrderReturn) *OrderReturnModel {
	m := &OrderReturnModel{}
	m.FromDomain(r)
	return m
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
