package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByIDForTenant finds a return by ID within a tenant
func (r *GormReturnRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.OrderReturn, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a return and locks its row for the rest of the
// transaction
func (r *GormReturnRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.OrderReturn, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormReturnRepository) findOne(db *gorm.DB, tenantID, id uuid.UUID) (*trade.OrderReturn, error) {
	var model models.OrderReturnModel
	if err := db.Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trade.ErrReturnNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder returns every return filed against an order, newest first
func (r *GormReturnRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*trade.OrderReturn, error) {
	var rows []models.OrderReturnModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	returns := make([]*trade.OrderReturn, len(rows))
	for i := range rows {
		returns[i] = rows[i].ToDomain()
	}
	return returns, nil
}

// Save creates or updates a return
func (r *GormReturnRepository) Save(ctx context.Context, ret *trade.OrderReturn) error {
	model := models.OrderReturnModelFromDomain(ret)
	return r.db.WithContext(ctx).Save(model).Error
}

// ReassignCustomer moves every return of one customer to another
func (r *GormReturnRepository) ReassignCustomer(ctx context.Context, tenantID, from, to uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderReturnModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, from).
		Update("customer_id", to)
	return result.RowsAffected, result.Error
}

// Ensure GormReturnRepository implements ReturnRepository
var _ trade.ReturnRepository = (*GormReturnRepository)(nil)
