package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository and the inventory
// StockStore using GORM. Stock changes are single conditional statements so
// the database serializes concurrent reservations on the product row.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// DecrementIfAvailable removes quantity units from stock only when at least
// that many are available. It reports false, leaving stock untouched, when
// there are not enough units.
func (r *GormProductRepository) DecrementIfAvailable(ctx context.Context, tenantID, productID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ? AND id = ? AND stock >= ?", tenantID, productID, quantity).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Increment adds quantity units back to stock
func (r *GormProductRepository) Increment(ctx context.Context, tenantID, productID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Available returns the current stock of a product
func (r *GormProductRepository) Available(ctx context.Context, tenantID, productID uuid.UUID) (int, error) {
	var stock int
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Select("stock").
		Scan(&stock)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, catalog.ErrProductNotFound
	}
	return stock, nil
}

// Lock takes the product row lock with SELECT ... FOR UPDATE
func (r *GormProductRepository) Lock(ctx context.Context, tenantID, productID uuid.UUID) error {
	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrProductNotFound
	}
	return err
}

// Ensure GormProductRepository implements ProductRepository and StockStore
var (
	_ catalog.ProductRepository = (*GormProductRepository)(nil)
	_ inventory.StockStore      = (*GormProductRepository)(nil)
)
