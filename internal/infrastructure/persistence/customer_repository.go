package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForTenant finds a customer by ID within a tenant
func (r *GormCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return r.findOne(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds a customer and locks its row until the
// surrounding transaction ends
func (r *GormCustomerRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, id)
}

func (r *GormCustomerRepository) findOne(db *gorm.DB, tenantID, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := db.Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, partner.ErrCustomerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIdentityKey returns the customers whose primary or alternate value of
// the field normalizes to key, oldest first
func (r *GormCustomerRepository) FindByIdentityKey(ctx context.Context, tenantID uuid.UUID, field partner.ContactField, key string) ([]*partner.Customer, error) {
	column := models.IdentityKeyColumn(field)
	if column == "" {
		return nil, fmt.Errorf("contact field %q is not an identity channel", field)
	}

	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND "+column+" @> ?::text[]", tenantID, pq.Array([]string{key})).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]*partner.Customer, len(rows))
	for i := range rows {
		customers[i] = rows[i].ToDomain()
	}
	return customers, nil
}

// LockIdentityKeys takes transaction-scoped advisory locks on the given
// identity keys. Keys are locked in sorted order so concurrent callers
// cannot deadlock on each other.
func (r *GormCustomerRepository) LockIdentityKeys(ctx context.Context, tenantID uuid.UUID, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	db := r.db.WithContext(ctx)
	prev := ""
	for i, k := range sorted {
		if i > 0 && k == prev {
			continue
		}
		prev = k
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", tenantID.String()+"|"+k).Error; err != nil {
			return err
		}
	}
	return nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a customer within a tenant
func (r *GormCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.CustomerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return partner.ErrCustomerNotFound
	}
	return nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
