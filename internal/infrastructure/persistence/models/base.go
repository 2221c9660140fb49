package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// TenantAggregateModel holds the columns shared by every store-scoped
// aggregate table: identity, audit timestamps, optimistic version and owner.
type TenantAggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomainTenantAggregateRoot rebuilds the aggregate header. Pending events
// are never persisted, so the result has none.
func (m *TenantAggregateModel) ToDomainTenantAggregateRoot() shared.TenantAggregateRoot {
	var root shared.TenantAggregateRoot
	root.ID = m.ID
	root.TenantID = m.TenantID
	root.Version = m.Version
	root.CreatedAt = m.CreatedAt
	root.UpdatedAt = m.UpdatedAt
	return root
}

func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(root shared.TenantAggregateRoot) {
	*m = TenantAggregateModel{
		ID:        root.ID,
		TenantID:  root.TenantID,
		Version:   root.Version,
		CreatedAt: root.CreatedAt,
		UpdatedAt: root.UpdatedAt,
	}
}
