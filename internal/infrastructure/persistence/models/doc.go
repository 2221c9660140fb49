// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (id, timestamps, version, tenant)
//   - partner.go: customers with their alternate contact arrays and identity keys
//   - catalog.go: products and their stock column
//   - trade.go: orders and returns with jsonb timelines
//   - outbox.go: outbox rows written in the same transaction as the change
package models
