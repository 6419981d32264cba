// Package store is the tenant-scoped query boundary. Every method on a
// business entity takes the tenant ID as its first parameter and appends
// the tenant predicate itself, so an unfiltered query cannot be written
// from a handler. Multi-row mutations on one logical entity run inside a
// single transaction.
package store

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// scoped returns a session bound to ctx and filtered to one tenant.
func (s *Store) scoped(ctx context.Context, tenantID uint) *gorm.DB {
	return s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
}

// transaction runs fn atomically on the underlying connection.
func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
