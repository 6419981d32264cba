package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

// CreateTenantWithAdmin onboards a tenant: the tenant row and the admin
// membership of the creating user are written in one transaction.
func (s *Store) CreateTenantWithAdmin(ctx context.Context, name string, settings datatypes.JSON, userID uint) (*model.Tenant, error) {
	tenant := model.Tenant{
		Name:     name,
		Slug:     newSlug(name),
		Status:   model.TenantActive,
		Settings: settings,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		membership := model.UserTenant{
			UserID:   userID,
			TenantID: tenant.ID,
			Role:     model.RoleAdmin,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &tenant, nil
}

func (s *Store) GetTenant(ctx context.Context, tenantID uint) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &tenant, nil
}

func (s *Store) UpdateTenant(ctx context.Context, tenantID uint, name *string, settings datatypes.JSON) error {
	updates := map[string]any{}
	if name != nil {
		updates["name"] = *name
	}
	if settings != nil {
		updates["settings"] = settings
	}
	if len(updates) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", tenantID).Updates(updates)
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTenants is a platform-admin operation and deliberately unscoped.
func (s *Store) ListTenants(ctx context.Context, offset, limit int) ([]*model.Tenant, int64, error) {
	var tenants []*model.Tenant
	var count int64
	q := s.db.WithContext(ctx).Model(&model.Tenant{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&tenants).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}
	return tenants, count, nil
}

// newSlug derives a URL-safe slug and suffixes it with a short random
// token so onboarding never collides on common company names.
func newSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "tenant"
	}
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8])
}
