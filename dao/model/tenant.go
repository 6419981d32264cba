package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant is the isolation boundary. Every business entity belongs to
// exactly one tenant and every query on it is tenant-filtered.
type Tenant struct {
	gorm.Model
	Name     string         `gorm:"type:varchar(128);not null"`
	Slug     string         `gorm:"uniqueIndex;type:varchar(64);not null"`
	Status   TenantStatus   `gorm:"not null;default:2"`
	Settings datatypes.JSON `gorm:"type:jsonb"`

	UserTenants []UserTenant
}
