package model

import (
	"gorm.io/gorm"
)

// Contact is a tenant-scoped directory entry (contractor, vendor, customer
// or design professional). Contacts are the only valid task assignees.
type Contact struct {
	gorm.Model
	TenantID uint        `gorm:"index;not null"`
	Name     string      `gorm:"type:varchar(128);not null"`
	Type     ContactType `gorm:"type:varchar(32);not null"`
	Email    *string     `gorm:"type:varchar(128)"`
	Phone    *string     `gorm:"type:varchar(32)"`
	Company  *string     `gorm:"type:varchar(128)"`
	Notes    *string     `gorm:"type:text"`

	Tenant Tenant `gorm:"foreignKey:TenantID"`
}
