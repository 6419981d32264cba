package model

import (
	"time"

	"gorm.io/gorm"
)

// Project groups tasks within one tenant. Projects are never hard-deleted;
// archival is a status transition (see ProjectStatus).
type Project struct {
	gorm.Model
	TenantID    uint          `gorm:"index;not null"`
	Name        string        `gorm:"type:varchar(128);not null"`
	Description *string       `gorm:"type:text"`
	Status      ProjectStatus `gorm:"type:varchar(32);not null;default:new"`
	BudgetCents int64         `gorm:"not null;default:0"`
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   uint `gorm:"not null"`

	Tenant Tenant `gorm:"foreignKey:TenantID"`
}
