package model

import (
	"gorm.io/gorm"
)

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name        string     `gorm:"uniqueIndex;type:varchar(32);not null"`
	Nickname    *string    `gorm:"type:varchar(32)"`
	Password    *string    `gorm:"type:varchar(128)"`
	Role        Role       `gorm:"not null;default:2"` // platform role (guest, user, admin)
	Status      UserStatus `gorm:"type:varchar(32);not null;default:active"`
	UserTenants []UserTenant
}

// UserTenant is the membership of a user in a tenant.
type UserTenant struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_user_tenant"`
	TenantID uint `gorm:"uniqueIndex:idx_user_tenant;index"`
	Role     Role `gorm:"not null;default:2"` // role within the tenant (user, admin)

	User   User   `gorm:"foreignKey:UserID"`
	Tenant Tenant `gorm:"foreignKey:TenantID"`
}

// UserInfo is the embedded user summary returned in responses.
type UserInfo struct {
	Username string  `json:"username"`
	Nickname *string `json:"nickname"`
}
