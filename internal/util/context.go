package util

import (
	"github.com/gin-gonic/gin"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

const (
	UserIDKey   = "x-user-id"
	UsernameKey = "x-user-name"

	TenantIDKey   = "x-tenant-id"
	TenantNameKey = "x-tenant-name"

	RoleTenantKey   = "x-role-tenant"
	RolePlatformKey = "x-role-platform"
)

const (
	TenantNameNull = ""
	TenantIDNull   = 0
)

func SetJWTContext(c *gin.Context, msg JWTMessage) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(UsernameKey, msg.Username)

	c.Set(TenantIDKey, msg.TenantID)
	c.Set(TenantNameKey, msg.TenantName)

	c.Set(RoleTenantKey, msg.RoleTenant)
	c.Set(RolePlatformKey, msg.RolePlatform)
}

func GetToken(ctx *gin.Context) JWTMessage {
	var msg JWTMessage
	msg.UserID = ctx.GetUint(UserIDKey)
	msg.Username = ctx.GetString(UsernameKey)

	msg.TenantID = ctx.GetUint(TenantIDKey)
	msg.TenantName = ctx.GetString(TenantNameKey)

	if roleTenant, ok := ctx.Get(RoleTenantKey); ok {
		msg.RoleTenant = roleTenant.(model.Role)
	}
	if rolePlatform, ok := ctx.Get(RolePlatformKey); ok {
		msg.RolePlatform = rolePlatform.(model.Role)
	}
	return msg
}
