package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/pkg/notify"
)

// Manager owns one route namespace. Its name becomes the route group
// under the public, protected and admin prefixes.
type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared dependencies handed to every
// manager constructor.
type RegisterConfig struct {
	Store    *store.Store
	Notifier *notify.Notifier
}

// Registers collects manager constructors via init() in each handler
// file.
var Registers []func(*RegisterConfig) Manager
