package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
)

// AuthProtected validates the bearer token. Mutating requests re-check
// the membership row so a revoked role cannot keep writing until the
// token expires.
func AuthProtected(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenInvalid)
			c.Abort()
			return
		}

		authToken := t[1]
		token, err := util.GetTokenMgr().CheckToken(authToken)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
			c.Abort()
			return
		}

		if c.Request.Method != http.MethodGet && token.TenantID != util.TenantIDNull {
			membership, err := s.GetMembership(c, token.TenantID, token.UserID)
			if err != nil {
				resputil.HTTPError(c, http.StatusUnauthorized, "Membership not found", resputil.TokenExpired)
				c.Abort()
				return
			}
			if membership.Role != token.RoleTenant {
				resputil.HTTPError(c, http.StatusUnauthorized, "Tenant role not match", resputil.TokenExpired)
				c.Abort()
				return
			}
		}

		util.SetJWTContext(c, token)
		c.Next()
	}
}

// AuthAdmin gates platform-admin routes.
func AuthAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.GetToken(c)
		if token.RolePlatform != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusUnauthorized, "Not Admin", resputil.UserNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}
