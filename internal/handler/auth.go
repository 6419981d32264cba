package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name  string
	store *store.Store
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:  "auth",
		store: conf.Store,
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/signup", mgr.Signup)
	g.POST("/login", mgr.Login)
	g.POST("/refresh", mgr.Refresh)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	SignupReq struct {
		Username string  `json:"username" binding:"required"`
		Password string  `json:"password" binding:"required,min=8"`
		Nickname *string `json:"nickname"`
		// Optional onboarding: create a tenant owned by this user.
		TenantName *string        `json:"tenantName"`
		Settings   datatypes.JSON `json:"settings"`
	}

	TokenResp struct {
		AccessToken  string         `json:"accessToken"`
		RefreshToken string         `json:"refreshToken"`
		User         model.UserInfo `json:"user"`
	}
)

// Signup godoc
//
//	@Summary		Register a user, optionally onboarding a tenant
//	@Description	Creates the user; with tenantName set, also creates the tenant and the admin membership in one transaction
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			data	body		SignupReq	true	"signup info"
//	@Success		200		{object}	resputil.Response[TokenResp]	"token pair"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Failure		500		{object}	resputil.Response[any]	"other errors"
//	@Router			/v1/auth/signup [post]
func (mgr *AuthMgr) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	password := string(hash)
	user := model.User{
		Name:     req.Username,
		Nickname: req.Nickname,
		Password: &password,
		Role:     model.RoleUser,
		Status:   model.UserActive,
	}
	if err := mgr.store.CreateUser(c, &user); err != nil {
		klog.Errorf("signup failed, username: %s, err: %v", req.Username, err)
		resputil.StoreError(c, err)
		return
	}

	msg := util.JWTMessage{
		UserID:       user.ID,
		Username:     user.Name,
		RolePlatform: user.Role,
	}

	if req.TenantName != nil {
		tenant, err := mgr.store.CreateTenantWithAdmin(c, *req.TenantName, req.Settings, user.ID)
		if err != nil {
			klog.Errorf("tenant onboarding failed, username: %s, err: %v", req.Username, err)
			resputil.StoreError(c, err)
			return
		}
		msg.TenantID = tenant.ID
		msg.TenantName = tenant.Name
		msg.RoleTenant = model.RoleAdmin
	}

	accessToken, refreshToken, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.UserInfo{Username: user.Name, Nickname: user.Nickname},
	})
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	// TenantID selects which tenant context the token carries; it must
	// be a tenant the user belongs to.
	TenantID *uint `json:"tenantId"`
}

// Login godoc
//
//	@Summary		Log in with username and password
//	@Description	Verifies credentials and issues an access/refresh token pair
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			data	body		LoginReq	true	"credentials"
//	@Success		200		{object}	resputil.Response[TokenResp]	"token pair"
//	@Failure		401		{object}	resputil.Response[any]	"invalid credentials"
//	@Router			/v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	user, err := mgr.store.GetUserByName(c, req.Username)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "invalid credentials", resputil.InvalidCredentials)
		return
	}
	if user.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "invalid credentials", resputil.InvalidCredentials)
		return
	}

	msg := util.JWTMessage{
		UserID:       user.ID,
		Username:     user.Name,
		RolePlatform: user.Role,
	}
	if req.TenantID != nil {
		membership, err := mgr.store.GetMembership(c, *req.TenantID, user.ID)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, "not a member of this tenant", resputil.UserNotAllowed)
			return
		}
		tenant, err := mgr.store.GetTenant(c, *req.TenantID)
		if err != nil {
			resputil.StoreError(c, err)
			return
		}
		msg.TenantID = tenant.ID
		msg.TenantName = tenant.Name
		msg.RoleTenant = membership.Role
	}

	accessToken, refreshToken, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.UserInfo{Username: user.Name, Nickname: user.Nickname},
	})
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh godoc
//
//	@Summary		Exchange a refresh token for a new token pair
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			data	body		RefreshReq	true	"refresh token"
//	@Success		200		{object}	resputil.Response[TokenResp]	"token pair"
//	@Failure		401		{object}	resputil.Response[any]	"invalid token"
//	@Router			/v1/auth/refresh [post]
func (mgr *AuthMgr) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	msg, err := util.GetTokenMgr().CheckToken(req.RefreshToken)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
		return
	}
	user, err := mgr.store.GetUserByID(c, msg.UserID)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "user no longer exists", resputil.TokenInvalid)
		return
	}

	accessToken, refreshToken, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.UserInfo{Username: user.Name, Nickname: user.Nickname},
	})
}
