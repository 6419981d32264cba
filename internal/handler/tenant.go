package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/payload"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTenantMgr)
}

type TenantMgr struct {
	name  string
	store *store.Store
}

func NewTenantMgr(conf *RegisterConfig) Manager {
	return &TenantMgr{
		name:  "tenants",
		store: conf.Store,
	}
}

func (mgr *TenantMgr) GetName() string { return mgr.name }

func (mgr *TenantMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TenantMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/current", mgr.GetCurrent)
	g.PUT("/current", mgr.UpdateCurrent)
}

func (mgr *TenantMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListAll)
	g.POST("", mgr.CreateTenant)
}

type TenantResp struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Status   model.TenantStatus `json:"status"`
	Settings datatypes.JSON     `json:"settings"`
}

// GetCurrent godoc
//
//	@Summary		Get the tenant of the current token
//	@Tags			Tenant
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	resputil.Response[TenantResp]	"tenant"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/tenants/current [get]
func (mgr *TenantMgr) GetCurrent(c *gin.Context) {
	token := util.GetToken(c)
	if token.TenantID == util.TenantIDNull {
		resputil.HTTPError(c, http.StatusBadRequest, "token carries no tenant", resputil.InvalidRequest)
		return
	}
	tenant, err := mgr.store.GetTenant(c, token.TenantID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, TenantResp{
		ID:       tenant.ID,
		Name:     tenant.Name,
		Slug:     tenant.Slug,
		Status:   tenant.Status,
		Settings: tenant.Settings,
	})
}

type TenantUpdateReq struct {
	Name     *string        `json:"name"`
	Settings datatypes.JSON `json:"settings"`
}

// UpdateCurrent godoc
//
//	@Summary		Update tenant name or settings
//	@Tags			Tenant
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			data	body		TenantUpdateReq	true	"fields to update"
//	@Success		200		{object}	resputil.Response[string]	"updated"
//	@Failure		403		{object}	resputil.Response[any]	"not tenant admin"
//	@Router			/v1/tenants/current [put]
func (mgr *TenantMgr) UpdateCurrent(c *gin.Context) {
	token := util.GetToken(c)
	if token.RoleTenant != model.RoleAdmin {
		resputil.HTTPError(c, http.StatusForbidden, "tenant admin required", resputil.UserNotAllowed)
		return
	}

	var req TenantUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	if err := mgr.store.UpdateTenant(c, token.TenantID, req.Name, req.Settings); err != nil {
		klog.Errorf("tenant update failed, tenant: %d, err: %v", token.TenantID, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "tenant updated")
}

type TenantCreateReq struct {
	Name string `json:"name" binding:"required"`
	// AdminUserID becomes the tenant's first admin member.
	AdminUserID uint           `json:"adminUserId" binding:"required"`
	Settings    datatypes.JSON `json:"settings"`
}

// CreateTenant godoc
//
//	@Summary		Create a tenant on behalf of a user (platform admin)
//	@Description	Creates the tenant and the user's admin membership in one transaction
//	@Tags			Tenant
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			data	body		TenantCreateReq	true	"tenant info"
//	@Success		200		{object}	resputil.Response[TenantResp]	"created tenant"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/admin/tenants [post]
func (mgr *TenantMgr) CreateTenant(c *gin.Context) {
	var req TenantCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	if _, err := mgr.store.GetUserByID(c, req.AdminUserID); err != nil {
		resputil.StoreError(c, err)
		return
	}
	tenant, err := mgr.store.CreateTenantWithAdmin(c, req.Name, req.Settings, req.AdminUserID)
	if err != nil {
		klog.Errorf("tenant create failed, name: %s, err: %v", req.Name, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, TenantResp{
		ID:       tenant.ID,
		Name:     tenant.Name,
		Slug:     tenant.Slug,
		Status:   tenant.Status,
		Settings: tenant.Settings,
	})
}

// ListAll godoc
//
//	@Summary		List all tenants (platform admin)
//	@Tags			Tenant
//	@Produce		json
//	@Security		Bearer
//	@Param			page	query		payload.ListReqQuery	true	"pagination"
//	@Success		200		{object}	resputil.Response[payload.ListResp[TenantResp]]	"tenants"
//	@Router			/v1/admin/tenants [get]
func (mgr *TenantMgr) ListAll(c *gin.Context) {
	var req payload.ListReqQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	tenants, count, err := mgr.store.ListTenants(c, (*req.PageIndex)*(*req.PageSize), *req.PageSize)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	rows := make([]TenantResp, 0, len(tenants))
	for _, t := range tenants {
		rows = append(rows, TenantResp{
			ID:       t.ID,
			Name:     t.Name,
			Slug:     t.Slug,
			Status:   t.Status,
			Settings: t.Settings,
		})
	}
	resputil.Success(c, payload.ListResp[TenantResp]{Rows: rows, Count: count})
}
