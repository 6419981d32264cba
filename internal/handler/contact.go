package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/payload"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewContactMgr)
}

type ContactMgr struct {
	name  string
	store *store.Store
}

func NewContactMgr(conf *RegisterConfig) Manager {
	return &ContactMgr{
		name:  "contacts",
		store: conf.Store,
	}
}

func (mgr *ContactMgr) GetName() string { return mgr.name }

func (mgr *ContactMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ContactMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.POST("", mgr.Create)
	g.GET("/:id", mgr.Get)
	g.PUT("/:id", mgr.Update)
	g.DELETE("/:id", mgr.Delete)
}

func (mgr *ContactMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ContactListReq struct {
		PageIndex *int    `form:"page_index" binding:"required"`
		PageSize  *int    `form:"page_size" binding:"required"`
		Type      *string `form:"type"`
		NameLike  *string `form:"name_like"`
	}

	ContactResp struct {
		ID      uint              `json:"id"`
		Name    string            `json:"name"`
		Type    model.ContactType `json:"type"`
		Email   *string           `json:"email"`
		Phone   *string           `json:"phone"`
		Company *string           `json:"company"`
		Notes   *string           `json:"notes"`
	}
)

func toContactResp(ct *model.Contact) ContactResp {
	return ContactResp{
		ID:      ct.ID,
		Name:    ct.Name,
		Type:    ct.Type,
		Email:   ct.Email,
		Phone:   ct.Phone,
		Company: ct.Company,
		Notes:   ct.Notes,
	}
}

// List godoc
//
//	@Summary		List the tenant's contacts
//	@Tags			Contact
//	@Produce		json
//	@Security		Bearer
//	@Param			page	query		ContactListReq	true	"pagination and filters"
//	@Success		200		{object}	resputil.Response[payload.ListResp[ContactResp]]	"contacts"
//	@Router			/v1/contacts [get]
func (mgr *ContactMgr) List(c *gin.Context) {
	token := util.GetToken(c)

	var req ContactListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	filter := store.ContactFilter{
		NameLike: req.NameLike,
		Offset:   (*req.PageIndex) * (*req.PageSize),
		Limit:    *req.PageSize,
	}
	if req.Type != nil {
		contactType, err := model.ParseContactType(*req.Type)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		filter.Type = &contactType
	}

	contacts, count, err := mgr.store.ListContacts(c, token.TenantID, filter)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	rows := lo.Map(contacts, func(ct *model.Contact, _ int) ContactResp { return toContactResp(ct) })
	resputil.Success(c, payload.ListResp[ContactResp]{Rows: rows, Count: count})
}

type ContactCreateReq struct {
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Notes   *string `json:"notes"`
}

// Create godoc
//
//	@Summary		Create a contact
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			data	body		ContactCreateReq	true	"contact info"
//	@Success		200		{object}	resputil.Response[ContactResp]	"created contact"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/contacts [post]
func (mgr *ContactMgr) Create(c *gin.Context) {
	token := util.GetToken(c)

	var req ContactCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	contactType, err := model.ParseContactType(req.Type)
	if err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	contact := model.Contact{
		Name:    req.Name,
		Type:    contactType,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
	if err := mgr.store.CreateContact(c, token.TenantID, &contact); err != nil {
		klog.Errorf("contact create failed, tenant: %d, err: %v", token.TenantID, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, toContactResp(&contact))
}

type ContactIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// Get godoc
//
//	@Summary		Get one contact
//	@Tags			Contact
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"contact id"
//	@Success		200	{object}	resputil.Response[ContactResp]	"contact"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/contacts/{id} [get]
func (mgr *ContactMgr) Get(c *gin.Context) {
	token := util.GetToken(c)

	var idReq ContactIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	contact, err := mgr.store.GetContact(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, toContactResp(contact))
}

type ContactUpdateReq struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Notes   *string `json:"notes"`
}

// Update godoc
//
//	@Summary		Update contact fields
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int	true	"contact id"
//	@Param			data	body		ContactUpdateReq	true	"fields to update"
//	@Success		200		{object}	resputil.Response[string]	"updated"
//	@Failure		404		{object}	resputil.Response[any]	"not found"
//	@Router			/v1/contacts/{id} [put]
func (mgr *ContactMgr) Update(c *gin.Context) {
	token := util.GetToken(c)

	var idReq ContactIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	var req ContactUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	update := store.ContactUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
	if req.Type != nil {
		contactType, err := model.ParseContactType(*req.Type)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		update.Type = &contactType
	}
	if err := mgr.store.UpdateContact(c, token.TenantID, idReq.ID, update); err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "contact updated")
}

// Delete godoc
//
//	@Summary		Delete a contact
//	@Description	Tasks assigned to the contact become unassigned in the same transaction
//	@Tags			Contact
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"contact id"
//	@Success		200	{object}	resputil.Response[string]	"deleted"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/contacts/{id} [delete]
func (mgr *ContactMgr) Delete(c *gin.Context) {
	token := util.GetToken(c)

	var idReq ContactIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	if err := mgr.store.DeleteContact(c, token.TenantID, idReq.ID); err != nil {
		klog.Errorf("contact delete failed, tenant: %d, contact: %d, err: %v", token.TenantID, idReq.ID, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "contact deleted")
}
