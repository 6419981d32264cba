package handler

import (
	"net/http"
	"time"

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
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name  string
	store *store.Store
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name:  "projects",
		store: conf.Store,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.POST("", mgr.Create)
	g.GET("/:id", mgr.Get)
	g.PUT("/:id", mgr.Update)
}

func (mgr *ProjectMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// Projects are never deleted over the API; archival is a status update.

type (
	ProjectListReq struct {
		PageIndex *int           `form:"page_index" binding:"required"`
		PageSize  *int           `form:"page_size" binding:"required"`
		Status    *string        `form:"status"`
		NameLike  *string        `form:"name_like"`
		OrderCol  *string        `form:"order_col"`
		Order     *payload.Order `form:"order"`
	}

	ProjectResp struct {
		ID          uint                `json:"id"`
		Name        string              `json:"name"`
		Description *string             `json:"description"`
		Status      model.ProjectStatus `json:"status"`
		BudgetCents int64               `json:"budgetCents"`
		StartDate   *time.Time          `json:"startDate"`
		EndDate     *time.Time          `json:"endDate"`
		CreatedBy   uint                `json:"createdBy"`
		CreatedAt   time.Time           `json:"createdAt"`
	}
)

// orderCols is the whitelist for client-chosen ordering.
var orderCols = map[string]string{
	"id":         "id",
	"name":       "name",
	"status":     "status",
	"start_date": "start_date",
	"end_date":   "end_date",
	"budget":     "budget_cents",
}

func toProjectResp(p *model.Project) ProjectResp {
	return ProjectResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		BudgetCents: p.BudgetCents,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// List godoc
//
//	@Summary		List the tenant's projects
//	@Description	Paged listing with status/name filters and whitelisted ordering
//	@Tags			Project
//	@Produce		json
//	@Security		Bearer
//	@Param			page	query		ProjectListReq	true	"pagination and filters"
//	@Success		200		{object}	resputil.Response[payload.ListResp[ProjectResp]]	"projects"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/projects [get]
func (mgr *ProjectMgr) List(c *gin.Context) {
	token := util.GetToken(c)

	var req ProjectListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	filter := store.ProjectFilter{
		NameLike: req.NameLike,
		Offset:   (*req.PageIndex) * (*req.PageSize),
		Limit:    *req.PageSize,
	}
	if req.Status != nil {
		status, err := model.ParseProjectStatus(*req.Status)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		filter.Status = &status
	}
	if req.OrderCol != nil {
		if col, ok := orderCols[*req.OrderCol]; ok {
			filter.OrderCol = col
			filter.Desc = req.Order != nil && *req.Order == payload.Desc
		}
	}

	projects, count, err := mgr.store.ListProjects(c, token.TenantID, filter)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	rows := lo.Map(projects, func(p *model.Project, _ int) ProjectResp { return toProjectResp(p) })
	resputil.Success(c, payload.ListResp[ProjectResp]{Rows: rows, Count: count})
}

type ProjectCreateReq struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	BudgetCents *int64     `json:"budgetCents"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Create godoc
//
//	@Summary		Create a project
//	@Tags			Project
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			data	body		ProjectCreateReq	true	"project info"
//	@Success		200		{object}	resputil.Response[ProjectResp]	"created project"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/projects [post]
func (mgr *ProjectMgr) Create(c *gin.Context) {
	token := util.GetToken(c)

	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.ProjectNew,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   token.UserID,
	}
	if req.BudgetCents != nil {
		project.BudgetCents = *req.BudgetCents
	}
	if err := mgr.store.CreateProject(c, token.TenantID, &project); err != nil {
		klog.Errorf("project create failed, tenant: %d, err: %v", token.TenantID, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, toProjectResp(&project))
}

type ProjectIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// Get godoc
//
//	@Summary		Get one project
//	@Tags			Project
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"project id"
//	@Success		200	{object}	resputil.Response[ProjectResp]	"project"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/projects/{id} [get]
func (mgr *ProjectMgr) Get(c *gin.Context) {
	token := util.GetToken(c)

	var idReq ProjectIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	project, err := mgr.store.GetProject(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, toProjectResp(project))
}

type ProjectUpdateReq struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	BudgetCents *int64     `json:"budgetCents"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Update godoc
//
//	@Summary		Update project fields
//	@Description	Status values outside the closed enum are rejected
//	@Tags			Project
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int	true	"project id"
//	@Param			data	body		ProjectUpdateReq	true	"fields to update"
//	@Success		200		{object}	resputil.Response[string]	"updated"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Failure		404		{object}	resputil.Response[any]	"not found"
//	@Router			/v1/projects/{id} [put]
func (mgr *ProjectMgr) Update(c *gin.Context) {
	token := util.GetToken(c)

	var idReq ProjectIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	update := store.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		BudgetCents: req.BudgetCents,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status, err := model.ParseProjectStatus(*req.Status)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		update.Status = &status
	}
	if err := mgr.store.UpdateProject(c, token.TenantID, idReq.ID, update); err != nil {
		klog.Errorf("project update failed, tenant: %d, project: %d, err: %v", token.TenantID, idReq.ID, err)
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "project updated")
}
