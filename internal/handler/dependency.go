package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
	"github.com/sitegrid-labs/sitegrid/pkg/notify"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewDependencyMgr)
}

// DependencyMgr serves the dependency edges of a task. It shares the
// "tasks" route group with TaskMgr.
type DependencyMgr struct {
	name     string
	store    *store.Store
	notifier *notify.Notifier
}

func NewDependencyMgr(conf *RegisterConfig) Manager {
	return &DependencyMgr{
		name:     "tasks",
		store:    conf.Store,
		notifier: conf.Notifier,
	}
}

func (mgr *DependencyMgr) GetName() string { return mgr.name }

func (mgr *DependencyMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *DependencyMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/dependencies", mgr.List)
	g.POST("/:id/dependencies", mgr.Add)
	g.DELETE("/:id/dependencies/:prereqId", mgr.Remove)
	g.GET("/:id/dependencies/ancestors", mgr.Ancestors)
}

func (mgr *DependencyMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type DependencyResp struct {
	ID                uint                 `json:"id"`
	TaskID            uint                 `json:"taskId"`
	PrerequisiteID    uint                 `json:"prerequisiteId"`
	PrerequisiteTitle string               `json:"prerequisiteTitle"`
	Type              model.DependencyType `json:"type"`
	LagDays           int                  `json:"lagDays"`
	CreatedAt         time.Time            `json:"createdAt"`
}

func toDependencyResp(dep *model.TaskDependency) DependencyResp {
	resp := DependencyResp{
		ID:             dep.ID,
		TaskID:         dep.TaskID,
		PrerequisiteID: dep.PrerequisiteID,
		Type:           dep.Type,
		LagDays:        dep.LagDays,
		CreatedAt:      dep.CreatedAt,
	}
	if dep.Prerequisite != nil {
		resp.PrerequisiteTitle = dep.Prerequisite.Title
	}
	return resp
}

// List godoc
//
//	@Summary		List a task's direct prerequisites
//	@Tags			Dependency
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"task id"
//	@Success		200	{object}	resputil.Response[[]DependencyResp]	"dependency edges"
//	@Failure		404	{object}	resputil.Response[any]	"task not found"
//	@Router			/v1/tasks/{id}/dependencies [get]
func (mgr *DependencyMgr) List(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	deps, err := mgr.store.ListDependencies(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, lo.Map(deps, func(d *model.TaskDependency, _ int) DependencyResp { return toDependencyResp(d) }))
}

type DependencyAddReq struct {
	PrerequisiteID uint `json:"prerequisiteId" binding:"required"`
	// Type defaults to finish_to_start when omitted.
	Type    *string `json:"type"`
	LagDays int     `json:"lagDays"`
}

// Add godoc
//
//	@Summary		Add a prerequisite to a task
//	@Description	Rejects self-dependencies, duplicate edges, cross-project edges, negative lag, and any edge that would close a cycle
//	@Tags			Dependency
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int	true	"dependent task id"
//	@Param			data	body		DependencyAddReq	true	"edge info"
//	@Success		200		{object}	resputil.Response[DependencyResp]	"created edge"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Failure		404		{object}	resputil.Response[any]	"task not found"
//	@Failure		409		{object}	resputil.Response[any]	"duplicate edge or cycle"
//	@Router			/v1/tasks/{id}/dependencies [post]
func (mgr *DependencyMgr) Add(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	var req DependencyAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	depType := model.FinishToStart
	if req.Type != nil {
		var err error
		depType, err = model.ParseDependencyType(*req.Type)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
	}

	dep, err := mgr.store.AddDependency(c, token.TenantID, idReq.ID, req.PrerequisiteID, depType, req.LagDays, token.UserID)
	if err != nil {
		klog.Errorf("dependency add failed, tenant: %d, task: %d, prereq: %d, err: %v",
			token.TenantID, idReq.ID, req.PrerequisiteID, err)
		resputil.StoreError(c, err)
		return
	}

	mgr.notifier.TaskEvent("task.dependency_added", token.TenantID, dep.ProjectID, dep.TaskID, string(dep.Type))
	resputil.Success(c, toDependencyResp(dep))
}

type DependencyRemoveReq struct {
	ID       uint `uri:"id" binding:"required"`
	PrereqID uint `uri:"prereqId" binding:"required"`
}

// Remove godoc
//
//	@Summary		Remove one prerequisite edge
//	@Tags			Dependency
//	@Produce		json
//	@Security		Bearer
//	@Param			id			path		int	true	"dependent task id"
//	@Param			prereqId	path		int	true	"prerequisite task id"
//	@Success		200			{object}	resputil.Response[string]	"removed"
//	@Failure		404			{object}	resputil.Response[any]	"edge not found"
//	@Router			/v1/tasks/{id}/dependencies/{prereqId} [delete]
func (mgr *DependencyMgr) Remove(c *gin.Context) {
	token := util.GetToken(c)

	var req DependencyRemoveReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	if err := mgr.store.RemoveDependency(c, token.TenantID, req.ID, req.PrereqID); err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "dependency removed")
}

// Ancestors godoc
//
//	@Summary		List every transitive prerequisite of a task
//	@Description	The blocking closure: all tasks that must finish, directly or indirectly, before this one can start
//	@Tags			Dependency
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"task id"
//	@Success		200	{object}	resputil.Response[[]uint]	"ancestor task ids, ascending"
//	@Failure		404	{object}	resputil.Response[any]	"task not found"
//	@Router			/v1/tasks/{id}/dependencies/ancestors [get]
func (mgr *DependencyMgr) Ancestors(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	ancestors, err := mgr.store.BlockingAncestors(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, ancestors)
}
