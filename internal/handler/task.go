package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/resputil"
	"github.com/sitegrid-labs/sitegrid/internal/util"
	"github.com/sitegrid-labs/sitegrid/pkg/notify"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTaskMgr)
}

type TaskMgr struct {
	name     string
	store    *store.Store
	notifier *notify.Notifier
}

func NewTaskMgr(conf *RegisterConfig) Manager {
	return &TaskMgr{
		name:     "tasks",
		store:    conf.Store,
		notifier: conf.Notifier,
	}
}

func (mgr *TaskMgr) GetName() string { return mgr.name }

func (mgr *TaskMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TaskMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List) // ?project_id=
	g.POST("", mgr.Create)
	g.GET("/:id", mgr.Get)
	g.PUT("/:id", mgr.Update)
	g.PUT("/:id/position", mgr.Reorder)
	g.DELETE("/:id", mgr.Delete)
}

func (mgr *TaskMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type TaskResp struct {
	ID          uint               `json:"id"`
	ProjectID   uint               `json:"projectId"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Status      model.TaskStatus   `json:"status"`
	Priority    model.TaskPriority `json:"priority"`
	Position    int                `json:"position"`
	AssigneeID  *uint              `json:"assigneeId"`
	Assignee    *ContactResp       `json:"assignee,omitempty"`
	Tags        datatypes.JSON     `json:"tags"`
	CreatedBy   uint               `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func toTaskResp(t *model.Task) TaskResp {
	resp := TaskResp{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Position:    t.Position,
		AssigneeID:  t.AssigneeID,
		Tags:        t.Tags,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
	if t.Assignee != nil {
		assignee := toContactResp(t.Assignee)
		resp.Assignee = &assignee
	}
	return resp
}

type TaskListReq struct {
	ProjectID uint `form:"project_id" binding:"required"`
}

// List godoc
//
//	@Summary		List a project's tasks in manual order
//	@Tags			Task
//	@Produce		json
//	@Security		Bearer
//	@Param			project_id	query		int	true	"project id"
//	@Success		200			{object}	resputil.Response[[]TaskResp]	"tasks"
//	@Failure		400			{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/tasks [get]
func (mgr *TaskMgr) List(c *gin.Context) {
	token := util.GetToken(c)

	var req TaskListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	tasks, err := mgr.store.ListTasks(c, token.TenantID, req.ProjectID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, lo.Map(tasks, func(t *model.Task, _ int) TaskResp { return toTaskResp(t) }))
}

type TaskCreateReq struct {
	ProjectID   uint           `json:"projectId" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Description *string        `json:"description"`
	Priority    *string        `json:"priority"`
	Position    *int           `json:"position"`
	AssigneeID  *uint          `json:"assigneeId"`
	Tags        datatypes.JSON `json:"tags"`
}

// Create godoc
//
//	@Summary		Create a task
//	@Description	The assignee, when set, must be a contact of the same tenant
//	@Tags			Task
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			data	body		TaskCreateReq	true	"task info"
//	@Success		200		{object}	resputil.Response[TaskResp]	"created task"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Router			/v1/tasks [post]
func (mgr *TaskMgr) Create(c *gin.Context) {
	token := util.GetToken(c)

	var req TaskCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	priority := model.PriorityMedium
	if req.Priority != nil {
		var err error
		priority, err = model.ParseTaskPriority(*req.Priority)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
	}

	task := model.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskPending,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
		CreatedBy:   token.UserID,
	}
	if req.Position != nil {
		task.Position = *req.Position
	}
	if err := mgr.store.CreateTask(c, token.TenantID, &task); err != nil {
		klog.Errorf("task create failed, tenant: %d, project: %d, err: %v", token.TenantID, req.ProjectID, err)
		resputil.StoreError(c, err)
		return
	}

	mgr.notifier.TaskEvent("task.created", token.TenantID, task.ProjectID, task.ID, task.Title)
	mgr.notifyAssignment(c, token.TenantID, &task)
	resputil.Success(c, toTaskResp(&task))
}

type TaskIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// Get godoc
//
//	@Summary		Get one task
//	@Tags			Task
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"task id"
//	@Success		200	{object}	resputil.Response[TaskResp]	"task"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/tasks/{id} [get]
func (mgr *TaskMgr) Get(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	task, err := mgr.store.GetTask(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, toTaskResp(task))
}

type TaskUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *uint   `json:"assigneeId"`
	// ClearAssignee distinguishes "unassign" from "leave unchanged".
	ClearAssignee bool           `json:"clearAssignee"`
	Tags          datatypes.JSON `json:"tags"`
}

// Update godoc
//
//	@Summary		Update task fields
//	@Description	Status accepts hyphen or snake_case variants of the closed enum; anything else is rejected
//	@Tags			Task
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int	true	"task id"
//	@Param			data	body		TaskUpdateReq	true	"fields to update"
//	@Success		200		{object}	resputil.Response[string]	"updated"
//	@Failure		400		{object}	resputil.Response[any]	"invalid request"
//	@Failure		404		{object}	resputil.Response[any]	"not found"
//	@Router			/v1/tasks/{id} [put]
func (mgr *TaskMgr) Update(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	var req TaskUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}

	update := store.TaskUpdate{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
		Tags:          req.Tags,
	}
	if req.Status != nil {
		status, err := model.ParseTaskStatus(*req.Status)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		update.Status = &status
	}
	if req.Priority != nil {
		priority, err := model.ParseTaskPriority(*req.Priority)
		if err != nil {
			resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
			return
		}
		update.Priority = &priority
	}

	if err := mgr.store.UpdateTask(c, token.TenantID, idReq.ID, update); err != nil {
		klog.Errorf("task update failed, tenant: %d, task: %d, err: %v", token.TenantID, idReq.ID, err)
		resputil.StoreError(c, err)
		return
	}

	if req.Status != nil || req.AssigneeID != nil {
		if task, err := mgr.store.GetTask(c, token.TenantID, idReq.ID); err == nil {
			if req.Status != nil {
				mgr.notifier.TaskEvent("task.status_changed", token.TenantID, task.ProjectID, task.ID, string(task.Status))
			}
			if req.AssigneeID != nil {
				mgr.notifyAssignment(c, token.TenantID, task)
			}
		}
	}
	resputil.Success(c, "task updated")
}

type TaskReorderReq struct {
	Position *int `json:"position" binding:"required"`
}

// Reorder godoc
//
//	@Summary		Set the manual position of a task
//	@Tags			Task
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int	true	"task id"
//	@Param			data	body		TaskReorderReq	true	"new position"
//	@Success		200		{object}	resputil.Response[string]	"reordered"
//	@Failure		404		{object}	resputil.Response[any]	"not found"
//	@Router			/v1/tasks/{id}/position [put]
func (mgr *TaskMgr) Reorder(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	var req TaskReorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	if err := mgr.store.ReorderTask(c, token.TenantID, idReq.ID, *req.Position); err != nil {
		resputil.StoreError(c, err)
		return
	}
	resputil.Success(c, "task reordered")
}

// Delete godoc
//
//	@Summary		Delete a task
//	@Description	Every dependency edge referencing the task as either endpoint is removed in the same transaction
//	@Tags			Task
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"task id"
//	@Success		200	{object}	resputil.Response[string]	"deleted"
//	@Failure		404	{object}	resputil.Response[any]	"not found"
//	@Router			/v1/tasks/{id} [delete]
func (mgr *TaskMgr) Delete(c *gin.Context) {
	token := util.GetToken(c)

	var idReq TaskIDReq
	if err := c.ShouldBindUri(&idReq); err != nil {
		resputil.HTTPError(c, http.StatusBadRequest, err.Error(), resputil.InvalidRequest)
		return
	}
	task, err := mgr.store.GetTask(c, token.TenantID, idReq.ID)
	if err != nil {
		resputil.StoreError(c, err)
		return
	}
	if err := mgr.store.DeleteTask(c, token.TenantID, idReq.ID); err != nil {
		klog.Errorf("task delete failed, tenant: %d, task: %d, err: %v", token.TenantID, idReq.ID, err)
		resputil.StoreError(c, err)
		return
	}
	mgr.notifier.TaskEvent("task.deleted", token.TenantID, task.ProjectID, task.ID, task.Title)
	resputil.Success(c, "task deleted")
}

// notifyAssignment emails the assignee contact when the task has one
// with a known address.
func (mgr *TaskMgr) notifyAssignment(c *gin.Context, tenantID uint, task *model.Task) {
	if task.AssigneeID == nil {
		return
	}
	contact, err := mgr.store.GetContact(c, tenantID, *task.AssigneeID)
	if err != nil || contact.Email == nil {
		return
	}
	project, err := mgr.store.GetProject(c, tenantID, task.ProjectID)
	if err != nil {
		return
	}
	mgr.notifier.TaskEvent("task.assigned", tenantID, task.ProjectID, task.ID, contact.Name)
	notify.SendAssignmentMail(*contact.Email, task.Title, project.Name)
}
