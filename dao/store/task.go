package store

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

// CreateTask inserts a task after verifying the project and, when set,
// the assignee belong to the tenant.
func (s *Store) CreateTask(ctx context.Context, tenantID uint, task *model.Task) error {
	task.TenantID = tenantID
	return asStoreErr(s.transaction(ctx, func(tx *gorm.DB) error {
		var project model.Project
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, task.ProjectID).First(&project).Error
		if err != nil {
			return asStoreErr(err)
		}
		if err := checkAssignee(tx, tenantID, task.AssigneeID); err != nil {
			return err
		}
		return tx.Create(task).Error
	}))
}

func (s *Store) GetTask(ctx context.Context, tenantID, taskID uint) (*model.Task, error) {
	var task model.Task
	err := s.scoped(ctx, tenantID).Preload("Assignee").Where("id = ?", taskID).First(&task).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &task, nil
}

// ListTasks returns a project's tasks in manual order.
func (s *Store) ListTasks(ctx context.Context, tenantID, projectID uint) ([]*model.Task, error) {
	var tasks []*model.Task
	err := s.scoped(ctx, tenantID).
		Where("project_id = ?", projectID).
		Order("position ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return tasks, nil
}

// TaskUpdate carries the mutable task fields. Nil means unchanged.
// ClearAssignee distinguishes "set to null" from "leave alone", the
// ambiguity behind the null-vs-invalid-assignee defect this store exists
// to prevent.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Status        *model.TaskStatus
	Priority      *model.TaskPriority
	AssigneeID    *uint
	ClearAssignee bool
	Tags          datatypes.JSON
}

func (s *Store) UpdateTask(ctx context.Context, tenantID, taskID uint, u TaskUpdate) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var task model.Task
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, taskID).First(&task).Error
		if err != nil {
			return asStoreErr(err)
		}

		updates := map[string]any{}
		if u.Title != nil {
			updates["title"] = *u.Title
		}
		if u.Description != nil {
			updates["description"] = *u.Description
		}
		if u.Status != nil {
			updates["status"] = *u.Status
		}
		if u.Priority != nil {
			updates["priority"] = *u.Priority
		}
		if u.Tags != nil {
			updates["tags"] = u.Tags
		}
		if u.ClearAssignee {
			updates["assignee_id"] = nil
		} else if u.AssigneeID != nil {
			if err := checkAssignee(tx, tenantID, u.AssigneeID); err != nil {
				return err
			}
			updates["assignee_id"] = *u.AssigneeID
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&task).Updates(updates).Error
	})
}

// ReorderTask sets the manual position of a task within its project.
func (s *Store) ReorderTask(ctx context.Context, tenantID, taskID uint, position int) error {
	res := s.scoped(ctx, tenantID).Model(&model.Task{}).Where("id = ?", taskID).Update("position", position)
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task and every dependency edge referencing it as
// either endpoint, in one transaction. The original system did this as
// two separate calls and could strand orphaned edges on failure.
func (s *Store) DeleteTask(ctx context.Context, tenantID, taskID uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var task model.Task
		err := tx.Where("tenant_id = ? AND id = ?", tenantID, taskID).First(&task).Error
		if err != nil {
			return asStoreErr(err)
		}
		err = tx.Where("tenant_id = ? AND (task_id = ? OR prerequisite_id = ?)", tenantID, taskID, taskID).
			Delete(&model.TaskDependency{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

// checkAssignee verifies the referenced contact exists within the tenant.
// A nil assignee is always valid.
func checkAssignee(tx *gorm.DB, tenantID uint, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	var n int64
	err := tx.Model(&model.Contact{}).
		Where("tenant_id = ? AND id = ?", tenantID, *assigneeID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidAssignee
	}
	return nil
}
