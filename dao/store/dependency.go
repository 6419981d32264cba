package store

import (
	"context"

	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/pkg/depgraph"
	"github.com/sitegrid-labs/sitegrid/pkg/monitor"
)

// AddDependency links task -> prerequisite (finish-to-start, lagDays
// offset). Both endpoints must exist in the tenant and share a project,
// the edge must be new, the lag non-negative, and the insert must not
// close a cycle. Validation and insert run in one transaction that takes
// the project's advisory lock before reading the edge set; without it,
// two concurrent inserts at READ COMMITTED could each miss the other's
// uncommitted row and commit a complementary pair forming a cycle.
func (s *Store) AddDependency(
	ctx context.Context,
	tenantID, taskID, prerequisiteID uint,
	depType model.DependencyType,
	lagDays int,
	createdBy uint,
) (*model.TaskDependency, error) {
	if lagDays < 0 {
		monitor.DependencyRejects.WithLabelValues("negative_lag").Inc()
		return nil, ErrNegativeLag
	}

	var edge model.TaskDependency
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		task, err := findTenantTask(tx, tenantID, taskID)
		if err != nil {
			return err
		}
		prereq, err := findTenantTask(tx, tenantID, prerequisiteID)
		if err != nil {
			return err
		}
		if task.ProjectID != prereq.ProjectID {
			return ErrCrossProjectReference
		}

		if err := lockProjectGraph(tx, tenantID, task.ProjectID); err != nil {
			return err
		}
		edges, err := projectEdges(tx, tenantID, task.ProjectID)
		if err != nil {
			return err
		}
		g := depgraph.FromEdges(edges)
		if g.HasEdge(taskID, prerequisiteID) {
			return ErrDuplicateEdge
		}
		if g.WouldCreateCycle(taskID, prerequisiteID) {
			return ErrCycleDetected
		}

		edge = model.TaskDependency{
			TenantID:       tenantID,
			ProjectID:      task.ProjectID,
			TaskID:         taskID,
			PrerequisiteID: prerequisiteID,
			Type:           depType,
			LagDays:        lagDays,
			CreatedBy:      createdBy,
		}
		return tx.Create(&edge).Error
	})
	if err != nil {
		if reason := rejectReason(err); reason != "" {
			monitor.DependencyRejects.WithLabelValues(reason).Inc()
		}
		return nil, err
	}
	klog.Infof("dependency added, tenant: %d, task: %d -> prerequisite: %d, lag: %d",
		tenantID, taskID, prerequisiteID, lagDays)
	return &edge, nil
}

// RemoveDependency deletes the exact (task, prerequisite) edge. The
// original system deleted on either endpoint match, which also removed
// unrelated edges sharing a task id.
func (s *Store) RemoveDependency(ctx context.Context, tenantID, taskID, prerequisiteID uint) error {
	res := s.scoped(ctx, tenantID).
		Where("task_id = ? AND prerequisite_id = ?", taskID, prerequisiteID).
		Delete(&model.TaskDependency{})
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDependencies returns the edges whose dependent is the given task,
// with prerequisite task metadata preloaded. No order is guaranteed.
func (s *Store) ListDependencies(ctx context.Context, tenantID, taskID uint) ([]*model.TaskDependency, error) {
	if _, err := s.GetTask(ctx, tenantID, taskID); err != nil {
		return nil, err
	}
	var edges []*model.TaskDependency
	err := s.scoped(ctx, tenantID).
		Preload("Prerequisite").
		Where("task_id = ?", taskID).
		Find(&edges).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return edges, nil
}

// BlockingAncestors computes the transitive prerequisite closure of a
// task client-side over the project's flat edge rows, since the store
// holds no recursive query capability the handlers can rely on.
func (s *Store) BlockingAncestors(ctx context.Context, tenantID, taskID uint) ([]uint, error) {
	task, err := s.GetTask(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	var edges []depgraph.Edge
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		edges, txErr = projectEdges(tx, tenantID, task.ProjectID)
		return txErr
	})
	if err != nil {
		return nil, asStoreErr(err)
	}
	return depgraph.FromEdges(edges).Ancestors(taskID), nil
}

// rejectReason maps a validation failure onto its metric label. Unknown
// errors yield "" and are not counted as rejections.
func rejectReason(err error) string {
	switch err {
	case ErrNegativeLag:
		return "negative_lag"
	case ErrNotFound:
		return "not_found"
	case ErrDuplicateEdge:
		return "duplicate_edge"
	case ErrCycleDetected:
		return "cycle_detected"
	case ErrCrossTenantReference:
		return "cross_tenant"
	case ErrCrossProjectReference:
		return "cross_project"
	default:
		return ""
	}
}

// findTenantTask loads a task by id and classifies the failure: missing
// row is ErrNotFound, a row owned by another tenant is
// ErrCrossTenantReference.
func findTenantTask(tx *gorm.DB, tenantID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := tx.First(&task, taskID).Error; err != nil {
		return nil, asStoreErr(err)
	}
	if task.TenantID != tenantID {
		return nil, ErrCrossTenantReference
	}
	return &task, nil
}

// lockProjectGraph serializes edge writers of one project until the
// transaction ends. The cycle check validates against the full edge set,
// which is only sound when no other writer can commit into that set
// between the read and the insert.
func lockProjectGraph(tx *gorm.DB, tenantID, projectID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(tenantID), int32(projectID)).Error
}

// projectEdges loads the flat edge set of one project.
func projectEdges(tx *gorm.DB, tenantID, projectID uint) ([]depgraph.Edge, error) {
	var rows []model.TaskDependency
	err := tx.Where("tenant_id = ? AND project_id = ?", tenantID, projectID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	edges := make([]depgraph.Edge, 0, len(rows))
	for i := range rows {
		edges = append(edges, depgraph.Edge{
			Dependent:    rows[i].TaskID,
			Prerequisite: rows[i].PrerequisiteID,
		})
	}
	return edges, nil
}
