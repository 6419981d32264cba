package store

import (
	"context"
	"time"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

// ProjectFilter narrows and pages ListProjects.
type ProjectFilter struct {
	Status   *model.ProjectStatus
	NameLike *string
	Offset   int
	Limit    int
	OrderCol string // whitelisted by the handler
	Desc     bool
}

func (s *Store) CreateProject(ctx context.Context, tenantID uint, project *model.Project) error {
	project.TenantID = tenantID
	return asStoreErr(s.db.WithContext(ctx).Create(project).Error)
}

func (s *Store) GetProject(ctx context.Context, tenantID, projectID uint) (*model.Project, error) {
	var project model.Project
	err := s.scoped(ctx, tenantID).Where("id = ?", projectID).First(&project).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context, tenantID uint, f ProjectFilter) ([]*model.Project, int64, error) {
	q := s.scoped(ctx, tenantID).Model(&model.Project{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.NameLike != nil {
		q = q.Where("name ILIKE ?", "%"+*f.NameLike+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}

	order := "id DESC"
	if f.OrderCol != "" {
		order = f.OrderCol
		if f.Desc {
			order += " DESC"
		}
	}
	var projects []*model.Project
	if err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&projects).Error; err != nil {
		return nil, 0, asStoreErr(err)
	}
	return projects, count, nil
}

// ProjectUpdate carries the mutable project fields. Nil means unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *model.ProjectStatus
	BudgetCents *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Store) UpdateProject(ctx context.Context, tenantID, projectID uint, u ProjectUpdate) error {
	updates := map[string]any{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.BudgetCents != nil {
		updates["budget_cents"] = *u.BudgetCents
	}
	if u.StartDate != nil {
		updates["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		updates["end_date"] = *u.EndDate
	}
	if len(updates) == 0 {
		return nil
	}
	res := s.scoped(ctx, tenantID).Model(&model.Project{}).Where("id = ?", projectID).Updates(updates)
	if res.Error != nil {
		return asStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
