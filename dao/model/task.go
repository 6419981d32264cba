package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task is the core work item of a project.
type Task struct {
	gorm.Model
	TenantID    uint           `gorm:"index;not null"`
	ProjectID   uint           `gorm:"index;not null"`
	Title       string         `gorm:"type:varchar(256);not null"`
	Description *string        `gorm:"type:text"`
	Status      TaskStatus     `gorm:"type:varchar(32);not null;default:pending;index"`
	Priority    TaskPriority   `gorm:"type:varchar(16);not null;default:medium"`
	Position    int            `gorm:"not null;default:0"` // manual ordering within the project
	AssigneeID  *uint          `gorm:"index"`              // contact of the same tenant, or null
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy   uint           `gorm:"not null"`

	Project  Project          `gorm:"foreignKey:ProjectID"`
	Assignee *Contact         `gorm:"foreignKey:AssigneeID"`
	Deps     []TaskDependency `gorm:"foreignKey:TaskID"`
}

// TaskDependency is a directed finish-to-start edge: the dependent task
// cannot start until the prerequisite finishes, offset by LagDays.
// The edge set of a project must stay acyclic; that is enforced by the
// store before every insert, not by the database.
//
// Edges are hard-deleted. A soft-deleted edge would still occupy the
// unique (task, prerequisite) slot and block re-linking.
type TaskDependency struct {
	ID             uint           `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TenantID       uint           `gorm:"index;not null"`
	ProjectID      uint           `gorm:"index;not null"`
	TaskID         uint           `gorm:"uniqueIndex:idx_task_prereq;not null"` // the dependent task
	PrerequisiteID uint           `gorm:"uniqueIndex:idx_task_prereq;not null"`
	Type           DependencyType `gorm:"type:varchar(32);not null;default:finish_to_start"`
	LagDays        int            `gorm:"not null;default:0"`
	CreatedBy      uint           `gorm:"not null"`

	Task         Task  `gorm:"foreignKey:TaskID"`
	Prerequisite *Task `gorm:"foreignKey:PrerequisiteID"`
}

// TableName keeps the table name in line with the rest of the schema.
func (TaskDependency) TableName() string {
	return "task_dependencies"
}
