// Constants mirrored by database columns.
// Gin rejects zero values on required bindings, so numeric enums start at
// iota + 1. String enums have a Parse function that is the only accepted
// path from request input to a stored value.
package model

import (
	"fmt"
	"strings"
)

// User role in platform and tenant
type Role uint8

const (
	RoleGuest Role = iota + 1
	RoleUser
	RoleAdmin
)

// Tenant status
type TenantStatus uint8

const (
	TenantPending TenantStatus = iota + 1
	TenantActive
	TenantSuspended
)

// UserStatus is the closed set of account states.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// ProjectStatus is the closed set of project states. Projects are never
// hard-deleted; archival is a transition to ProjectCompleted.
type ProjectStatus string

const (
	ProjectNew       ProjectStatus = "new"
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnTrack   ProjectStatus = "on_track"
	ProjectDelayed   ProjectStatus = "delayed"
	ProjectCompleted ProjectStatus = "completed"
)

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ContactType classifies directory entries.
type ContactType string

const (
	ContactContractor ContactType = "contractor"
	ContactVendor     ContactType = "vendor"
	ContactCustomer   ContactType = "customer"
	ContactDesignPro  ContactType = "design_professional"
)

// DependencyType is the relationship kind of a task dependency edge.
// Only finish-to-start exists today.
type DependencyType string

const (
	FinishToStart DependencyType = "finish_to_start"
)

// canonical lowercases and maps hyphenated variants ("in-progress",
// "on-track") onto the stored snake_case form.
func canonical(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

func ParseUserStatus(s string) (UserStatus, error) {
	switch v := UserStatus(canonical(s)); v {
	case UserActive, UserSuspended:
		return v, nil
	default:
		return "", fmt.Errorf("unknown user status %q", s)
	}
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch v := ProjectStatus(canonical(s)); v {
	case ProjectNew, ProjectPlanning, ProjectActive, ProjectOnTrack, ProjectDelayed, ProjectCompleted:
		return v, nil
	default:
		return "", fmt.Errorf("unknown project status %q", s)
	}
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch v := TaskStatus(canonical(s)); v {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return v, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch v := TaskPriority(canonical(s)); v {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return v, nil
	default:
		return "", fmt.Errorf("unknown task priority %q", s)
	}
}

func ParseContactType(s string) (ContactType, error) {
	switch v := ContactType(canonical(s)); v {
	case ContactContractor, ContactVendor, ContactCustomer, ContactDesignPro:
		return v, nil
	default:
		return "", fmt.Errorf("unknown contact type %q", s)
	}
}

func ParseDependencyType(s string) (DependencyType, error) {
	if s == "" {
		return FinishToStart, nil
	}
	switch v := DependencyType(canonical(s)); v {
	case FinishToStart:
		return v, nil
	default:
		return "", fmt.Errorf("unknown dependency type %q", s)
	}
}
