package store

import (
	"errors"

	"gorm.io/gorm"
)

// Typed failures of the data layer. Handlers map these onto stable
// response codes instead of shipping raw driver messages to clients.
var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateEdge         = errors.New("dependency edge already exists")
	ErrCycleDetected         = errors.New("dependency would create a cycle")
	ErrCrossTenantReference  = errors.New("referenced record belongs to another tenant")
	ErrCrossProjectReference = errors.New("tasks belong to different projects")
	ErrNegativeLag           = errors.New("lag days must not be negative")
	ErrInvalidAssignee       = errors.New("assignee is not a contact of this tenant")
)

// asStoreErr folds gorm's not-found into the typed taxonomy and passes
// everything else through untouched.
func asStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
