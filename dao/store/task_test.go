package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"
)

func TestDeleteTaskCascade(t *testing.T) {
	PatchConvey("deleting a task removes edges on both endpoints first", t, func() {
		s := &Store{}
		Mock((*Store).transaction).To(
			func(_ *Store, _ context.Context, fn func(*gorm.DB) error) error {
				return fn(&gorm.DB{})
			}).Build()

		var wheres []string
		var edgeArgs []any
		Mock((*gorm.DB).Where).To(func(db *gorm.DB, q any, a ...any) *gorm.DB {
			cond := q.(string)
			wheres = append(wheres, cond)
			if strings.Contains(cond, "task_id") {
				edgeArgs = a
			}
			return db
		}).Build()
		Mock((*gorm.DB).First).To(func(db *gorm.DB, _ any, _ ...any) *gorm.DB {
			return db
		}).Build()

		var deleted []string
		Mock((*gorm.DB).Delete).To(func(db *gorm.DB, v any, _ ...any) *gorm.DB {
			deleted = append(deleted, fmt.Sprintf("%T", v))
			return db
		}).Build()

		So(s.DeleteTask(context.Background(), 7, 5), ShouldBeNil)

		// the edge sweep matches the task as dependent or prerequisite,
		// and runs before the task row goes away
		So(wheres, ShouldContain, "tenant_id = ? AND (task_id = ? OR prerequisite_id = ?)")
		So(edgeArgs, ShouldResemble, []any{uint(7), uint(5), uint(5)})
		So(deleted, ShouldResemble, []string{"*model.TaskDependency", "*model.Task"})
	})

	PatchConvey("a missing task deletes nothing", t, func() {
		s := &Store{}
		Mock((*Store).transaction).To(
			func(_ *Store, _ context.Context, fn func(*gorm.DB) error) error {
				return fn(&gorm.DB{})
			}).Build()
		Mock((*gorm.DB).Where).To(func(db *gorm.DB, _ any, _ ...any) *gorm.DB {
			return db
		}).Build()
		Mock((*gorm.DB).First).To(func(db *gorm.DB, _ any, _ ...any) *gorm.DB {
			db.Error = gorm.ErrRecordNotFound
			return db
		}).Build()
		removed := Mock((*gorm.DB).Delete).Return(&gorm.DB{}).Build()

		So(s.DeleteTask(context.Background(), 7, 5), ShouldEqual, ErrNotFound)
		So(removed.Times(), ShouldEqual, 0)
	})
}
