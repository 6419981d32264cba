package store

import (
	"context"
	"testing"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"
)

func TestScoped(t *testing.T) {
	PatchConvey("every scoped session binds the tenant predicate", t, func() {
		s := New(&gorm.DB{})
		var query any
		var args []any
		Mock((*gorm.DB).WithContext).To(func(db *gorm.DB, _ context.Context) *gorm.DB {
			return db
		}).Build()
		Mock((*gorm.DB).Where).To(func(db *gorm.DB, q any, a ...any) *gorm.DB {
			query = q
			args = a
			return db
		}).Build()

		s.scoped(context.Background(), 7)

		So(query, ShouldEqual, "tenant_id = ?")
		So(args, ShouldResemble, []any{uint(7)})
	})
}

func TestReadsGoThroughScope(t *testing.T) {
	PatchConvey("GetTask queries inside the caller's tenant, never outside it", t, func() {
		s := New(&gorm.DB{})
		var scopedTenant uint
		Mock((*Store).scoped).To(func(_ *Store, _ context.Context, tenantID uint) *gorm.DB {
			scopedTenant = tenantID
			return &gorm.DB{}
		}).Build()
		Mock((*gorm.DB).Preload).To(func(db *gorm.DB, _ string, _ ...any) *gorm.DB {
			return db
		}).Build()
		Mock((*gorm.DB).Where).To(func(db *gorm.DB, _ any, _ ...any) *gorm.DB {
			return db
		}).Build()
		Mock((*gorm.DB).First).To(func(db *gorm.DB, _ any, _ ...any) *gorm.DB {
			return db
		}).Build()

		_, err := s.GetTask(context.Background(), 7, 5)

		So(err, ShouldBeNil)
		So(scopedTenant, ShouldEqual, uint(7))
	})
}
