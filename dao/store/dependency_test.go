package store

import (
	"context"
	"testing"

	. "github.com/bytedance/mockey"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/pkg/depgraph"
)

func TestAddDependencyValidation(t *testing.T) {
	Convey("a negative lag is rejected before touching the database", t, func() {
		s := &Store{}
		edge, err := s.AddDependency(context.Background(), 1, 2, 3, model.FinishToStart, -1, 1)
		So(err, ShouldEqual, ErrNegativeLag)
		So(edge, ShouldBeNil)
	})
}

func TestAddDependencyLocking(t *testing.T) {
	PatchConvey("the project graph is locked before the edge set is read", t, func() {
		s := &Store{}
		var calls []string
		Mock((*Store).transaction).To(
			func(_ *Store, _ context.Context, fn func(*gorm.DB) error) error {
				return fn(&gorm.DB{})
			}).Build()
		Mock(findTenantTask).Return(&model.Task{TenantID: 1, ProjectID: 3}, nil).Build()
		Mock(lockProjectGraph).To(func(_ *gorm.DB, _, _ uint) error {
			calls = append(calls, "lock")
			return nil
		}).Build()
		Mock(projectEdges).To(func(_ *gorm.DB, _, _ uint) ([]depgraph.Edge, error) {
			calls = append(calls, "read_edges")
			return nil, nil
		}).Build()
		Mock((*gorm.DB).Create).To(func(db *gorm.DB, _ any) *gorm.DB {
			calls = append(calls, "insert")
			return db
		}).Build()

		dep, err := s.AddDependency(context.Background(), 1, 2, 3, model.FinishToStart, 0, 1)
		So(err, ShouldBeNil)
		So(dep, ShouldNotBeNil)
		So(calls, ShouldResemble, []string{"lock", "read_edges", "insert"})
	})

	PatchConvey("a lock failure aborts the insert", t, func() {
		s := &Store{}
		Mock((*Store).transaction).To(
			func(_ *Store, _ context.Context, fn func(*gorm.DB) error) error {
				return fn(&gorm.DB{})
			}).Build()
		Mock(findTenantTask).Return(&model.Task{TenantID: 1, ProjectID: 3}, nil).Build()
		Mock(lockProjectGraph).Return(context.DeadlineExceeded).Build()
		created := Mock((*gorm.DB).Create).Return(&gorm.DB{}).Build()

		_, err := s.AddDependency(context.Background(), 1, 2, 3, model.FinishToStart, 0, 1)
		So(err, ShouldEqual, context.DeadlineExceeded)
		So(created.Times(), ShouldEqual, 0)
	})
}

func TestRejectReason(t *testing.T) {
	Convey("every validation failure maps to a metric label", t, func() {
		So(rejectReason(ErrNegativeLag), ShouldEqual, "negative_lag")
		So(rejectReason(ErrNotFound), ShouldEqual, "not_found")
		So(rejectReason(ErrDuplicateEdge), ShouldEqual, "duplicate_edge")
		So(rejectReason(ErrCycleDetected), ShouldEqual, "cycle_detected")
		So(rejectReason(ErrCrossTenantReference), ShouldEqual, "cross_tenant")
		So(rejectReason(ErrCrossProjectReference), ShouldEqual, "cross_project")

		Convey("unknown errors are not counted as rejections", func() {
			So(rejectReason(context.Canceled), ShouldEqual, "")
			So(rejectReason(nil), ShouldEqual, "")
		})
	})
}
