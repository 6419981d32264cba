package handler

import (
	"context"
	"net/http"
	"testing"

	. "github.com/bytedance/mockey"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"k8s.io/utils/ptr"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
)

func newProjectMgr() *ProjectMgr {
	return NewProjectMgr(&RegisterConfig{Store: &store.Store{}}).(*ProjectMgr)
}

func TestProjectList(t *testing.T) {
	t.Run("Filters", func(t *testing.T) {
		PatchConvey("status and ordering reach the store in storage form", t, func() {
			mgr := newProjectMgr()
			var got store.ProjectFilter
			Mock((*store.Store).ListProjects).To(
				func(_ *store.Store, _ context.Context, _ uint, f store.ProjectFilter) ([]*model.Project, int64, error) {
					got = f
					return nil, 0, nil
				}).Build()

			c, w := newTestContext(http.MethodGet,
				"/v1/projects?page_index=2&page_size=20&status=on-track&order_col=budget&order=desc", nil)
			mgr.List(c)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(got.Status, ShouldResemble, ptr.To(model.ProjectOnTrack))
			So(got.OrderCol, ShouldEqual, "budget_cents")
			So(got.Desc, ShouldBeTrue)
			So(got.Offset, ShouldEqual, 40)
			So(got.Limit, ShouldEqual, 20)
		})
	})

	t.Run("OrderWhitelist", func(t *testing.T) {
		PatchConvey("a column outside the whitelist is ignored, not passed through", t, func() {
			mgr := newProjectMgr()
			var got store.ProjectFilter
			Mock((*store.Store).ListProjects).To(
				func(_ *store.Store, _ context.Context, _ uint, f store.ProjectFilter) ([]*model.Project, int64, error) {
					got = f
					return nil, 0, nil
				}).Build()

			c, w := newTestContext(http.MethodGet,
				"/v1/projects?page_index=0&page_size=10&order_col=password&order=desc", nil)
			mgr.List(c)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(got.OrderCol, ShouldBeEmpty)
		})
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		PatchConvey("an unknown status never reaches the store", t, func() {
			mgr := newProjectMgr()
			mock := Mock((*store.Store).ListProjects).Return(nil, int64(0), nil).Build()

			c, w := newTestContext(http.MethodGet,
				"/v1/projects?page_index=0&page_size=10&status=archived", nil)
			mgr.List(c)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(mock.Times(), ShouldEqual, 0)
		})
	})
}

func TestProjectUpdate(t *testing.T) {
	PatchConvey("status updates are normalized before storage", t, func() {
		mgr := newProjectMgr()
		var got store.ProjectUpdate
		Mock((*store.Store).UpdateProject).To(
			func(_ *store.Store, _ context.Context, _, _ uint, u store.ProjectUpdate) error {
				got = u
				return nil
			}).Build()

		c, w := newTestContext(http.MethodPut, "/v1/projects/3",
			gin.H{"status": "On-Track", "budgetCents": 2500000})
		c.Params = gin.Params{{Key: "id", Value: "3"}}
		mgr.Update(c)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(got.Status, ShouldResemble, ptr.To(model.ProjectOnTrack))
		So(got.BudgetCents, ShouldResemble, ptr.To(int64(2500000)))
	})
}
