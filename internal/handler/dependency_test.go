package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/bytedance/mockey"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/sitegrid-labs/sitegrid/dao/model"
	"github.com/sitegrid-labs/sitegrid/dao/store"
	"github.com/sitegrid-labs/sitegrid/internal/util"
	"github.com/sitegrid-labs/sitegrid/pkg/notify"
)

func newTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	util.SetJWTContext(c, util.JWTMessage{
		UserID:     1,
		Username:   "foreman",
		TenantID:   7,
		TenantName: "acme-builders",
		RoleTenant: model.RoleUser,
	})
	return c, w
}

func newDependencyMgr() *DependencyMgr {
	return NewDependencyMgr(&RegisterConfig{
		Store:    &store.Store{},
		Notifier: &notify.Notifier{},
	}).(*DependencyMgr)
}

func respCode(w *httptest.ResponseRecorder) int {
	var resp struct {
		Code int `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Code
}

func TestDependencyAdd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		PatchConvey("a valid edge is created", t, func() {
			mgr := newDependencyMgr()
			Mock((*store.Store).AddDependency).Return(&model.TaskDependency{
				TenantID:       7,
				ProjectID:      3,
				TaskID:         2,
				PrerequisiteID: 1,
				Type:           model.FinishToStart,
				LagDays:        2,
			}, nil).Build()
			Mock((*notify.Notifier).TaskEvent).Return().Build()

			c, w := newTestContext(http.MethodPost, "/v1/tasks/2/dependencies",
				gin.H{"prerequisiteId": 1, "lagDays": 2})
			c.Params = gin.Params{{Key: "id", Value: "2"}}
			mgr.Add(c)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(respCode(w), ShouldEqual, 0)
			So(w.Body.String(), ShouldContainSubstring, `"prerequisiteId":1`)
		})
	})

	t.Run("Cycle", func(t *testing.T) {
		PatchConvey("an edge that would close a cycle is rejected", t, func() {
			mgr := newDependencyMgr()
			Mock((*store.Store).AddDependency).Return(nil, store.ErrCycleDetected).Build()

			c, w := newTestContext(http.MethodPost, "/v1/tasks/2/dependencies",
				gin.H{"prerequisiteId": 3})
			c.Params = gin.Params{{Key: "id", Value: "2"}}
			mgr.Add(c)

			So(w.Code, ShouldEqual, http.StatusConflict)
			So(respCode(w), ShouldEqual, 40902)
		})
	})

	t.Run("NegativeLag", func(t *testing.T) {
		PatchConvey("a negative lag is rejected", t, func() {
			mgr := newDependencyMgr()
			Mock((*store.Store).AddDependency).Return(nil, store.ErrNegativeLag).Build()

			c, w := newTestContext(http.MethodPost, "/v1/tasks/2/dependencies",
				gin.H{"prerequisiteId": 1, "lagDays": -1})
			c.Params = gin.Params{{Key: "id", Value: "2"}}
			mgr.Add(c)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(respCode(w), ShouldEqual, 40905)
		})
	})

	t.Run("UnknownType", func(t *testing.T) {
		PatchConvey("an unknown dependency type never reaches the store", t, func() {
			mgr := newDependencyMgr()
			mock := Mock((*store.Store).AddDependency).Return(nil, nil).Build()

			c, w := newTestContext(http.MethodPost, "/v1/tasks/2/dependencies",
				gin.H{"prerequisiteId": 1, "type": "start_to_start"})
			c.Params = gin.Params{{Key: "id", Value: "2"}}
			mgr.Add(c)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(mock.Times(), ShouldEqual, 0)
		})
	})
}

func TestDependencyRemove(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		PatchConvey("an existing edge is removed", t, func() {
			mgr := newDependencyMgr()
			Mock((*store.Store).RemoveDependency).Return(nil).Build()

			c, w := newTestContext(http.MethodDelete, "/v1/tasks/2/dependencies/1", nil)
			c.Params = gin.Params{{Key: "id", Value: "2"}, {Key: "prereqId", Value: "1"}}
			mgr.Remove(c)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(respCode(w), ShouldEqual, 0)
		})
	})

	t.Run("Missing", func(t *testing.T) {
		PatchConvey("a missing edge is a 404", t, func() {
			mgr := newDependencyMgr()
			Mock((*store.Store).RemoveDependency).Return(store.ErrNotFound).Build()

			c, w := newTestContext(http.MethodDelete, "/v1/tasks/2/dependencies/9", nil)
			c.Params = gin.Params{{Key: "id", Value: "2"}, {Key: "prereqId", Value: "9"}}
			mgr.Remove(c)

			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(respCode(w), ShouldEqual, 40401)
		})
	})
}

func TestDependencyAncestors(t *testing.T) {
	PatchConvey("the blocking closure is returned", t, func() {
		mgr := newDependencyMgr()
		Mock((*store.Store).BlockingAncestors).Return([]uint{1, 2}, nil).Build()

		c, w := newTestContext(http.MethodGet, "/v1/tasks/3/dependencies/ancestors", nil)
		c.Params = gin.Params{{Key: "id", Value: "3"}}
		mgr.Ancestors(c)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, `"data":[1,2]`)
	})
}
