package sweeper

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSweeper(t *testing.T) {
	t.Run("newJobFunc", func(t *testing.T) {
		Convey("newJobFunc", t, func() {
			manager := NewManager(nil)

			jobFunc, err := manager.newJobFunc(CleanOrphanDependenciesJob)
			So(err, ShouldBeNil)
			So(jobFunc, ShouldNotBeNil)

			jobFunc, err = manager.newJobFunc(MarkDelayedProjectsJob)
			So(err, ShouldBeNil)
			So(jobFunc, ShouldNotBeNil)

			jobFunc, err = manager.newJobFunc("unknown")
			So(err, ShouldNotBeNil)
			So(jobFunc, ShouldBeNil)
		})
	})

	t.Run("Start", func(t *testing.T) {
		Convey("an empty spec disables the sweeper", t, func() {
			manager := NewManager(nil)
			So(manager.Start(""), ShouldBeNil)
			manager.Stop()
		})

		Convey("a malformed spec errors at schedule time", t, func() {
			manager := NewManager(nil)
			So(manager.Start("not a cron spec"), ShouldNotBeNil)
			manager.Stop()
		})
	})
}
