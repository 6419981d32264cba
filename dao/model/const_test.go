package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEnums(t *testing.T) {
	t.Run("ParseTaskStatus", func(t *testing.T) {
		Convey("ParseTaskStatus", t, func() {
			Convey("accepts canonical values", func() {
				v, err := ParseTaskStatus("in_progress")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, TaskInProgress)
			})

			Convey("normalizes hyphen and case variants", func() {
				v, err := ParseTaskStatus("In-Progress")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, TaskInProgress)

				v, err = ParseTaskStatus("  COMPLETED ")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, TaskCompleted)
			})

			Convey("rejects values outside the closed set", func() {
				_, err := ParseTaskStatus("done")
				So(err, ShouldNotBeNil)
				_, err = ParseTaskStatus("")
				So(err, ShouldNotBeNil)
			})
		})
	})

	t.Run("ParseUserStatus", func(t *testing.T) {
		Convey("ParseUserStatus", t, func() {
			v, err := ParseUserStatus("ACTIVE")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, UserActive)

			v, err = ParseUserStatus("suspended")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, UserSuspended)

			_, err = ParseUserStatus("banned")
			So(err, ShouldNotBeNil)
		})
	})

	t.Run("ParseProjectStatus", func(t *testing.T) {
		Convey("ParseProjectStatus", t, func() {
			v, err := ParseProjectStatus("on-track")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, ProjectOnTrack)

			_, err = ParseProjectStatus("archived")
			So(err, ShouldNotBeNil)
		})
	})

	t.Run("ParseTaskPriority", func(t *testing.T) {
		Convey("ParseTaskPriority", t, func() {
			v, err := ParseTaskPriority("CRITICAL")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, PriorityCritical)

			_, err = ParseTaskPriority("urgent")
			So(err, ShouldNotBeNil)
		})
	})

	t.Run("ParseContactType", func(t *testing.T) {
		Convey("ParseContactType", t, func() {
			v, err := ParseContactType("design-professional")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, ContactDesignPro)

			_, err = ParseContactType("architect")
			So(err, ShouldNotBeNil)
		})
	})

	t.Run("ParseDependencyType", func(t *testing.T) {
		Convey("ParseDependencyType", t, func() {
			Convey("defaults to finish_to_start when empty", func() {
				v, err := ParseDependencyType("")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, FinishToStart)
			})

			Convey("accepts the hyphenated form", func() {
				v, err := ParseDependencyType("finish-to-start")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, FinishToStart)
			})

			Convey("rejects other relationship kinds", func() {
				_, err := ParseDependencyType("start_to_start")
				So(err, ShouldNotBeNil)
			})
		})
	})
}
