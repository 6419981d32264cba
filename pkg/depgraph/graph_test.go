package depgraph

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGraph(t *testing.T) {
	t.Run("WouldCreateCycle", func(t *testing.T) {
		Convey("WouldCreateCycle", t, func() {
			Convey("a self dependency is always a cycle", func() {
				g := New()
				So(g.WouldCreateCycle(1, 1), ShouldBeTrue)
			})

			Convey("closing a chain A->B->C with C->A is a cycle", func() {
				// A depends on B, B depends on C
				g := FromEdges([]Edge{
					{Dependent: 1, Prerequisite: 2},
					{Dependent: 2, Prerequisite: 3},
				})
				So(g.WouldCreateCycle(3, 1), ShouldBeTrue)
				// the reverse direction is fine, it is already implied
				So(g.WouldCreateCycle(1, 3), ShouldBeFalse)
			})

			Convey("edges between unrelated tasks are not cycles", func() {
				g := FromEdges([]Edge{
					{Dependent: 1, Prerequisite: 2},
					{Dependent: 3, Prerequisite: 4},
				})
				So(g.WouldCreateCycle(1, 4), ShouldBeFalse)
				So(g.WouldCreateCycle(4, 2), ShouldBeFalse)
			})

			Convey("diamonds are acyclic", func() {
				// 1 depends on 2 and 3, both depend on 4
				g := FromEdges([]Edge{
					{Dependent: 1, Prerequisite: 2},
					{Dependent: 1, Prerequisite: 3},
					{Dependent: 2, Prerequisite: 4},
					{Dependent: 3, Prerequisite: 4},
				})
				So(g.WouldCreateCycle(4, 1), ShouldBeTrue)
				So(g.WouldCreateCycle(2, 3), ShouldBeFalse)
			})
		})
	})

	t.Run("HasEdge", func(t *testing.T) {
		Convey("HasEdge", t, func() {
			g := FromEdges([]Edge{{Dependent: 1, Prerequisite: 2}})
			So(g.HasEdge(1, 2), ShouldBeTrue)
			So(g.HasEdge(2, 1), ShouldBeFalse)
			So(g.HasEdge(1, 3), ShouldBeFalse)
		})
	})

	t.Run("HasPath", func(t *testing.T) {
		Convey("HasPath", t, func() {
			g := FromEdges([]Edge{
				{Dependent: 1, Prerequisite: 2},
				{Dependent: 2, Prerequisite: 3},
				{Dependent: 3, Prerequisite: 4},
			})
			So(g.HasPath(1, 4), ShouldBeTrue)
			So(g.HasPath(4, 1), ShouldBeFalse)
			So(g.HasPath(5, 5), ShouldBeTrue)

			Convey("terminates on a graph that already contains a cycle", func() {
				cyclic := FromEdges([]Edge{
					{Dependent: 1, Prerequisite: 2},
					{Dependent: 2, Prerequisite: 1},
				})
				So(cyclic.HasPath(1, 3), ShouldBeFalse)
			})
		})
	})

	t.Run("Ancestors", func(t *testing.T) {
		Convey("Ancestors", t, func() {
			Convey("returns the full closure in ascending order", func() {
				g := FromEdges([]Edge{
					{Dependent: 10, Prerequisite: 7},
					{Dependent: 7, Prerequisite: 3},
					{Dependent: 7, Prerequisite: 5},
					{Dependent: 5, Prerequisite: 3},
				})
				So(g.Ancestors(10), ShouldResemble, []uint{3, 5, 7})
				So(g.Ancestors(7), ShouldResemble, []uint{3, 5})
				So(g.Ancestors(3), ShouldResemble, []uint{})
			})

			Convey("never includes the task itself", func() {
				cyclic := FromEdges([]Edge{
					{Dependent: 1, Prerequisite: 2},
					{Dependent: 2, Prerequisite: 1},
				})
				So(cyclic.Ancestors(1), ShouldResemble, []uint{2})
			})
		})
	})

	t.Run("ConstructionSchedule", func(t *testing.T) {
		Convey("a foundation/framing/drywall schedule behaves end to end", t, func() {
			const (
				foundation = 1
				framing    = 2
				drywall    = 3
			)
			g := New()

			// framing waits on the foundation, drywall waits on framing
			So(g.WouldCreateCycle(framing, foundation), ShouldBeFalse)
			g.AddEdge(framing, foundation)
			So(g.WouldCreateCycle(drywall, framing), ShouldBeFalse)
			g.AddEdge(drywall, framing)

			// pouring the foundation cannot wait on drywall
			So(g.WouldCreateCycle(foundation, drywall), ShouldBeTrue)

			// drywall is transitively blocked by both earlier phases
			So(g.Ancestors(drywall), ShouldResemble, []uint{foundation, framing})
			So(g.Ancestors(foundation), ShouldResemble, []uint{})

			// deleting the foundation task drops its edges; drywall is
			// then blocked by framing alone and nothing dangles
			remaining := FromEdges([]Edge{{Dependent: drywall, Prerequisite: framing}})
			So(remaining.Ancestors(drywall), ShouldResemble, []uint{framing})
			So(remaining.HasEdge(framing, foundation), ShouldBeFalse)
			So(remaining.Ancestors(framing), ShouldResemble, []uint{})
		})
	})
}
