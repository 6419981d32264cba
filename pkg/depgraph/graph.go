// Package depgraph holds the in-memory adjacency-list view of a project's
// task dependency edges. The store rebuilds it from the flat edge rows of
// one project before validating a new edge, since the database offers no
// graph primitives of its own.
package depgraph

import "sort"

// Edge is a directed dependency: Dependent cannot start until
// Prerequisite finishes.
type Edge struct {
	Dependent    uint
	Prerequisite uint
}

// Graph maps a dependent task to the set of its direct prerequisites.
type Graph struct {
	adj map[uint][]uint
}

func New() *Graph {
	return &Graph{adj: make(map[uint][]uint)}
}

// FromEdges builds a graph from a flat edge list.
func FromEdges(edges []Edge) *Graph {
	g := New()
	for _, e := range edges {
		g.AddEdge(e.Dependent, e.Prerequisite)
	}
	return g
}

// AddEdge records a direct prerequisite without validation.
func (g *Graph) AddEdge(dependent, prerequisite uint) {
	g.adj[dependent] = append(g.adj[dependent], prerequisite)
}

// HasEdge reports whether the exact direct edge exists.
func (g *Graph) HasEdge(dependent, prerequisite uint) bool {
	for _, p := range g.adj[dependent] {
		if p == prerequisite {
			return true
		}
	}
	return false
}

// HasPath reports whether `to` is reachable from `from` by following
// prerequisite edges. Iterative DFS; the visited set bounds it on any
// input, including graphs that already contain a cycle.
func (g *Graph) HasPath(from, to uint) bool {
	if from == to {
		return true
	}
	visited := make(map[uint]bool, len(g.adj))
	stack := []uint{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		for _, next := range g.adj[n] {
			if next == to {
				return true
			}
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// WouldCreateCycle reports whether adding dependent -> prerequisite would
// close a cycle. A self-dependency is the one-edge cycle. Otherwise the
// new edge is cyclic exactly when the prerequisite already (transitively)
// depends on the dependent.
func (g *Graph) WouldCreateCycle(dependent, prerequisite uint) bool {
	if dependent == prerequisite {
		return true
	}
	return g.HasPath(prerequisite, dependent)
}

// Ancestors returns every task that transitively blocks `task`, i.e. the
// full prerequisite closure, in ascending ID order. The task itself is
// never included.
func (g *Graph) Ancestors(task uint) []uint {
	visited := make(map[uint]bool)
	stack := append([]uint{}, g.adj[task]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == task || visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, g.adj[n]...)
	}
	out := make([]uint, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
