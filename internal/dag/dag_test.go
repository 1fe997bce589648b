// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestTopologicalSortEmptyGraph(t *testing.T) {
	t.Parallel()
	g := New()
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil, got %v", order)
	}
}

func TestTopologicalSortSingleNode(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("core")
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"core"}) {
		t.Errorf("expected [core], got %v", order)
	}
}

func TestTopologicalSortLinearChain(t *testing.T) {
	t.Parallel()
	g := New()
	// core loads first, then weapons, then an expansion on top of both.
	g.AddEdge("core", "weapons")
	g.AddEdge("weapons", "expansion")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"core", "weapons", "expansion"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSortDiamond(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("core", "weapons")
	g.AddEdge("core", "armor")
	g.AddEdge("weapons", "balance")
	g.AddEdge("armor", "balance")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order[0] != "core" {
		t.Errorf("expected core first, got %v", order)
	}
	if order[len(order)-1] != "balance" {
		t.Errorf("expected balance last, got %v", order)
	}
	if len(order) != 4 {
		t.Errorf("expected 4 nodes, got %d: %v", len(order), order)
	}
}

func TestTopologicalSortCycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edges    [][2]string
		minCycle int
	}{
		{"two-node cycle", [][2]string{{"a", "b"}, {"b", "a"}}, 2},
		{"self loop", [][2]string{{"a", "a"}}, 1},
		{"three-node cycle", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			_, err := g.TopologicalSort()
			if err == nil {
				t.Fatal("expected cycle error, got nil")
			}
			var cycleErr *CycleError
			if !errors.As(err, &cycleErr) {
				t.Fatalf("expected *CycleError, got %T: %v", err, err)
			}
			if len(cycleErr.Cycle) < tt.minCycle {
				t.Errorf("expected at least %d nodes in cycle, got %v", tt.minCycle, cycleErr.Cycle)
			}
		})
	}
}

func TestTopologicalSortSeparatesBlockedFromCycle(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	// balance depends on the cycle without being part of it, and cosmetics
	// sits one step further downstream.
	g.AddEdge("a", "balance")
	g.AddEdge("balance", "cosmetics")

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
	if !slices.Equal(cycleErr.Cycle, []string{"a", "b"}) {
		t.Errorf("Cycle = %v, want [a b]", cycleErr.Cycle)
	}
	if !slices.Equal(cycleErr.Blocked, []string{"balance", "cosmetics"}) {
		t.Errorf("Blocked = %v, want [balance cosmetics]", cycleErr.Blocked)
	}
}

func TestTopologicalSortDisconnectedComponents(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("core", "weapons")
	g.AddNode("standalone")
	g.AddNode("cosmetics")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 4 {
		t.Errorf("expected 4 nodes, got %d: %v", len(order), order)
	}
	coreIdx := slices.Index(order, "core")
	weaponsIdx := slices.Index(order, "weapons")
	if coreIdx >= weaponsIdx {
		t.Errorf("core (idx %d) must come before weapons (idx %d) in %v", coreIdx, weaponsIdx, order)
	}
}

func TestTopologicalSortDuplicateEdges(t *testing.T) {
	t.Parallel()
	g := New()
	// A mod declaring the same dependency twice must not wedge the sort.
	g.AddEdge("core", "weapons")
	g.AddEdge("core", "weapons")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"core", "weapons"}) {
		t.Errorf("expected [core, weapons], got %v", order)
	}
}

func TestCycleErrorMessage(t *testing.T) {
	t.Parallel()
	err := &CycleError{Cycle: []string{"a", "b", "c"}}
	expected := "dependency cycle detected: a -> b -> c"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	err = &CycleError{Cycle: []string{"a", "b"}, Blocked: []string{"c"}}
	expected = "dependency cycle detected: a -> b (blocking: c)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
