// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed acyclic graph operations for topological sorting
// and cycle detection. It is used by mod discovery to order asset-only mods by
// their declared descriptor dependencies.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle contains the nodes that sit on at least one cycle.
		Cycle []string
		// Blocked contains nodes that are not on a cycle themselves but
		// cannot be ordered because a dependency path leads into one.
		Blocked []string
	}

	// Graph is a directed graph for topological sorting.
	// Nodes are identified by string keys. Edges represent "must load before" relationships:
	// an edge from A to B means A must load before B.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors (nodes that depend on it).
		adjacency map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
	if len(e.Blocked) > 0 {
		msg += fmt.Sprintf(" (blocking: %s)", strings.Join(e.Blocked, ", "))
	}
	return msg
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must load before "to".
// Both nodes are implicitly added if they don't exist.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns a valid load order using Kahn's algorithm.
// Returns CycleError if the graph contains a cycle.
// The returned order is deterministic: nodes at the same topological level
// appear in the order they were first added to the graph.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	// Compute in-degrees.
	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	// Seed the queue with nodes that have no incoming edges, in insertion order.
	queue := make([]string, 0)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		// Nodes with residual in-degree either sit on a cycle or merely
		// depend on one; tell them apart so callers can report the actual
		// cycle members without implicating downstream nodes.
		residual := make(map[string]bool, len(g.nodes)-len(result))
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				residual[node] = true
			}
		}
		cycleErr := &CycleError{}
		for _, node := range g.nodes {
			if !residual[node] {
				continue
			}
			if g.onCycle(node, residual) {
				cycleErr.Cycle = append(cycleErr.Cycle, node)
			} else {
				cycleErr.Blocked = append(cycleErr.Blocked, node)
			}
		}
		return nil, cycleErr
	}

	return result, nil
}

// onCycle reports whether start can reach itself through edges between
// residual nodes.
func (g *Graph) onCycle(start string, residual map[string]bool) bool {
	visited := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, neighbor := range g.adjacency[node] {
			if !residual[neighbor] {
				continue
			}
			if neighbor == start {
				return true
			}
			if !visited[neighbor] {
				visited[neighbor] = true
				stack = append(stack, neighbor)
			}
		}
	}
	return false
}
