// Package graph implements the small directed graph used to analyse
// EnemyDescriptor "Base" references.
//
// Nodes are string labels, edges are unweighted. The interesting operation
// is Circuits, an implementation of Johnson's elementary circuit algorithm
// driven by Tarjan's strongly connected components, matching networkx's
// simple_cycles: self loops and parallel edges are peeled off first, then
// each non-trivial component is searched with a blocked set and a blocked
// subgraph map.
//
// All output is deterministic: nodes keep insertion order and every
// traversal follows adjacency order.
package graph

import (
	"fmt"
	"io"
	"slices"
)

// Directed is a directed graph over string-labelled nodes.
type Directed struct {
	index     map[string]int
	edgeSet   map[[2]int]struct{}
	nodes     []string
	succ      [][]int
	selfLoops []int
}

// New returns an empty [Directed] graph.
func New() *Directed {
	return &Directed{
		index:   make(map[string]int),
		edgeSet: make(map[[2]int]struct{}),
	}
}

// AddNode adds a node, returning its id. Adding the same label twice is a
// no-op returning the existing id.
func (g *Directed) AddNode(label string) int {
	if id, ok := g.index[label]; ok {
		return id
	}

	id := len(g.nodes)
	g.index[label] = id
	g.nodes = append(g.nodes, label)
	g.succ = append(g.succ, nil)

	return id
}

// AddEdge adds the directed edge from -> to, creating the nodes if needed.
// Parallel edges collapse into one, self loops are recorded separately and
// never enter the adjacency used for circuit search.
func (g *Directed) AddEdge(from, to string) {
	u := g.AddNode(from)
	v := g.AddNode(to)

	if _, seen := g.edgeSet[[2]int{u, v}]; seen {
		return
	}

	g.edgeSet[[2]int{u, v}] = struct{}{}

	if u == v {
		g.selfLoops = append(g.selfLoops, u)
		return
	}

	g.succ[u] = append(g.succ[u], v)
}

// Nodes returns every node label in insertion order. The returned slice
// must not be mutated.
func (g *Directed) Nodes() []string {
	return g.nodes
}

// Len returns the number of nodes.
func (g *Directed) Len() int {
	return len(g.nodes)
}

// SelfLoops returns the labels of nodes with an edge to themselves, in
// insertion order.
func (g *Directed) SelfLoops() []string {
	loops := make([]string, 0, len(g.selfLoops))
	for _, id := range g.selfLoops {
		loops = append(loops, g.nodes[id])
	}

	return loops
}

// Circuits returns every elementary circuit of length two or more, each as
// the list of node labels in traversal order (the closing hop back to the
// first label is implied). Self loops are excluded, use [Directed.SelfLoops].
func (g *Directed) Circuits() [][]string {
	active := make([]bool, len(g.nodes))
	for i := range active {
		active[i] = true
	}

	var circuits [][]int

	// Binary partition over strongly connected components: search the
	// component containing its first node, remove that node, then re-split
	// what remains
	components := sccComponents(g.succ, active)

	for len(components) > 0 {
		component := components[len(components)-1]
		components = components[:len(components)-1]

		inComponent := make([]bool, len(g.nodes))
		for _, v := range component {
			inComponent[v] = true
		}

		sub := restrict(g.succ, inComponent)
		start := component[0]

		circuits = append(circuits, johnson(sub, start)...)

		inComponent[start] = false
		components = append(components, sccComponents(sub, inComponent)...)
	}

	named := make([][]string, 0, len(circuits))
	for _, circuit := range circuits {
		labels := make([]string, 0, len(circuit))
		for _, id := range circuit {
			labels = append(labels, g.nodes[id])
		}

		named = append(named, labels)
	}

	return named
}

// Encode writes the graph to w in Graphviz DOT format.
func (g *Directed) Encode(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return fmt.Errorf("writing DOT header: %w", err)
	}

	for id, label := range g.nodes {
		if _, err := fmt.Fprintf(w, "    %d [ label = %q ]\n", id, label); err != nil {
			return fmt.Errorf("writing DOT node: %w", err)
		}
	}

	for u, succs := range g.succ {
		for _, v := range succs {
			if _, err := fmt.Fprintf(w, "    %d -> %d [ ]\n", u, v); err != nil {
				return fmt.Errorf("writing DOT edge: %w", err)
			}
		}
	}

	for _, u := range g.selfLoops {
		if _, err := fmt.Fprintf(w, "    %d -> %d [ ]\n", u, u); err != nil {
			return fmt.Errorf("writing DOT edge: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("writing DOT footer: %w", err)
	}

	return nil
}

// restrict returns adj filtered to edges whose endpoints are both marked
// active.
func restrict(adj [][]int, active []bool) [][]int {
	sub := make([][]int, len(adj))

	for u, succs := range adj {
		if !active[u] {
			continue
		}

		for _, v := range succs {
			if active[v] {
				sub[u] = append(sub[u], v)
			}
		}
	}

	return sub
}

// johnson finds every elementary circuit through start in adj, the main
// loop of Johnson's algorithm.
//
// Nodes on the current path are blocked. When a dead-end node is popped
// without closing a circuit it stays blocked, and is recorded against its
// neighbours in the blocked subgraph so it is unblocked the moment any of
// them participates in a circuit.
func johnson(adj [][]int, start int) [][]int {
	var circuits [][]int

	path := []int{start}
	blocked := map[int]bool{start: true}
	blockedSubgraph := make(map[int]map[int]bool)

	type frame struct {
		node int
		next int
	}

	stack := []frame{{node: start}}
	closed := []bool{false}

	for len(stack) > 0 {
		top := len(stack) - 1
		advanced := false

		for stack[top].next < len(adj[stack[top].node]) {
			node := adj[stack[top].node][stack[top].next]
			stack[top].next++

			if node == start {
				circuits = append(circuits, slices.Clone(path))
				closed[len(closed)-1] = true

				continue
			}

			if !blocked[node] {
				path = append(path, node)
				closed = append(closed, false)
				blocked[node] = true
				stack = append(stack, frame{node: node})
				advanced = true

				break
			}
		}

		if advanced {
			continue
		}

		// Exhausted every neighbour of the top node, pop it
		stack = stack[:len(stack)-1]

		node := path[len(path)-1]
		path = path[:len(path)-1]

		wasClosed := closed[len(closed)-1]
		closed = closed[:len(closed)-1]

		if wasClosed {
			if len(closed) > 0 {
				closed[len(closed)-1] = true
			}

			unblock := []int{node}
			for len(unblock) > 0 {
				n := unblock[len(unblock)-1]
				unblock = unblock[:len(unblock)-1]

				if !blocked[n] {
					continue
				}

				delete(blocked, n)

				for m := range blockedSubgraph[n] {
					unblock = append(unblock, m)
				}

				delete(blockedSubgraph, n)
			}
		} else {
			for _, neighbour := range adj[node] {
				if blockedSubgraph[neighbour] == nil {
					blockedSubgraph[neighbour] = make(map[int]bool)
				}

				blockedSubgraph[neighbour][node] = true
			}
		}
	}

	return circuits
}

// sccComponents returns the strongly connected components of adj with more
// than one node, restricted to active nodes, using an iterative Tarjan.
func sccComponents(adj [][]int, active []bool) [][]int {
	n := len(adj)

	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)

	for i := range index {
		index[i] = -1
	}

	next := 0

	var (
		tarjanStack []int
		components  [][]int
	)

	type frame struct {
		node int
		next int
	}

	for v0 := range adj {
		if !active[v0] || index[v0] != -1 {
			continue
		}

		index[v0], low[v0] = next, next
		next++

		tarjanStack = append(tarjanStack, v0)
		onStack[v0] = true

		stack := []frame{{node: v0}}

		for len(stack) > 0 {
			top := len(stack) - 1
			v := stack[top].node

			if stack[top].next < len(adj[v]) {
				w := adj[v][stack[top].next]
				stack[top].next++

				if !active[w] {
					continue
				}

				if index[w] == -1 {
					index[w], low[w] = next, next
					next++

					tarjanStack = append(tarjanStack, w)
					onStack[w] = true

					stack = append(stack, frame{node: w})
				} else if onStack[w] && index[w] < low[v] {
					low[v] = index[w]
				}

				continue
			}

			// v is fully explored
			stack = stack[:len(stack)-1]

			if len(stack) > 0 {
				parent := stack[len(stack)-1].node
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}

			if low[v] == index[v] {
				var component []int

				for {
					w := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[w] = false

					component = append(component, w)

					if w == v {
						break
					}
				}

				if len(component) > 1 {
					components = append(components, component)
				}
			}
		}
	}

	return components
}
