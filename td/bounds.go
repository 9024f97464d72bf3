package td

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Undirected returns a copy of g as a gonum graph, where vertex v is the node of ID v.
func (g *Graph) Undirected() *simple.UndirectedGraph {
	res := simple.NewUndirectedGraph()
	for v := range g.adj {
		res.AddNode(simple.Node(v))
	}
	for _, e := range g.Edges() {
		res.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
	}
	return res
}

// CliqueLowerBound returns the size of a maximum clique of g, minus one.
// No tree decomposition of g can be narrower.
// Enumerating maximal cliques is exponential in the worst case: keep it for small or sparse graphs.
func CliqueLowerBound(g *Graph) int {
	best := 0
	for _, clique := range topo.BronKerbosch(g.Undirected()) {
		best = max(best, len(clique))
	}
	return best - 1
}

// DegeneracyLowerBound returns the degeneracy of g, the largest k such that g has a subgraph of
// minimum degree k. No tree decomposition of g can be narrower.
func DegeneracyLowerBound(g *Graph) int {
	if g.Len() == 0 {
		return -1
	}
	_, cores := topo.DegeneracyOrdering(g.Undirected())
	return len(cores) - 1
}

// Components returns the connected components of g, each one sorted, ordered by their lowest vertex.
func Components(g *Graph) [][]Vertex {
	var res [][]Vertex
	for _, nodes := range topo.ConnectedComponents(g.Undirected()) {
		res = append(res, toVertices(nodes))
	}
	slices.SortFunc(res, func(a, b []Vertex) int { return int(a[0] - b[0]) })
	return res
}

func toVertices(nodes []graph.Node) []Vertex {
	res := make([]Vertex, len(nodes))
	for i, n := range nodes {
		res[i] = Vertex(n.ID())
	}
	slices.Sort(res)
	return res
}
