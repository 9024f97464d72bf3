package td

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:generate mockgen -source heuristic.go -destination heuristic_mock.go -package td

// A Heuristic scores the vertices of a graph being eliminated: the engine always picks a vertex
// of minimal score. Implementations must never modify the graph.
type Heuristic interface {
	// Evaluate returns the cost of eliminating v from g right now.
	Evaluate(g *Graph, v Vertex) int
	// Affected appends to dst, in ascending order, the vertices whose score may change once v is
	// eliminated. It is called before g is modified by the elimination, and never lists v itself.
	Affected(g *Graph, v Vertex, dst []Vertex) []Vertex
	// MaxScore returns an upper bound on the score of any vertex of an n-vertex graph.
	MaxScore(n int) int
	String() string
}

var (
	// MinFill scores a vertex by the number of edges its elimination would add between its neighbors.
	MinFill Heuristic = minFill{}
	// MinDegree scores a vertex by its number of neighbors.
	MinDegree Heuristic = minDegree{}
)

// ParseHeuristic returns the heuristic with the given name, case insensitive.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(name) {
	case "min-fill", "minfill", "fill":
		return MinFill, nil
	case "min-degree", "mindegree", "degree":
		return MinDegree, nil
	default:
		return nil, ConfigError(errors.Wrapf(ErrUnknownHeuristic, "%q", name))
	}
}

type minFill struct{}

func (minFill) String() string { return "min-fill" }

func (minFill) MaxScore(n int) int {
	if n < 3 {
		return 0
	}
	return (n - 1) * (n - 2) / 2
}

// Evaluate counts the pairs of non-adjacent neighbors of v.
// Twice the number of edges between neighbors is the sum, over each neighbor,
// of the size of its own neighborhood intersected with v's.
func (minFill) Evaluate(g *Graph, v Vertex) int {
	nbrs := g.Neighbors(v)
	d := len(nbrs)
	if d < 2 {
		return 0
	}
	inner := 0
	for _, u := range nbrs {
		inner += intersectionSize(g.Neighbors(u), nbrs)
	}
	return d*(d-1)/2 - inner/2
}

func (minFill) Affected(g *Graph, v Vertex, dst []Vertex) []Vertex {
	start := len(dst)
	for _, u := range g.Neighbors(v) {
		dst = append(dst, u)
		for _, w := range g.Neighbors(u) {
			if w != v {
				dst = append(dst, w)
			}
		}
	}
	slices.Sort(dst[start:])
	return dst[:start+len(slices.Compact(dst[start:]))]
}

type minDegree struct{}

func (minDegree) String() string { return "min-degree" }

func (minDegree) MaxScore(n int) int {
	if n < 1 {
		return 0
	}
	return n - 1
}

func (minDegree) Evaluate(g *Graph, v Vertex) int {
	return g.Degree(v)
}

func (minDegree) Affected(g *Graph, v Vertex, dst []Vertex) []Vertex {
	return append(dst, g.Neighbors(v)...)
}

// intersectionSize returns |a ∩ b| for two sorted, duplicate-free lists.
func intersectionSize(a, b []Vertex) int {
	res := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			res++
			i++
			j++
		}
	}
	return res
}
