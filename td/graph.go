package td

import (
	"slices"

	"github.com/AlexandreDubray/couaincre/cnf"
	"github.com/cockroachdb/errors"
)

// A Vertex is a formula variable. Vertices are 0-indexed, so the DIMACS variable 1 is the Vertex 0.
type Vertex int

// A Graph is an undirected graph over the vertices [0, n).
// Each adjacency list is kept sorted and duplicate-free, and adjacency is always symmetric.
type Graph struct {
	adj     [][]Vertex
	nbEdges int
}

// NewGraph returns a graph with n vertices and no edge.
func NewGraph(n int) *Graph {
	return &Graph{adj: make([][]Vertex, n)}
}

// FromClauses builds the primal graph of a formula given as DIMACS-style clauses:
// two variables are adjacent iff they appear together in some clause, whatever their polarity.
// Every literal must reference a variable in [1, n].
func FromClauses(n int, clauses [][]int) (*Graph, error) {
	if n <= 0 {
		return nil, ConfigError(errors.Wrapf(ErrNoVariables, "got %d variables", n))
	}
	g := NewGraph(n)
	vars := make([]Vertex, 0, 8)
	for i, clause := range clauses {
		vars = vars[:0]
		for _, lit := range clause {
			if lit == 0 || lit > n || -lit > n {
				return nil, ConfigError(errors.Wrapf(ErrVariableOutOfRange, "literal %d in clause #%d, expected variables in [1, %d]", lit, i+1, n))
			}
			if lit < 0 {
				lit = -lit
			}
			vars = append(vars, Vertex(lit-1))
		}
		g.addClique(vars)
	}
	return g, nil
}

// FromFormula builds the primal graph of f.
func FromFormula(f *cnf.Formula) (*Graph, error) {
	if f.NbVars <= 0 {
		return nil, ConfigError(errors.Wrapf(ErrNoVariables, "got %d variables", f.NbVars))
	}
	g := NewGraph(f.NbVars)
	vars := make([]Vertex, 0, 8)
	for i, clause := range f.Clauses {
		vars = vars[:0]
		for _, lit := range clause {
			v := lit.Var()
			if v < 0 || int(v) >= f.NbVars {
				return nil, ConfigError(errors.Wrapf(ErrVariableOutOfRange, "literal %d in clause #%d, expected variables in [1, %d]", lit.Int(), i+1, f.NbVars))
			}
			vars = append(vars, Vertex(v))
		}
		g.addClique(vars)
	}
	return g, nil
}

func (g *Graph) addClique(vs []Vertex) {
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			g.AddEdge(vs[i], vs[j])
		}
	}
}

// Len returns the number of vertices of g, eliminated ones included.
func (g *Graph) Len() int { return len(g.adj) }

// NbEdges returns the current number of edges of g.
func (g *Graph) NbEdges() int { return g.nbEdges }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v Vertex) int { return len(g.adj[v]) }

// Neighbors returns the neighbors of v, in ascending order.
// The returned slice belongs to g: it must not be modified, and is only valid until g is.
func (g *Graph) Neighbors(v Vertex) []Vertex { return g.adj[v] }

// HasEdge is true iff u and v are adjacent.
func (g *Graph) HasEdge(u, v Vertex) bool {
	if len(g.adj[u]) > len(g.adj[v]) {
		u, v = v, u
	}
	_, found := slices.BinarySearch(g.adj[u], v)
	return found
}

// AddEdge adds the edge u-v and returns true iff it was not already there.
// Self loops are ignored.
func (g *Graph) AddEdge(u, v Vertex) bool {
	if u == v {
		return false
	}
	var added bool
	if g.adj[u], added = insert(g.adj[u], v); !added {
		return false
	}
	g.adj[v], _ = insert(g.adj[v], u)
	g.nbEdges++
	return true
}

// isolate removes every edge incident to v.
func (g *Graph) isolate(v Vertex) {
	for _, u := range g.adj[v] {
		g.adj[u], _ = remove(g.adj[u], v)
	}
	g.nbEdges -= len(g.adj[v])
	g.adj[v] = nil
}

// Edges returns every edge u-v of g once, with u < v, in lexicographic order.
func (g *Graph) Edges() [][2]Vertex {
	res := make([][2]Vertex, 0, g.nbEdges)
	for u, nbrs := range g.adj {
		i, _ := slices.BinarySearch(nbrs, Vertex(u))
		for _, v := range nbrs[i:] {
			res = append(res, [2]Vertex{Vertex(u), v})
		}
	}
	return res
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	res := &Graph{adj: make([][]Vertex, len(g.adj)), nbEdges: g.nbEdges}
	for v, nbrs := range g.adj {
		res.adj[v] = slices.Clone(nbrs)
	}
	return res
}

// checkSymmetry returns an error if some u lists v as a neighbor while v does not list u.
func (g *Graph) checkSymmetry() error {
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if Vertex(u) == v {
				return errors.AssertionFailedf("self loop on vertex %d", u)
			}
			if _, found := slices.BinarySearch(g.adj[v], Vertex(u)); !found {
				return errors.AssertionFailedf("edge %d-%d is not symmetric", u, v)
			}
		}
	}
	return nil
}

func insert(list []Vertex, v Vertex) ([]Vertex, bool) {
	i, found := slices.BinarySearch(list, v)
	if found {
		return list, false
	}
	return slices.Insert(list, i, v), true
}

func remove(list []Vertex, v Vertex) ([]Vertex, bool) {
	i, found := slices.BinarySearch(list, v)
	if !found {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}
