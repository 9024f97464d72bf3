package td

import (
	"context"

	"github.com/cockroachdb/errors"
)

// A Decomposition is a tree decomposition of a graph, or rather a forest of bags with one tree
// per connected component.
type Decomposition struct {
	NbVertices int      // Number of vertices of the decomposed graph
	Bags       []Bag    // Bags[i] is the content of bag i
	Parent     []int    // Parent[i] is the parent bag of bag i, or -1 if i is a root
	Children   [][]int  // Children[i] lists the children of bag i, in ascending order
	Order      []Vertex // Elimination order the decomposition was built from, if any
	width      int
}

// NewDecomposition builds a decomposition of an n-vertex graph from its bags and the parent of each bag.
// The order may be nil. Shape errors are configuration errors; Validate checks the rest.
func NewDecomposition(n int, bags []Bag, parent []int, order []Vertex) (*Decomposition, error) {
	if len(bags) != len(parent) {
		return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "%d bags but %d parents", len(bags), len(parent)))
	}
	for i, p := range parent {
		if p < -1 || p >= len(bags) || p == i {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag #%d has invalid parent %d", i, p))
		}
	}
	for i, bag := range bags {
		for j, v := range bag {
			if v < 0 || int(v) >= n {
				return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag #%d contains vertex %d, expected vertices in [0, %d)", i, v, n))
			}
			if j > 0 && bag[j-1] >= v {
				return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag #%d is not sorted", i))
			}
		}
	}
	return newDecomposition(n, bags, parent, order), nil
}

func newDecomposition(n int, bags []Bag, parent []int, order []Vertex) *Decomposition {
	d := &Decomposition{
		NbVertices: n,
		Bags:       bags,
		Parent:     parent,
		Children:   make([][]int, len(bags)),
		Order:      order,
		width:      bagsWidth(bags),
	}
	for b, p := range parent {
		if p != -1 {
			d.Children[p] = append(d.Children[p], b)
		}
	}
	return d
}

// Decompose computes a tree decomposition of g: it eliminates every vertex, links the bags into a
// forest and removes redundant bags.
func Decompose(g *Graph, opts Options) (*Decomposition, error) {
	return DecomposeContext(context.Background(), g, opts)
}

// DecomposeContext is like Decompose, but gives up as soon as ctx is done.
func DecomposeContext(ctx context.Context, g *Graph, opts Options) (*Decomposition, error) {
	elim, err := EliminateContext(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	d := elim.Tree()
	before := d.Len()
	d.Compress()
	opts.debugf("compressed %d bags into %d", before, d.Len())
	return d, nil
}

// Len returns the number of bags of d.
func (d *Decomposition) Len() int { return len(d.Bags) }

// Width returns the size of the largest bag, minus one.
func (d *Decomposition) Width() int { return d.width }

// Roots returns the bags that have no parent, in ascending order.
func (d *Decomposition) Roots() []int {
	var res []int
	for b, p := range d.Parent {
		if p == -1 {
			res = append(res, b)
		}
	}
	return res
}

// Edges returns the tree edges of d as {parent, child} pairs, sorted by child.
func (d *Decomposition) Edges() [][2]int {
	res := make([][2]int, 0, len(d.Bags))
	for b, p := range d.Parent {
		if p != -1 {
			res = append(res, [2]int{p, b})
		}
	}
	return res
}

// Validate checks that d is a tree decomposition of g: every vertex and every edge of g is in some
// bag, bags form a forest, and the bags containing a given vertex form a connected subtree.
func (d *Decomposition) Validate(g *Graph) error {
	if d.NbVertices != g.Len() {
		return errors.Wrapf(ErrInvalidDecomposition, "decomposition of a %d-vertex graph, got %d vertices", d.NbVertices, g.Len())
	}
	if err := d.checkForest(); err != nil {
		return err
	}
	// holders[v] lists, in ascending order, the bags containing v.
	holders := make([][]int, d.NbVertices)
	for b, bag := range d.Bags {
		for i, v := range bag {
			if v < 0 || int(v) >= d.NbVertices {
				return errors.Wrapf(ErrInvalidDecomposition, "bag #%d contains unknown vertex %d", b, v)
			}
			if i > 0 && bag[i-1] >= v {
				return errors.Wrapf(ErrInvalidDecomposition, "bag #%d is not sorted", b)
			}
			holders[v] = append(holders[v], b)
		}
	}
	for v, bags := range holders {
		if len(bags) == 0 {
			return errors.Wrapf(ErrInvalidDecomposition, "vertex %d is in no bag", v)
		}
	}
	for _, e := range g.Edges() {
		if !sharesBag(holders[e[0]], holders[e[1]]) {
			return errors.Wrapf(ErrInvalidDecomposition, "edge %d-%d is in no bag", e[0], e[1])
		}
	}
	// In a forest, the bags holding v are connected iff they span exactly one more bag than tree edges.
	links := make([]int, d.NbVertices)
	for b, p := range d.Parent {
		if p == -1 {
			continue
		}
		for _, v := range d.Bags[b] {
			if d.Bags[p].Contains(v) {
				links[v]++
			}
		}
	}
	for v, bags := range holders {
		if len(bags)-links[v] != 1 {
			return errors.Wrapf(ErrInvalidDecomposition, "bags containing vertex %d are split in %d subtrees", v, len(bags)-links[v])
		}
	}
	return nil
}

// checkForest makes sure following parents from any bag always leads to a root.
func (d *Decomposition) checkForest() error {
	if len(d.Parent) != len(d.Bags) {
		return errors.Wrapf(ErrInvalidDecomposition, "%d bags but %d parents", len(d.Bags), len(d.Parent))
	}
	const (
		unseen = iota
		onPath
		done
	)
	state := make([]byte, len(d.Bags))
	var path []int
	for b := range d.Bags {
		path = path[:0]
		for x := b; x != -1; x = d.Parent[x] {
			if x < 0 || x >= len(d.Bags) {
				return errors.Wrapf(ErrInvalidDecomposition, "bag parent %d out of range", x)
			}
			if state[x] == done {
				break
			}
			if state[x] == onPath {
				return errors.Wrapf(ErrInvalidDecomposition, "bag #%d is on a cycle", x)
			}
			state[x] = onPath
			path = append(path, x)
		}
		for _, x := range path {
			state[x] = done
		}
	}
	return nil
}

// sharesBag is true iff the sorted lists a and b have a common element.
func sharesBag(a, b []int) bool {
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			return true
		}
	}
	return false
}
