package td

import (
	"slices"

	"github.com/emirpasic/gods/queues/arrayqueue"
)

// Tree links the bags of e into a forest: the parent of bag k is the bag of the vertex of bag k
// that was eliminated first after step k. A bag with no such vertex is a root.
// The returned decomposition shares its bags with e.
func (e *Elimination) Tree() *Decomposition {
	parents := make([]int, len(e.Bags))
	for k, bag := range e.Bags {
		parents[k] = -1
		for _, v := range bag {
			if p := e.Position[v]; p > k && (parents[k] == -1 || p < parents[k]) {
				parents[k] = p
			}
		}
	}
	return newDecomposition(len(e.Order), slices.Clone(e.Bags), parents, slices.Clone(e.Order))
}

// Compress removes redundant bags: whenever a bag is included in an adjacent one, the two are
// merged into the larger one, which inherits the children of both. Bags are then renumbered,
// keeping their relative order. The width of d does not change.
//
// Bags are processed bottom-up, each one once all its children are final.
func (d *Decomposition) Compress() {
	n := len(d.Bags)
	pending := make([]int, n) // Children that are not final yet
	removed := make([]bool, n)
	queue := arrayqueue.New()
	for b, children := range d.Children {
		pending[b] = len(children)
		if pending[b] == 0 {
			queue.Enqueue(b)
		}
	}
	for !queue.Empty() {
		x, _ := queue.Dequeue()
		b := x.(int)
		d.absorbChildren(b, removed)
		if p := d.Parent[b]; p != -1 {
			pending[p]--
			if pending[p] == 0 {
				queue.Enqueue(p)
			}
		}
	}
	d.compact(removed)
}

// absorbChildren merges b with each of its children whose bag is a subset or a superset of its own,
// until no such child is left.
func (d *Decomposition) absorbChildren(b int, removed []bool) {
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(d.Children[b]); i++ {
			c := d.Children[b][i]
			switch {
			case isSubset(d.Bags[c], d.Bags[b]):
			case isSubset(d.Bags[b], d.Bags[c]):
				d.Bags[b] = d.Bags[c]
				changed = true // Siblings must be compared to the new content.
			default:
				continue
			}
			grandChildren := d.Children[c]
			for _, gc := range grandChildren {
				d.Parent[gc] = b
			}
			d.Children[b] = slices.Replace(d.Children[b], i, i+1, grandChildren...)
			// Adopted bags are final and were already compared to c.
			i += len(grandChildren) - 1
			d.Bags[c] = nil
			d.Children[c] = nil
			d.Parent[c] = -1
			removed[c] = true
		}
	}
}

// compact drops removed bags and renumbers the others.
func (d *Decomposition) compact(removed []bool) {
	index := make([]int, len(d.Bags))
	bags := make([]Bag, 0, len(d.Bags))
	for b, bag := range d.Bags {
		if removed[b] {
			index[b] = -1
			continue
		}
		index[b] = len(bags)
		bags = append(bags, bag)
	}
	parents := make([]int, 0, len(bags))
	for b, p := range d.Parent {
		if removed[b] {
			continue
		}
		if p != -1 {
			p = index[p]
		}
		parents = append(parents, p)
	}
	*d = *newDecomposition(d.NbVertices, bags, parents, d.Order)
}

// isSubset is true iff every vertex of a is in b.
func isSubset(a, b Bag) bool {
	if len(a) > len(b) {
		return false
	}
	return intersectionSize(a, b) == len(a)
}
