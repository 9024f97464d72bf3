package td

import (
	"context"
	"slices"

	"github.com/AlexandreDubray/couaincre/logger"
	"github.com/cockroachdb/errors"
)

// Options configure a decomposition.
type Options struct {
	Heuristic Heuristic     // Elimination heuristic. MinFill if nil.
	Scheduler SchedulerKind // Structure backing the scheduler.
	Log       logger.Logger // Debug output of the engine. Nothing is logged if nil.
}

func (o Options) heuristic() Heuristic {
	if o.Heuristic == nil {
		return MinFill
	}
	return o.Heuristic
}

func (o Options) debugf(format string, args ...interface{}) {
	if o.Log != nil {
		o.Log.Debugf(format, args...)
	}
}

// A Bag is a set of vertices, sorted in ascending order.
type Bag []Vertex

// Contains is true iff v is in b.
func (b Bag) Contains(v Vertex) bool {
	_, found := slices.BinarySearch(b, v)
	return found
}

// Stats are statistics about an elimination.
type Stats struct {
	Evaluations   int // Calls to the heuristic's Evaluate, initial scores included
	Reevaluations int // Evaluations of dirty vertices when they were popped
	Requeues      int // Popped vertices pushed back because their score had increased
	FillEdges     int // Edges added between neighbors of eliminated vertices
}

// An Elimination records how each vertex of a graph was eliminated.
type Elimination struct {
	Order    []Vertex // Order[k] is the vertex eliminated at step k
	Position []int    // Position[v] is the step at which v was eliminated
	Bags     []Bag    // Bags[k] is Order[k] and its neighbors at step k
	Stats    Stats
}

// Len returns the number of elimination steps, i.e the number of vertices.
func (e *Elimination) Len() int { return len(e.Order) }

// Width returns the size of the largest bag, minus one.
func (e *Elimination) Width() int {
	return bagsWidth(e.Bags)
}

// eliminator holds the state of an elimination in progress.
type eliminator struct {
	g          *Graph // Scratch copy of the input graph
	h          Heuristic
	queue      scheduler
	dirty      []bool   // Score of the vertex may be stale
	eliminated []bool   // Vertex has been removed from g
	affected   []Vertex // Buffer for Heuristic.Affected
	res        *Elimination
}

// Eliminate eliminates every vertex of g, greedily choosing a vertex minimizing opts.Heuristic at
// each step. g itself is not modified.
//
// Scores are only computed again for vertices whose neighborhood changed since their last
// evaluation, when they reach the front of the scheduler. The order is thus close to, but not
// always the same as, the one recomputing every score at each step.
func Eliminate(g *Graph, opts Options) (*Elimination, error) {
	return EliminateContext(context.Background(), g, opts)
}

// EliminateContext is like Eliminate, but gives up as soon as ctx is done.
func EliminateContext(ctx context.Context, g *Graph, opts Options) (*Elimination, error) {
	n := g.Len()
	if n == 0 {
		return nil, ConfigError(errors.Wrap(ErrNoVariables, "cannot eliminate an empty graph"))
	}
	if err := g.checkSymmetry(); err != nil {
		return nil, err
	}
	h := opts.heuristic()
	e := &eliminator{
		g:          g.Clone(),
		h:          h,
		queue:      newScheduler(opts.Scheduler, n, h.MaxScore(n)),
		dirty:      make([]bool, n),
		eliminated: make([]bool, n),
		res: &Elimination{
			Order:    make([]Vertex, n),
			Position: make([]int, n),
			Bags:     make([]Bag, n),
		},
	}
	for v := range n {
		e.queue.push(Vertex(v), h.Evaluate(e.g, Vertex(v)))
	}
	e.res.Stats.Evaluations = n
	for k := range n {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "interrupted after %d of %d eliminations", k, n)
		}
		v, err := e.next()
		if err != nil {
			return nil, errors.Wrapf(err, "at step %d", k)
		}
		if err := e.eliminate(k, v); err != nil {
			return nil, errors.Wrapf(err, "at step %d", k)
		}
	}
	if e.queue.len() != 0 {
		return nil, errors.AssertionFailedf("%d vertices still scheduled after eliminating all of them", e.queue.len())
	}
	if e.g.NbEdges() != 0 {
		return nil, errors.AssertionFailedf("%d edges left after eliminating all vertices", e.g.NbEdges())
	}
	st := e.res.Stats
	opts.debugf("%s: eliminated %d vertices, width %d, %d fill edges, %d evaluations (%d revalidations, %d requeues)",
		h, n, e.res.Width(), st.FillEdges, st.Evaluations, st.Reevaluations, st.Requeues)
	return e.res, nil
}

// next pops the next vertex to eliminate.
// A dirty vertex is evaluated again: if its score has grown, it goes back to the scheduler
// and the next one is considered instead. Scores of vertices still queued under an older key
// may have dropped below the popped one, so the choice is only approximately greedy.
func (e *eliminator) next() (Vertex, error) {
	for {
		v, score, ok := e.queue.pop()
		if !ok {
			return 0, errors.AssertionFailedf("scheduler is empty")
		}
		if e.eliminated[v] {
			return 0, errors.AssertionFailedf("vertex %d popped after its elimination", v)
		}
		if !e.dirty[v] {
			return v, nil
		}
		e.dirty[v] = false
		fresh := e.h.Evaluate(e.g, v)
		e.res.Stats.Evaluations++
		e.res.Stats.Reevaluations++
		if fresh <= score {
			return v, nil
		}
		e.res.Stats.Requeues++
		e.queue.push(v, fresh)
	}
}

// eliminate records v as the vertex eliminated at step k, then makes its neighbors a clique
// and removes it from the graph.
func (e *eliminator) eliminate(k int, v Vertex) error {
	nbrs := e.g.Neighbors(v)
	for _, u := range nbrs {
		if e.eliminated[u] {
			return errors.AssertionFailedf("vertex %d is adjacent to eliminated vertex %d", v, u)
		}
	}
	bag := append(make(Bag, 0, len(nbrs)+1), nbrs...)
	i, _ := slices.BinarySearch(bag, v)
	bag = slices.Insert(bag, i, v)
	e.res.Order[k] = v
	e.res.Position[v] = k
	e.res.Bags[k] = bag
	e.eliminated[v] = true

	// Scores are to be recomputed around v as it is now, before fill edges blur its surroundings.
	e.affected = e.h.Affected(e.g, v, e.affected[:0])
	// Adding edges among nbrs only touches their own lists, never v's.
	for i, a := range nbrs {
		for _, b := range nbrs[i+1:] {
			if e.g.AddEdge(a, b) {
				e.res.Stats.FillEdges++
			}
		}
	}
	e.g.isolate(v)
	for _, u := range e.affected {
		if !e.eliminated[u] {
			e.dirty[u] = true
		}
	}
	return nil
}

func bagsWidth(bags []Bag) int {
	width := -1
	for _, b := range bags {
		if len(b)-1 > width {
			width = len(b) - 1
		}
	}
	return width
}
