package td

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/AlexandreDubray/couaincre/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEliminate_Square(t *testing.T) {
	g := mustGraph(t, 4, []int{1, 2}, []int{2, 3}, []int{3, 4}, []int{4, 1})
	elim, err := Eliminate(g, Options{Heuristic: MinFill})
	require.NoError(t, err)
	assert.Equal(t, []Vertex{0, 1, 2, 3}, elim.Order)
	assert.Equal(t, []int{0, 1, 2, 3}, elim.Position)
	assert.Equal(t, []Bag{{0, 1, 3}, {1, 2, 3}, {2, 3}, {3}}, elim.Bags)
	assert.Equal(t, 2, elim.Width())
	assert.Equal(t, 1, elim.Stats.FillEdges)
	assert.Equal(t, 4, elim.Len())
	// The input graph is left untouched.
	assert.Equal(t, 4, g.NbEdges())
	assert.False(t, g.HasEdge(1, 3))
}

func TestEliminate_DisjointEdges(t *testing.T) {
	g := mustGraph(t, 4, []int{1, 2}, []int{3, 4})
	elim, err := Eliminate(g, Options{Heuristic: MinDegree})
	require.NoError(t, err)
	assert.Equal(t, []Vertex{0, 1, 2, 3}, elim.Order)
	assert.Equal(t, []Bag{{0, 1}, {1}, {2, 3}, {3}}, elim.Bags)
	assert.Equal(t, 1, elim.Width())
	assert.Zero(t, elim.Stats.FillEdges)
}

func TestEliminate_PicksCheapestVertex(t *testing.T) {
	// 0 is the center of a star whose leaves 1, 2, 3 are also linked to 4.
	g := mustGraph(t, 5, []int{1, 2}, []int{1, 3}, []int{1, 4}, []int{2, 5}, []int{3, 5}, []int{4, 5})
	elim, err := Eliminate(g, Options{Heuristic: MinDegree})
	require.NoError(t, err)
	assert.Equal(t, Vertex(1), elim.Order[0])
	assert.Equal(t, Bag{0, 1, 4}, elim.Bags[0])
}

func TestEliminate_EmptyGraph(t *testing.T) {
	_, err := Eliminate(NewGraph(0), Options{})
	assert.True(t, IsConfigError(err))
}

func TestEliminate_AsymmetricGraph(t *testing.T) {
	g := NewGraph(3)
	g.adj[0] = []Vertex{1}
	_, err := Eliminate(g, Options{})
	assert.True(t, IsInternalError(err))
	assert.False(t, IsConfigError(err))
}

func TestEliminate_OrderIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		n := 1 + rng.Intn(60)
		g, err := FromClauses(n, randomClauses(rng, n, rng.Intn(3*n), 5))
		require.NoError(t, err)
		for _, h := range []Heuristic{MinFill, MinDegree} {
			elim, err := Eliminate(g, Options{Heuristic: h})
			require.NoError(t, err)
			sorted := slices.Clone(elim.Order)
			slices.Sort(sorted)
			for i, v := range sorted {
				require.Equal(t, Vertex(i), v)
			}
			for k, v := range elim.Order {
				require.Equal(t, k, elim.Position[v])
				require.NotEmpty(t, elim.Bags[k])
				require.True(t, elim.Bags[k].Contains(v))
				require.True(t, slices.IsSorted(elim.Bags[k]))
			}
		}
	}
}

func TestEliminate_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	clauses := randomClauses(rng, 80, 200, 4)
	g, err := FromClauses(80, clauses)
	require.NoError(t, err)
	for _, h := range []Heuristic{MinFill, MinDegree} {
		first, err := Eliminate(g, Options{Heuristic: h})
		require.NoError(t, err)
		second, err := Eliminate(mustGraph(t, 80, clauses...), Options{Heuristic: h})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestEliminate_SchedulersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for range 10 {
		n := 2 + rng.Intn(100)
		g, err := FromClauses(n, randomClauses(rng, n, 2*n, 4))
		require.NoError(t, err)
		for _, h := range []Heuristic{MinFill, MinDegree} {
			bucket, err := Eliminate(g, Options{Heuristic: h, Scheduler: SchedulerBucket})
			require.NoError(t, err)
			heap, err := Eliminate(g, Options{Heuristic: h, Scheduler: SchedulerHeap})
			require.NoError(t, err)
			assert.Equal(t, bucket.Order, heap.Order)
			assert.Equal(t, bucket.Bags, heap.Bags)
			assert.Equal(t, bucket.Stats, heap.Stats)
		}
	}
}

// Only vertices flagged by Affected get evaluated again, and only when they are popped.
func TestEliminate_RevalidatesDirtyVerticesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHeuristic(ctrl)
	// 0 - 1 - 2
	g := mustGraph(t, 3, []int{1, 2}, []int{2, 3})

	gomock.InOrder(
		h.EXPECT().MaxScore(3).Return(2),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(0)).Return(0),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(1)).Return(1),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(2)).Return(1),
		// 0 is clean: eliminated as is.
		h.EXPECT().Affected(gomock.Any(), Vertex(0), gomock.Any()).Return([]Vertex{1}),
		// 1 is dirty, and got worse: back to the scheduler.
		h.EXPECT().Evaluate(gomock.Any(), Vertex(1)).Return(2),
		// 2 is clean.
		h.EXPECT().Affected(gomock.Any(), Vertex(2), gomock.Any()).Return([]Vertex{1}),
		// 1 is dirty again, and did not get worse.
		h.EXPECT().Evaluate(gomock.Any(), Vertex(1)).Return(0),
		h.EXPECT().Affected(gomock.Any(), Vertex(1), gomock.Any()).Return(nil),
	)

	elim, err := Eliminate(g, Options{Heuristic: h})
	require.NoError(t, err)
	assert.Equal(t, []Vertex{0, 2, 1}, elim.Order)
	assert.Equal(t, []Bag{{0, 1}, {1, 2}, {1}}, elim.Bags)
	assert.Equal(t, Stats{Evaluations: 5, Reevaluations: 2, Requeues: 1}, elim.Stats)
}

// A dirty vertex whose score decreased is taken right away.
func TestEliminate_AcceptsLowerScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHeuristic(ctrl)
	g := mustGraph(t, 2, []int{1, 2})

	gomock.InOrder(
		h.EXPECT().MaxScore(2).Return(1),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(0)).Return(1),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(1)).Return(1),
		h.EXPECT().Affected(gomock.Any(), Vertex(0), gomock.Any()).Return([]Vertex{1}),
		h.EXPECT().Evaluate(gomock.Any(), Vertex(1)).Return(0),
		h.EXPECT().Affected(gomock.Any(), Vertex(1), gomock.Any()).Return(nil),
	)

	elim, err := Eliminate(g, Options{Heuristic: h, Scheduler: SchedulerHeap})
	require.NoError(t, err)
	assert.Equal(t, []Vertex{0, 1}, elim.Order)
	assert.Zero(t, elim.Stats.Requeues)
}

func TestEliminate_Logs(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)
	g := mustGraph(t, 3, []int{1, 2, 3})
	_, err := Eliminate(g, Options{Log: log})
	require.NoError(t, err)
}

func TestEliminateContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := mustGraph(t, 3, []int{1, 2, 3})
	_, err := EliminateContext(ctx, g, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsConfigError(err))
	assert.False(t, IsInternalError(err))

	_, err = DecomposeContext(ctx, g, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkEliminate(b *testing.B) {
	rng := rand.New(rand.NewSource(11))
	g, err := FromClauses(1000, randomClauses(rng, 1000, 4200, 3))
	require.NoError(b, err)
	for _, h := range []Heuristic{MinFill, MinDegree} {
		b.Run(h.String(), func(b *testing.B) {
			for range b.N {
				if _, err := Eliminate(g, Options{Heuristic: h}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
