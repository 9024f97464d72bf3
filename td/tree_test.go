package td

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Parents(t *testing.T) {
	g := mustGraph(t, 4, []int{1, 2}, []int{2, 3}, []int{3, 4}, []int{4, 1})
	elim, err := Eliminate(g, Options{Heuristic: MinFill})
	require.NoError(t, err)
	d := elim.Tree()
	assert.Equal(t, []int{1, 2, 3, -1}, d.Parent)
	assert.Equal(t, [][]int{nil, {0}, {1}, {2}}, d.Children)
	assert.Equal(t, []int{3}, d.Roots())
	assert.NoError(t, d.Validate(g))
}

func TestDecompose_DisjointEdges(t *testing.T) {
	g := mustGraph(t, 4, []int{1, 2}, []int{3, 4})
	d, err := Decompose(g, Options{Heuristic: MinDegree})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Width())
	assert.Equal(t, []Bag{{0, 1}, {2, 3}}, d.Bags)
	assert.Equal(t, []int{-1, -1}, d.Parent)
	assert.Equal(t, []int{0, 1}, d.Roots())
	assert.Empty(t, d.Edges())
	assert.NoError(t, d.Validate(g))
	assert.Len(t, Components(g), 2)
}

func TestDecompose_Triangle(t *testing.T) {
	g := mustGraph(t, 3, []int{1, 2, 3})
	for _, h := range []Heuristic{MinFill, MinDegree} {
		d, err := Decompose(g, Options{Heuristic: h})
		require.NoError(t, err)
		assert.Equal(t, 2, d.Width())
		assert.Equal(t, []Bag{{0, 1, 2}}, d.Bags)
		assert.Equal(t, []int{0}, d.Roots())
		assert.NoError(t, d.Validate(g))
	}
}

func TestDecompose_Square(t *testing.T) {
	g := mustGraph(t, 4, []int{1, 2}, []int{2, 3}, []int{3, 4}, []int{4, 1})
	d, err := Decompose(g, Options{Heuristic: MinFill})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Width())
	assert.Equal(t, []Bag{{0, 1, 3}, {1, 2, 3}}, d.Bags)
	assert.Equal(t, []int{1, -1}, d.Parent)
	assert.Equal(t, [][2]int{{1, 0}}, d.Edges())
	assert.Equal(t, []Vertex{0, 1, 2, 3}, d.Order)
	assert.NoError(t, d.Validate(g))
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name       string
		bags       []Bag
		parent     []int
		wantBags   []Bag
		wantParent []int
	}{
		{
			name:       "child included in parent",
			bags:       []Bag{{1}, {1, 2}},
			parent:     []int{1, -1},
			wantBags:   []Bag{{1, 2}},
			wantParent: []int{-1},
		},
		{
			name:       "parent included in child",
			bags:       []Bag{{0, 1, 2}, {1, 2}, {2}},
			parent:     []int{1, 2, -1},
			wantBags:   []Bag{{0, 1, 2}},
			wantParent: []int{-1},
		},
		{
			name:       "grandchildren are adopted",
			bags:       []Bag{{0, 1}, {1, 2}, {1, 2}, {2, 3}, {2}},
			parent:     []int{1, 2, 4, 4, -1},
			wantBags:   []Bag{{0, 1}, {2, 3}, {1, 2}},
			wantParent: []int{2, 2, -1},
		},
		{
			name:       "nothing to merge",
			bags:       []Bag{{0, 1}, {1, 2}, {2, 3}},
			parent:     []int{1, 2, -1},
			wantBags:   []Bag{{0, 1}, {1, 2}, {2, 3}},
			wantParent: []int{1, 2, -1},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := NewDecomposition(4, test.bags, test.parent, nil)
			require.NoError(t, err)
			width := d.Width()
			d.Compress()
			assert.Equal(t, test.wantBags, d.Bags)
			assert.Equal(t, test.wantParent, d.Parent)
			assert.Equal(t, width, d.Width())
		})
	}
}

func TestDecompose_RandomFormulas(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for range 30 {
		n := 1 + rng.Intn(50)
		g, err := FromClauses(n, randomClauses(rng, n, rng.Intn(2*n+1), 4))
		require.NoError(t, err)
		for _, h := range []Heuristic{MinFill, MinDegree} {
			elim, err := Eliminate(g, Options{Heuristic: h})
			require.NoError(t, err)
			d := elim.Tree()
			require.NoError(t, d.Validate(g))
			d.Compress()
			require.NoError(t, d.Validate(g))
			assert.Equal(t, elim.Width(), d.Width())
			assert.GreaterOrEqual(t, d.Width(), CliqueLowerBound(g))
			assert.GreaterOrEqual(t, d.Width(), DegeneracyLowerBound(g))
			assert.Len(t, d.Roots(), len(Components(g)))
			for _, e := range d.Edges() {
				assert.False(t, isSubset(d.Bags[e[0]], d.Bags[e[1]]), "bag #%d is included in its child #%d", e[0], e[1])
				assert.False(t, isSubset(d.Bags[e[1]], d.Bags[e[0]]), "bag #%d is included in its parent #%d", e[1], e[0])
			}
			for b, children := range d.Children {
				for _, c := range children {
					assert.Equal(t, b, d.Parent[c])
				}
			}
		}
	}
}

func TestValidate_Errors(t *testing.T) {
	// 0 - 1 - 2
	g := mustGraph(t, 3, []int{1, 2}, []int{2, 3})
	tests := []struct {
		name   string
		bags   []Bag
		parent []int
	}{
		{"missing vertex", []Bag{{0, 1}}, []int{-1}},
		{"missing edge", []Bag{{0, 1}, {2}}, []int{1, -1}},
		{"disconnected vertex", []Bag{{0, 1}, {0, 2}, {1, 2}}, []int{2, -1, 1}},
		{"cycle", []Bag{{0, 1}, {1, 2}}, []int{1, 0}},
		{"out of range vertex", []Bag{{0, 1, 2, 5}}, []int{-1}},
		{"unsorted bag", []Bag{{1, 0, 2}}, []int{-1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := &Decomposition{NbVertices: 3, Bags: test.bags, Parent: test.parent}
			err := d.Validate(g)
			assert.True(t, errors.Is(err, ErrInvalidDecomposition), "got %v", err)
		})
	}
	d := &Decomposition{NbVertices: 4, Bags: []Bag{{0, 1, 2}}, Parent: []int{-1}}
	assert.Error(t, d.Validate(g))
}

func TestNewDecomposition_Errors(t *testing.T) {
	_, err := NewDecomposition(3, []Bag{{0}}, []int{-1, -1}, nil)
	assert.True(t, IsConfigError(err))
	_, err = NewDecomposition(3, []Bag{{0}, {1}}, []int{-1, 2}, nil)
	assert.True(t, IsConfigError(err))
	_, err = NewDecomposition(3, []Bag{{0}}, []int{0}, nil)
	assert.True(t, IsConfigError(err))
	_, err = NewDecomposition(3, []Bag{{0, 3}}, []int{-1}, nil)
	assert.True(t, errors.Is(err, ErrInvalidDecomposition))
	_, err = NewDecomposition(3, []Bag{{1, 1}}, []int{-1}, nil)
	assert.True(t, errors.Is(err, ErrInvalidDecomposition))
}

func BenchmarkDecompose(b *testing.B) {
	rng := rand.New(rand.NewSource(13))
	g, err := FromClauses(1000, randomClauses(rng, 1000, 4200, 3))
	require.NoError(b, err)
	for range b.N {
		if _, err := Decompose(g, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
