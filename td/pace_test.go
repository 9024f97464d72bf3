package td

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePrimal(t *testing.T) {
	g := mustGraph(t, 4, []int{1, -2}, []int{3, 4, 2})
	var buf bytes.Buffer
	require.NoError(t, WritePrimal(&buf, g))
	assert.Equal(t, "p tw 4 4\n1 2\n2 3\n2 4\n3 4\n", buf.String())

	read, err := ReadPrimal(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), read.Edges())
}

func TestReadPrimal(t *testing.T) {
	input := "c a comment\np tw 3 2\n\n1 2\nc another comment\n3 2"
	g, err := ReadPrimal(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, [][2]Vertex{{0, 1}, {1, 2}}, g.Edges())
}

func TestReadPrimal_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no header", "1 2\n"},
		{"no vertex", "p tw 0 0\n"},
		{"vertex out of range", "p tw 2 1\n1 3\n"},
		{"wrong edge count", "p tw 3 2\n1 2\n"},
		{"garbage", "p tw 3 1\n1 x\n"},
		{"half edge", "p tw 3 1\n1\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadPrimal(strings.NewReader(test.input))
			assert.True(t, IsConfigError(err), "got %v", err)
		})
	}
}

func TestTD_RoundTrip(t *testing.T) {
	g := mustGraph(t, 5, []int{1, 2}, []int{2, 3}, []int{3, 4}, []int{4, 1}, []int{5})
	d, err := Decompose(g, Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTD(&buf, d))
	assert.Equal(t, "s td 3 3 5\nb 1 5\nb 2 1 2 4\nb 3 2 3 4\n3 2\n", buf.String())

	read, err := ReadTD(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Bags, read.Bags)
	assert.Equal(t, d.Width(), read.Width())
	assert.Equal(t, 5, read.NbVertices)
	assert.NoError(t, read.Validate(g))
	// The lowest bag of a tree becomes its root.
	assert.Equal(t, []int{2, -1}, d.Parent[1:])
	assert.Equal(t, []int{-1, -1, 1}, read.Parent)
}

func TestReadTD(t *testing.T) {
	// Legacy header, without the number of vertices, and unordered bag contents.
	input := "c solution\ns td 3 2\nb 2 3 2\nb 1 1 2\nb 3 4 3\n\n1 2\n3 2\n"
	d, err := ReadTD(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 4, d.NbVertices)
	assert.Equal(t, []Bag{{0, 1}, {1, 2}, {2, 3}}, d.Bags)
	assert.Equal(t, []int{-1, 0, 1}, d.Parent)
	assert.Equal(t, 1, d.Width())
	assert.NoError(t, d.Validate(mustGraph(t, 4, []int{1, 2}, []int{2, 3}, []int{3, 4})))
}

func TestReadTD_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no header", "b 1 1 2\n"},
		{"bag id out of range", "s td 1 2 2\nb 2 1 2\n"},
		{"duplicate bag", "s td 2 2 2\nb 1 1 2\nb 1 1 2\n"},
		{"missing bag", "s td 2 2 2\nb 1 1 2\n"},
		{"vertex zero", "s td 1 1 2\nb 1 0\n"},
		{"vertex beyond header", "s td 1 1 2\nb 1 3\n"},
		{"wrong width", "s td 1 3 2\nb 1 1 2\n"},
		{"edge out of range", "s td 2 1 2\nb 1 1\nb 2 2\n1 3\n"},
		{"self loop", "s td 2 1 2\nb 1 1\nb 2 2\n1 1\n"},
		{"cycle", "s td 3 1 3\nb 1 1\nb 2 2\nb 3 3\n1 2\n2 3\n3 1\n"},
		{"too many header values", "s td 1 1 2 7\nb 1 1\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadTD(strings.NewReader(test.input))
			assert.True(t, IsConfigError(err), "got %v", err)
		})
	}
	_, err := ReadTD(strings.NewReader("s td 2 2 2\nb 1 1 2\n"))
	assert.True(t, errors.Is(err, ErrInvalidDecomposition))
}
