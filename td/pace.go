package td

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
	"github.com/emirpasic/gods/queues/arrayqueue"
)

// Graphs and decompositions can be exchanged with external tools in the PACE challenge formats:
//
//	p tw <vertices> <edges>           s td <bags> <width+1> <vertices>
//	<u> <v>                           b <id> <vertex>...
//	...                               <bag> <bag>
//
// Vertices and bags are 1-indexed and lines starting with 'c' are comments.
// The vertex count of a decomposition header is optional.

var paceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `c[^\n]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Keyword", Pattern: `[a-z]+`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})

type grFile struct {
	Header *grHeader `EOL* @@`
	Edges  []*pair   `( @@ | EOL )*`
}

type grHeader struct {
	NbVertices int `"p" "tw" @Int`
	NbEdges    int `@Int EOL`
}

type pair struct {
	A int `@Int`
	B int `@Int EOL`
}

type tdFile struct {
	Header *tdHeader `EOL* @@`
	Lines  []*tdLine `( @@ | EOL )*`
}

type tdHeader struct {
	NbBags int   `"s" "td" @Int`
	MaxBag int   `@Int`
	Rest   []int `@Int* EOL`
}

type tdLine struct {
	Bag  *tdBag `  @@`
	Edge *pair  `| @@`
}

type tdBag struct {
	ID      int   `"b" @Int`
	Members []int `@Int* EOL`
}

var (
	grParser = participle.MustBuild[grFile](participle.Lexer(paceLexer))
	tdParser = participle.MustBuild[tdFile](participle.Lexer(paceLexer))
)

// readAll reads r and makes sure its last line is terminated.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ConfigError(errors.Wrap(err, "could not read input"))
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// WritePrimal writes g in the PACE graph format.
func WritePrimal(w io.Writer, g *Graph) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "p tw %d %d\n", g.Len(), g.NbEdges())
	for _, e := range g.Edges() {
		fmt.Fprintf(buf, "%d %d\n", e[0]+1, e[1]+1)
	}
	return buf.Flush()
}

// ReadPrimal reads a graph in the PACE graph format.
func ReadPrimal(r io.Reader) (*Graph, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	file, err := grParser.ParseBytes("", data)
	if err != nil {
		return nil, ConfigError(errors.Wrap(err, "could not parse graph"))
	}
	n := file.Header.NbVertices
	if n <= 0 {
		return nil, ConfigError(errors.Wrapf(ErrNoVariables, "got %d vertices", n))
	}
	if len(file.Edges) != file.Header.NbEdges {
		return nil, ConfigError(errors.Newf("header announces %d edges, got %d", file.Header.NbEdges, len(file.Edges)))
	}
	g := NewGraph(n)
	for i, e := range file.Edges {
		if e.A < 1 || e.A > n || e.B < 1 || e.B > n {
			return nil, ConfigError(errors.Wrapf(ErrVariableOutOfRange, "edge #%d: %d-%d, expected vertices in [1, %d]", i+1, e.A, e.B, n))
		}
		g.AddEdge(Vertex(e.A-1), Vertex(e.B-1))
	}
	return g, nil
}

// WriteTD writes d in the PACE tree decomposition format.
// An empty bag list still gets a header, with width+1 being 0.
func WriteTD(w io.Writer, d *Decomposition) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "s td %d %d %d\n", d.Len(), d.Width()+1, d.NbVertices)
	for b, bag := range d.Bags {
		fmt.Fprintf(buf, "b %d", b+1)
		for _, v := range bag {
			fmt.Fprintf(buf, " %d", v+1)
		}
		buf.WriteByte('\n')
	}
	for _, e := range d.Edges() {
		fmt.Fprintf(buf, "%d %d\n", e[0]+1, e[1]+1)
	}
	return buf.Flush()
}

// ReadTD reads a decomposition in the PACE tree decomposition format.
// The lowest bag of each tree becomes its root. When the header does not give the number of
// vertices, it is the highest vertex found in a bag.
func ReadTD(r io.Reader) (*Decomposition, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	file, err := tdParser.ParseBytes("", data)
	if err != nil {
		return nil, ConfigError(errors.Wrap(err, "could not parse tree decomposition"))
	}
	nbBags := file.Header.NbBags
	bags := make([]Bag, nbBags)
	seen := make([]bool, nbBags)
	var edges []*pair
	n := 0
	for _, line := range file.Lines {
		if line.Edge != nil {
			edges = append(edges, line.Edge)
			continue
		}
		id := line.Bag.ID
		if id < 1 || id > nbBags {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag id %d, expected ids in [1, %d]", id, nbBags))
		}
		if seen[id-1] {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag %d is defined twice", id))
		}
		seen[id-1] = true
		bag := make(Bag, 0, len(line.Bag.Members))
		for _, v := range line.Bag.Members {
			if v < 1 {
				return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag %d contains vertex %d", id, v))
			}
			bag = append(bag, Vertex(v-1))
			n = max(n, v)
		}
		slices.Sort(bag)
		bags[id-1] = slices.Compact(bag)
	}
	for i, ok := range seen {
		if !ok {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "bag %d is missing", i+1))
		}
	}
	if width := bagsWidth(bags); width+1 != file.Header.MaxBag {
		return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "header announces bags of size %d, largest has %d vertices", file.Header.MaxBag, width+1))
	}
	switch rest := file.Header.Rest; len(rest) {
	case 0:
	case 1:
		if rest[0] < n {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "vertex %d out of range, header announces %d vertices", n, rest[0]))
		}
		n = rest[0]
	default:
		return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "unexpected header values %v", rest[1:]))
	}
	parent, err := rootForest(nbBags, edges)
	if err != nil {
		return nil, err
	}
	return NewDecomposition(n, bags, parent, nil)
}

// rootForest orients the undirected tree edges between nbBags 1-indexed bags,
// walking each tree breadth-first from its lowest bag.
func rootForest(nbBags int, edges []*pair) ([]int, error) {
	adj := make([][]int, nbBags)
	for _, e := range edges {
		if e.A < 1 || e.A > nbBags || e.B < 1 || e.B > nbBags || e.A == e.B {
			return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "tree edge %d-%d, expected bags in [1, %d]", e.A, e.B, nbBags))
		}
		adj[e.A-1] = append(adj[e.A-1], e.B-1)
		adj[e.B-1] = append(adj[e.B-1], e.A-1)
	}
	parent := make([]int, nbBags)
	visited := make([]bool, nbBags)
	queue := arrayqueue.New()
	for root := range nbBags {
		if visited[root] {
			continue
		}
		parent[root] = -1
		visited[root] = true
		queue.Enqueue(root)
		for !queue.Empty() {
			x, _ := queue.Dequeue()
			b := x.(int)
			for _, c := range adj[b] {
				if c == parent[b] {
					continue
				}
				if visited[c] {
					return nil, ConfigError(errors.Wrapf(ErrInvalidDecomposition, "tree edges contain a cycle through bag %d", c+1))
				}
				visited[c] = true
				parent[c] = b
				queue.Enqueue(c)
			}
		}
	}
	return parent, nil
}
