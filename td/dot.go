package td

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// RenderDOT writes d to w as a graphviz DOT graph, one node per bag, labeled with the bag's
// 1-indexed variables.
func RenderDOT(w io.Writer, d *Decomposition) (err error) {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return errors.Wrap(err, "could not create graph")
	}
	defer func() {
		err = errors.CombineErrors(err, errors.CombineErrors(graph.Close(), g.Close()))
	}()
	nodes := make([]*cgraph.Node, d.Len())
	for b, bag := range d.Bags {
		if nodes[b], err = graph.CreateNode(fmt.Sprintf("b%d", b+1)); err != nil {
			return errors.Wrapf(err, "could not create node for bag #%d", b+1)
		}
		nodes[b].SetLabel(bagLabel(bag))
	}
	for _, e := range d.Edges() {
		if _, err = graph.CreateEdge("", nodes[e[0]], nodes[e[1]]); err != nil {
			return errors.Wrapf(err, "could not create edge %d-%d", e[0]+1, e[1]+1)
		}
	}
	if err = g.Render(graph, graphviz.XDOT, w); err != nil {
		return errors.Wrap(err, "could not render graph")
	}
	return nil
}

func bagLabel(bag Bag) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range bag {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v+1)
	}
	sb.WriteByte('}')
	return sb.String()
}
