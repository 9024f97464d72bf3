package td_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlexandreDubray/couaincre/cnf"
	"github.com/AlexandreDubray/couaincre/td"
)

func ExampleDecompose() {
	// A cycle over 4 variables: one fill edge is needed.
	clauses := [][]int{{1, -2}, {2, 3}, {-3, 4}, {4, 1}}
	g, err := td.FromClauses(4, clauses)
	if err != nil {
		fmt.Printf("could not build graph: %v", err)
		return
	}
	d, err := td.Decompose(g, td.Options{Heuristic: td.MinFill})
	if err != nil {
		fmt.Printf("could not decompose: %v", err)
		return
	}
	fmt.Println("width", d.Width())
	if err := td.WriteTD(os.Stdout, d); err != nil {
		fmt.Printf("could not write decomposition: %v", err)
	}
	// Output:
	// width 2
	// s td 2 3 4
	// b 1 1 2 4
	// b 2 2 3 4
	// 2 1
}

func ExampleFromFormula() {
	f, err := cnf.Parse(strings.NewReader("p cnf 4 2\n1 2 0\n3 4 0\n"))
	if err != nil {
		fmt.Printf("could not parse formula: %v", err)
		return
	}
	g, err := td.FromFormula(f)
	if err != nil {
		fmt.Printf("could not build graph: %v", err)
		return
	}
	d, err := td.Decompose(g, td.Options{Heuristic: td.MinDegree})
	if err != nil {
		fmt.Printf("could not decompose: %v", err)
		return
	}
	fmt.Println(d.Width(), d.Bags, d.Roots())
	// Output: 1 [[0 1] [2 3]] [0 1]
}
