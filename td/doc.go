/*
Package td computes tree decompositions of the primal graph of a CNF formula.

The primal graph has one vertex per variable, and an edge between two variables
whenever they appear together in a clause, whatever their polarity.
A tree decomposition is a forest of bags of vertices such that every vertex and every edge
is in some bag, and the bags containing a given vertex form a connected subtree.
Its width is the size of its largest bag, minus one.

Building the graph

The graph can be built from a list of DIMACS-style clauses:

    clauses := [][]int{
        []int{1, -2},
        []int{2, 3},
    }
    g, err := td.FromClauses(3, clauses)

or from a parsed formula, with td.FromFormula, or read from a PACE .gr file with td.ReadPrimal.

Decomposing

    d, err := td.Decompose(g, td.Options{Heuristic: td.MinFill})

eliminates every vertex in turn, always picking the one that minimizes the heuristic:
MinFill favors vertices whose neighbors are already connected, MinDegree vertices with few neighbors.
Each eliminated vertex produces a bag made of itself and its neighbors, which then become a clique.
The bags are finally linked into a forest and redundant bags are merged.
The whole process is deterministic: ties always go to the lowest vertex.

The result can be checked against the graph with d.Validate(g), written in the PACE format with
td.WriteTD or drawn with td.RenderDOT.
*/
package td
