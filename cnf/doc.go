/*
Package cnf reads and writes propositional formulas in conjunctive normal form.

A formula can be described in two ways:

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the following content:

    c two disjoint binary clauses
    p cnf 4 2
    1 2 0
    -3 4 0

the programmer can create the Formula by doing:

    f, err := cnf.Parse(r)

2. create the equivalent list of list of literals:

    f, err := cnf.ParseSlice(4, [][]int{{1, 2}, {-3, 4}})

Variables are 1-indexed in DIMACS and 0-indexed once encoded as a Var: the DIMACS variable 3 is
the Var 2. A Lit packs a Var and its sign, so that both polarities of a variable map to the same Var.
*/
package cnf
