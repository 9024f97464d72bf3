package cnf

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// A Formula is a list of clauses & a nb of vars.
type Formula struct {
	NbVars  int     // Total nb of vars, as declared in the header
	Clauses [][]Lit // List of clauses, in input order
}

// ParseSlice parse a slice of slice of lits and returns the equivalent formula.
// Each literal must reference a variable in [1, nbVars].
func ParseSlice(nbVars int, cnf [][]int) (*Formula, error) {
	if nbVars < 0 {
		return nil, errors.Newf("negative number of vars %d", nbVars)
	}
	f := &Formula{NbVars: nbVars, Clauses: make([][]Lit, len(cnf))}
	for i, line := range cnf {
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 || val > nbVars || -val > nbVars {
				return nil, errors.Wrapf(ErrLiteralRange, "invalid literal %d in clause #%d for problem with %d vars only", val, i+1, nbVars)
			}
			lits[j] = IntToLit(val)
		}
		f.Clauses[i] = lits
	}
	return f, nil
}

// Ints returns the clauses as DIMACS-style signed integers, without the terminating 0.
func (f *Formula) Ints() [][]int {
	res := make([][]int, len(f.Clauses))
	for i, clause := range f.Clauses {
		res[i] = make([]int, len(clause))
		for j, lit := range clause {
			res[i][j] = lit.Int()
		}
	}
	return res
}

// CNF returns a DIMACS CNF representation of the formula.
func (f *Formula) CNF() string {
	var sb strings.Builder
	sb.WriteString("p cnf ")
	sb.WriteString(strconv.Itoa(f.NbVars))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(len(f.Clauses)))
	sb.WriteByte('\n')
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			sb.WriteString(strconv.Itoa(lit.Int()))
			sb.WriteByte(' ')
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}
