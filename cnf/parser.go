package cnf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoHeader is returned when clauses appear before any "p cnf" line, or when there is no such line at all.
	ErrNoHeader = errors.New("missing 'p cnf' header")
	// ErrLiteralRange is returned when a literal references a variable that was not declared in the header.
	ErrLiteralRange = errors.New("literal out of declared range")
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// The int can be negated.
// All spaces before the int value are ignored.
// Returns io.EOF only when no int was left to read.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, errors.Wrap(err, "could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		if *b, err = r.ReadByte(); err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	nbDigits := 0
	for err == nil && !isSpace(*b) {
		if *b < '0' || *b > '9' {
			return 0, errors.Newf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		nbDigits++
		*b, err = r.ReadByte()
	}
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "cannot read int")
	}
	if nbDigits == 0 {
		return 0, errors.New("cannot read int: sign without digits")
	}
	if err == io.EOF {
		*b = '\n' // the int was the last token; let the caller see a separator
	}
	return res * neg, nil
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, errors.Newf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil || nbVars < 0 {
		return 0, 0, errors.Newf("nbvars not a natural : %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil || nbClauses < 0 {
		return 0, 0, errors.Newf("nbClauses not a natural : %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

func skipLine(r *bufio.Reader) error {
	b, err := r.ReadByte()
	for err == nil && b != '\n' {
		b, err = r.ReadByte()
	}
	return err
}

// Parse parses a DIMACS CNF stream and returns the corresponding Formula.
// Comment lines are ignored, and a '%' line ends the formula, as in SATLIB benchmarks.
// Several clauses can share a line, and a clause can span several lines.
func Parse(f io.Reader) (*Formula, error) {
	r := bufio.NewReader(f)
	var (
		pb        Formula
		header    bool
		nbClauses int
	)
	b, err := r.ReadByte()
	for err == nil {
		switch {
		case isSpace(b):
		case b == 'c': // Ignore comment
			if err = skipLine(r); err != nil && err != io.EOF {
				return nil, errors.Wrap(err, "cannot read comment")
			}
		case b == '%': // End of formula
			return finish(&pb, header)
		case b == 'p': // Parse header
			if header {
				return nil, errors.New("duplicate 'p cnf' header")
			}
			if pb.NbVars, nbClauses, err = parseHeader(r); err != nil {
				return nil, errors.Wrap(err, "cannot parse CNF header")
			}
			header = true
			pb.Clauses = make([][]Lit, 0, nbClauses)
		default:
			if !header {
				return nil, ErrNoHeader
			}
			lits := make([]Lit, 0, 3) // Make room for some lits to improve performance
			for {
				val, err := readInt(&b, r)
				if err == io.EOF {
					if len(lits) != 0 { // This is not a trailing space at the end...
						return nil, errors.New("unfinished clause while EOF found")
					}
					break // When there are only several useless spaces at the end of the file, that is ok
				}
				if err != nil {
					return nil, errors.Wrapf(err, "cannot parse clause #%d", len(pb.Clauses)+1)
				}
				if val == 0 {
					pb.Clauses = append(pb.Clauses, lits)
					break
				}
				if val > pb.NbVars || -val > pb.NbVars {
					return nil, errors.Wrapf(ErrLiteralRange, "invalid literal %d for problem with %d vars only", val, pb.NbVars)
				}
				lits = append(lits, IntToLit(val))
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, errors.Wrap(err, "cannot read CNF")
	}
	return finish(&pb, header)
}

func finish(pb *Formula, header bool) (*Formula, error) {
	if !header {
		return nil, ErrNoHeader
	}
	return pb, nil
}
