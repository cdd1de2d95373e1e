package back

import (
	"cmp"
	"slices"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
)

type (
	keyed struct {
		x   ir.Instr
		key int
	}

	pair [2]ir.Qubit
)

// Reorder groups runs of RZ and CZ sharing an anchor qubit
// so that RotationMerge and CZCancel find their operands next to each other.
//
// A run starts at an RZ or CZ and extends while instructions are RZ or CZ touching the anchor:
// the RZ qubit, or the CZ operand that gives the longer run.
// In a run all RZ go first in their original order.
// CZ follow, each moved up next to the first CZ on the same qubit pair,
// otherwise keeping their original order.
//
// All of them are diagonal gates, so they commute.
func Reorder(p ir.Program) (ir.Program, error) {
	r := make(ir.Program, 0, len(p))

	for i := 0; i < len(p); {
		if err := check(i, p[i]); err != nil {
			return nil, err
		}

		end := runEnd(p, i)

		if end-i == 1 {
			r = append(r, p[i])
			i++

			continue
		}

		r = sortRun(r, p[i:end])
		i = end
	}

	return r, nil
}

func runEnd(p ir.Program, st int) int {
	switch x := p[st].(type) {
	case ir.RZ:
		return extendRun(p, st, x.Qubit)
	case ir.CZ:
		a := extendRun(p, st, x.A)
		b := extendRun(p, st, x.B)

		return max(a, b)
	default:
		return st + 1
	}
}

func extendRun(p ir.Program, st int, anchor ir.Qubit) (i int) {
	for i = st + 1; i < len(p); i++ {
		switch p[i].(type) {
		case ir.RZ, ir.CZ:
		default:
			return i
		}

		if !ir.Touches(p[i], anchor) {
			return i
		}
	}

	return i
}

func sortRun(r, run ir.Program) ir.Program {
	l := make([]keyed, len(run))
	first := map[pair]int{}

	for i, x := range run {
		l[i] = keyed{x: x, key: -1}

		cz, ok := x.(ir.CZ)
		if !ok {
			continue
		}

		k := pairOf(cz)

		j, ok := first[k]
		if !ok {
			j = i
			first[k] = i
		}

		l[i].key = j
	}

	slices.SortStableFunc(l, func(a, b keyed) int {
		return cmp.Compare(a.key, b.key)
	})

	for _, k := range l {
		r = append(r, k.x)
	}

	return r
}

func pairOf(x ir.CZ) pair {
	if x.A > x.B {
		return pair{x.B, x.A}
	}

	return pair{x.A, x.B}
}
