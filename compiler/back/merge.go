package back

import "github.com/dustin-ward/dustinw-qc/compiler/ir"

// RotationMerge adds up the angles of two adjacent rotations around the same axis on the same qubit.
// Each instruction takes part in one merge at most, so RZ RZ RZ becomes RZ RZ.
func RotationMerge(p ir.Program) (ir.Program, error) {
	r := make(ir.Program, 0, len(p))

	for i := 0; i < len(p); i++ {
		x := p[i]

		if err := check(i, x); err != nil {
			return nil, err
		}

		if i+1 < len(p) {
			if m, ok := merge(x, p[i+1]); ok {
				r = append(r, m)
				i++

				continue
			}
		}

		r = append(r, x)
	}

	return r, nil
}

func merge(x, y ir.Instr) (ir.Instr, bool) {
	switch x := x.(type) {
	case ir.RX:
		if y, ok := y.(ir.RX); ok && x.Qubit == y.Qubit {
			return ir.RX{Angle: x.Angle + y.Angle, Qubit: x.Qubit}, true
		}
	case ir.RZ:
		if y, ok := y.(ir.RZ); ok && x.Qubit == y.Qubit {
			return ir.RZ{Angle: x.Angle + y.Angle, Qubit: x.Qubit}, true
		}
	}

	return nil, false
}
