package back

import "github.com/dustin-ward/dustinw-qc/compiler/ir"

// DeadCode removes zero angle rotations. Measure is always kept.
func DeadCode(p ir.Program) (ir.Program, error) {
	r := make(ir.Program, 0, len(p))

	for i, x := range p {
		switch x := x.(type) {
		case ir.RX:
			if x.Angle == 0 {
				continue
			}
		case ir.RZ:
			if x.Angle == 0 {
				continue
			}
		case ir.CZ, ir.Measure:
		default:
			return nil, unsupported(i, x)
		}

		r = append(r, x)
	}

	return r, nil
}
