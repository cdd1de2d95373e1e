package back

import "github.com/dustin-ward/dustinw-qc/compiler/ir"

// CZCancel drops adjacent pairs of CZ on the same qubits.
// Three in a row leave one.
func CZCancel(p ir.Program) (ir.Program, error) {
	r := make(ir.Program, 0, len(p))

	for i := 0; i < len(p); i++ {
		if err := check(i, p[i]); err != nil {
			return nil, err
		}

		if i+1 < len(p) && ir.Cancellable(p[i], p[i+1]) {
			i++
			continue
		}

		r = append(r, p[i])
	}

	return r, nil
}
