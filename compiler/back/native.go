package back

import (
	"math"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
)

var nativeAngles = [...]float64{0, math.Pi, -math.Pi, math.Pi / 2, -math.Pi / 2}

// IsNative reports whether x needs no decomposition.
// Only RX is restricted, to 0, ±π and ±π/2 compared exactly.
func IsNative(x ir.Instr) bool {
	rx, ok := x.(ir.RX)

	return !ok || isNativeAngle(rx.Angle, 0)
}

func isNativeAngle(a, tol float64) bool {
	for _, n := range nativeAngles {
		if a == n {
			return true
		}

		if tol > 0 && math.Abs(a-n) <= tol {
			return true
		}
	}

	return false
}

// NativeTranslation replaces each non-native RX(θ) q with
//
//	RZ(π/2) q; RX(π/2) q; RZ(θ) q; RX(-π/2) q; RZ(-π/2) q
//
// which is the same rotation up to global phase.
// An angle one ulp away from π is not native.
func NativeTranslation(p ir.Program) (ir.Program, error) {
	return nativeTranslation(p, 0)
}

func nativeTranslation(p ir.Program, tol float64) (ir.Program, error) {
	r := make(ir.Program, 0, len(p))

	for i, x := range p {
		switch x := x.(type) {
		case ir.RX:
			if isNativeAngle(x.Angle, tol) {
				r = append(r, x)
				continue
			}

			q := x.Qubit

			r = append(r,
				ir.RZ{Angle: math.Pi / 2, Qubit: q},
				ir.RX{Angle: math.Pi / 2, Qubit: q},
				ir.RZ{Angle: x.Angle, Qubit: q},
				ir.RX{Angle: -math.Pi / 2, Qubit: q},
				ir.RZ{Angle: -math.Pi / 2, Qubit: q},
			)
		case ir.RZ, ir.CZ, ir.Measure:
			r = append(r, x)
		default:
			return nil, unsupported(i, x)
		}
	}

	return r, nil
}
