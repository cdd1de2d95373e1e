package ir

import (
	"math"

	"tlog.app/go/tlog/tlwire"
)

type (
	Qubit uint

	// Instr is one of RX, RZ, CZ or Measure.
	Instr interface {
		instr()
	}

	Program []Instr

	RX struct {
		Angle float64
		Qubit Qubit
	}

	RZ struct {
		Angle float64
		Qubit Qubit
	}

	// CZ acts the same as CZ{B, A}, but they are not equal values.
	// Use Cancellable to compare qubit pairs.
	CZ struct {
		A, B Qubit
	}

	Measure struct {
		Qubit Qubit
	}
)

func (RX) instr()      {}
func (RZ) instr()      {}
func (CZ) instr()      {}
func (Measure) instr() {}

// Cancellable reports whether x and y are both CZ on the same unordered qubit pair.
func Cancellable(x, y Instr) bool {
	a, ok := x.(CZ)
	if !ok {
		return false
	}

	b, ok := y.(CZ)
	if !ok {
		return false
	}

	return a.SamePair(b)
}

func (x CZ) SamePair(y CZ) bool {
	return x.A == y.A && x.B == y.B || x.A == y.B && x.B == y.A
}

// Qubits returns the qubits x acts on. Nil for unknown instructions.
func Qubits(x Instr) []Qubit {
	switch x := x.(type) {
	case RX:
		return []Qubit{x.Qubit}
	case RZ:
		return []Qubit{x.Qubit}
	case CZ:
		return []Qubit{x.A, x.B}
	case Measure:
		return []Qubit{x.Qubit}
	}

	return nil
}

func Touches(x Instr, q Qubit) bool {
	for _, xq := range Qubits(x) {
		if xq == q {
			return true
		}
	}

	return false
}

func (p Program) Clone() Program {
	if p == nil {
		return nil
	}

	return append(Program{}, p...)
}

// Equal compares programs instruction by instruction.
// Angles are compared bitwise, so -0 != +0.
func (p Program) Equal(q Program) bool {
	if len(p) != len(q) {
		return false
	}

	for i := range p {
		if !Equal(p[i], q[i]) {
			return false
		}
	}

	return true
}

func Equal(x, y Instr) bool {
	switch x := x.(type) {
	case RX:
		y, ok := y.(RX)
		return ok && x.Qubit == y.Qubit && sameBits(x.Angle, y.Angle)
	case RZ:
		y, ok := y.(RZ)
		return ok && x.Qubit == y.Qubit && sameBits(x.Angle, y.Angle)
	case CZ, Measure:
		return x == y
	}

	return false
}

func sameBits(x, y float64) bool {
	return math.Float64bits(x) == math.Float64bits(y)
}

func (x RX) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "RX(%v) %d", x.Angle, x.Qubit)
}

func (x RZ) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "RZ(%v) %d", x.Angle, x.Qubit)
}

func (x CZ) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "CZ %d %d", x.A, x.B)
}

func (x Measure) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "MEASURE %d", x.Qubit)
}
