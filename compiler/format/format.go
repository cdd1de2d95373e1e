package format

import (
	"context"
	"math"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
	"github.com/dustin-ward/dustinw-qc/compiler/set"
)

type (
	Stats struct {
		RX, RZ, CZ, Measure int

		Qubits set.Bits[ir.Qubit]
	}
)

// Format appends the text form of a Program or a single instruction to b.
// Output parses back to the same program.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	switch x := x.(type) {
	case ir.Program:
		return formatProgram(b, x), nil
	case ir.Instr:
		return formatInstr(b, x), nil
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(b []byte, p ir.Program) []byte {
	for _, x := range p {
		b = formatInstr(b, x)
		b = append(b, '\n')
	}

	return b
}

// formatInstr panics on anything but the four instructions:
// the optimizer never produces anything else.
func formatInstr(b []byte, x ir.Instr) []byte {
	switch x := x.(type) {
	case ir.RX:
		b = appendAngle(append(b, "RX("...), x.Angle)
		return hfmt.Appendf(b, ") %d", x.Qubit)
	case ir.RZ:
		b = appendAngle(append(b, "RZ("...), x.Angle)
		return hfmt.Appendf(b, ") %d", x.Qubit)
	case ir.CZ:
		return hfmt.Appendf(b, "CZ %d %d", x.A, x.B)
	case ir.Measure:
		return hfmt.Appendf(b, "MEASURE %d", x.Qubit)
	default:
		panic(x)
	}
}

// appendAngle writes infinities as Inf and -Inf, the way the lexer reads them.
func appendAngle(b []byte, a float64) []byte {
	switch {
	case math.IsInf(a, 1):
		return append(b, "Inf"...)
	case math.IsInf(a, -1):
		return append(b, "-Inf"...)
	default:
		return hfmt.Appendf(b, "%v", a)
	}
}

func String(p ir.Program) string {
	return string(formatProgram(nil, p))
}

func ProgramStats(p ir.Program) (s Stats) {
	for _, x := range p {
		switch x.(type) {
		case ir.RX:
			s.RX++
		case ir.RZ:
			s.RZ++
		case ir.CZ:
			s.CZ++
		case ir.Measure:
			s.Measure++
		}

		s.Qubits.SetAll(ir.Qubits(x)...)
	}

	return s
}

func (s Stats) Total() int {
	return s.RX + s.RZ + s.CZ + s.Measure
}
