package parse

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
)

type parser struct {
	toks []Token
	i    int
}

func ParseFile(ctx context.Context, name string) (ir.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, data)
}

// Parse reads a program, one instruction per statement:
//
//	RX(0.45) 0
//	RZ(-1) 0; CZ 0 1
//	MEASURE 0
func Parse(ctx context.Context, text []byte) (p ir.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "size", len(text))
	defer tr.Finish("err", &err)

	toks, err := Lex(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "lex")
	}

	p, err = ParseTokens(ctx, toks)
	if err != nil {
		return nil, err
	}

	tr.Printw("parsed", "tokens", len(toks), "instrs", len(p))

	return p, nil
}

func ParseTokens(ctx context.Context, toks []Token) (p ir.Program, err error) {
	ps := &parser{toks: toks}

	for ps.i < len(ps.toks) {
		x, err := ps.stmt()
		if err != nil {
			return nil, err
		}

		p = append(p, x)
	}

	return p, nil
}

func (ps *parser) stmt() (x ir.Instr, err error) {
	kw := ps.toks[ps.i]
	ps.i++

	switch kw.Type {
	case RX, RZ:
		x, err = ps.rotation(kw)
	case CZ:
		var a, b ir.Qubit

		a, err = ps.qubit(kw)
		if err == nil {
			b, err = ps.qubit(kw)
		}

		x = ir.CZ{A: a, B: b}
	case Measure:
		var q ir.Qubit

		q, err = ps.qubit(kw)

		x = ir.Measure{Qubit: q}
	default:
		return nil, errorf(kw.Line, kw.Pos, "unexpected %v, expected instruction (RX, RZ, CZ, MEASURE)", kw.Type)
	}

	if err != nil {
		return nil, err
	}

	t, ok := ps.next()
	if ok && t.Type != EOL {
		return nil, errorf(t.Line, t.Pos, "unexpected %v, expected end of line", t.Type)
	}

	return x, nil
}

// rotation parses the rest of `RX ( [-] number ) qubit`.
func (ps *parser) rotation(kw Token) (x ir.Instr, err error) {
	err = ps.expect(kw, LParen)
	if err != nil {
		return nil, err
	}

	t, ok := ps.next()
	if !ok || t.Type == EOL {
		return nil, errorf(kw.Line, kw.Pos, "missing parameter for %v", kw.Type)
	}

	neg := t.Type == Negative
	if neg {
		t, ok = ps.next()
		if !ok || t.Type == EOL {
			return nil, errorf(kw.Line, kw.Pos, "missing parameter for %v", kw.Type)
		}
	}

	var a float64

	switch t.Type {
	case Float:
		a = t.Float
	case Integer:
		a = float64(t.Int)
	default:
		return nil, errorf(t.Line, t.Pos, "unexpected %v, expected angle for %v", t.Type, kw.Type)
	}

	if neg {
		a = -a
	}

	err = ps.expect(kw, RParen)
	if err != nil {
		return nil, err
	}

	q, err := ps.qubit(kw)
	if err != nil {
		return nil, err
	}

	if kw.Type == RX {
		return ir.RX{Angle: a, Qubit: q}, nil
	}

	return ir.RZ{Angle: a, Qubit: q}, nil
}

func (ps *parser) qubit(kw Token) (ir.Qubit, error) {
	t, ok := ps.next()
	if !ok || t.Type == EOL {
		return 0, errorf(kw.Line, kw.Pos, "missing qubit index after %v", kw.Type)
	}

	if t.Type != Integer {
		return 0, errorf(t.Line, t.Pos, "unexpected %v, expected qubit index", t.Type)
	}

	return ir.Qubit(t.Int), nil
}

func (ps *parser) expect(kw Token, tp Type) error {
	t, ok := ps.next()
	if !ok || t.Type == EOL {
		return errorf(kw.Line, kw.Pos, "missing %v after %v", tp, kw.Type)
	}

	if t.Type != tp {
		return errorf(t.Line, t.Pos, "unexpected %v, expected %v", t.Type, tp)
	}

	return nil
}

// next returns the next token of the statement. EOL is consumed and returned too.
func (ps *parser) next() (Token, bool) {
	if ps.i == len(ps.toks) {
		return Token{}, false
	}

	t := ps.toks[ps.i]
	ps.i++

	return t, true
}
