package parse

import "fmt"

type (
	Type int

	Token struct {
		Type Type
		Line int // 1-based
		Pos  int // 1-based byte offset in the line
		Len  int

		Float float64 // Float
		Int   uint32  // Integer
	}

	// Error is a lexing or parsing error at a position in the source text.
	Error struct {
		Line int
		Pos  int
		Msg  string
	}
)

const (
	Undef Type = iota

	Float
	Integer

	LParen
	RParen
	Negative
	EOL

	RX
	RZ
	CZ
	Measure
)

var typeNames = [...]string{
	Undef:    "undef",
	Float:    "float",
	Integer:  "integer",
	LParen:   "'('",
	RParen:   "')'",
	Negative: "'-'",
	EOL:      "end of line",
	RX:       "RX",
	RZ:       "RZ",
	CZ:       "CZ",
	Measure:  "MEASURE",
}

var keywords = map[string]Type{
	"RX":      RX,
	"RZ":      RZ,
	"CZ":      CZ,
	"MEASURE": Measure,
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

func (t Token) String() string {
	switch t.Type {
	case Float:
		return fmt.Sprintf("%d:%d %v(%v)", t.Line, t.Pos, t.Type, t.Float)
	case Integer:
		return fmt.Sprintf("%d:%d %v(%v)", t.Line, t.Pos, t.Type, t.Int)
	default:
		return fmt.Sprintf("%d:%d %v", t.Line, t.Pos, t.Type)
	}
}

func errorf(line, pos int, format string, args ...any) *Error {
	return &Error{
		Line: line,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Pos, e.Msg)
}
