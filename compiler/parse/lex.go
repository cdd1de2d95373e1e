package parse

import (
	"context"
	"math"
	"strconv"

	"tlog.app/go/tlog"
)

// floatWords are angles which can't be written with digits.
// Rotation merge may produce them.
var floatWords = map[string]float64{
	"Inf": math.Inf(1),
	"NaN": math.NaN(),
}

type lexer struct {
	b []byte

	toks []Token

	line int
	base int // offset of the current line
}

// Lex splits text into tokens.
// Each non-empty line ends with an EOL token, either an explicit ';' or a synthesized one.
// '#' starts a comment running to the end of the line.
// Inf and NaN are read as Float tokens.
func Lex(ctx context.Context, text []byte) (toks []Token, err error) {
	tr := tlog.SpanFromContext(ctx)

	l := &lexer{
		b:    text,
		line: 1,
	}

	err = l.lex()
	if err != nil {
		return nil, err
	}

	if tr.If("dump_tokens") {
		for i, t := range l.toks {
			tr.Printw("token", "i", i, "tok", t.String())
		}
	}

	return l.toks, nil
}

func (l *lexer) lex() error {
	b := l.b

	for i := 0; i < len(b); {
		i = SpaceTab.Skip(b, i)
		if i == len(b) {
			break
		}

		st := i
		c := b[i]

		switch {
		case c == '\n':
			l.endLine(i)

			i++
			l.line++
			l.base = i

			continue
		case c == '#':
			for i < len(b) && b[i] != '\n' {
				i++
			}

			continue
		case c == '(':
			l.add(LParen, st, 1)
			i++
		case c == ')':
			l.add(RParen, st, 1)
			i++
		case c == '-':
			l.add(Negative, st, 1)
			i++
		case c == ';':
			l.add(EOL, st, 1)
			i++
		case isLetter(c):
			for i < len(b) && isLetter(b[i]) {
				i++
			}

			w := string(b[st:i])

			if f, ok := floatWords[w]; ok {
				l.toks = append(l.toks, Token{Type: Float, Line: l.line, Pos: l.pos(st), Len: i - st, Float: f})
				continue
			}

			tp, ok := keywords[w]
			if !ok {
				return errorf(l.line, l.pos(st), "undefined token %q", b[st:i])
			}

			l.add(tp, st, i-st)
		case isDigit(c):
			var err error

			i, err = l.number(st)
			if err != nil {
				return err
			}
		default:
			return errorf(l.line, l.pos(st), "undefined token %q", b[st:st+1])
		}
	}

	l.endLine(len(b))

	return nil
}

func (l *lexer) number(st int) (i int, err error) {
	b := l.b
	i = skipDigits(b, st)

	float := false

	if i < len(b) && b[i] == '.' {
		float = true
		i = skipDigits(b, i+1)
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1

		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}

		if e := skipDigits(b, j); e != j {
			float = true
			i = e
		}
	}

	s := string(b[st:i])

	if float {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return st, errorf(l.line, l.pos(st), "bad float %q", s)
		}

		l.toks = append(l.toks, Token{Type: Float, Line: l.line, Pos: l.pos(st), Len: i - st, Float: f})

		return i, nil
	}

	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return st, errorf(l.line, l.pos(st), "bad integer %q", s)
	}

	l.toks = append(l.toks, Token{Type: Integer, Line: l.line, Pos: l.pos(st), Len: i - st, Int: uint32(u)})

	return i, nil
}

func (l *lexer) add(tp Type, st, n int) {
	l.toks = append(l.toks, Token{Type: tp, Line: l.line, Pos: l.pos(st), Len: n})
}

// endLine adds EOL at offset i unless the last token already is one.
func (l *lexer) endLine(i int) {
	if len(l.toks) == 0 || l.toks[len(l.toks)-1].Type == EOL {
		return
	}

	l.add(EOL, i, 0)
}

func (l *lexer) pos(i int) int {
	return i - l.base + 1
}

func skipDigits(b []byte, i int) int {
	for i < len(b) && isDigit(b[i]) {
		i++
	}

	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
