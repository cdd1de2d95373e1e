package back

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
	"github.com/dustin-ward/dustinw-qc/compiler/set"
)

type (
	// Compiler lowers a program into the native gate set
	// and runs the peephole passes to a fixpoint.
	// The zero value is ready to use.
	Compiler struct {
		// MaxRounds bounds the fixpoint loop. Zero means DefaultMaxRounds.
		MaxRounds int

		// NativeTolerance makes RX angles within the tolerance of a native angle count as native.
		// Zero means exact float64 equality.
		NativeTolerance float64

		// StrictConvergence stops the loop when a round leaves the program unchanged.
		// By default a round that keeps the instruction count is taken as converged,
		// even if it reordered instructions.
		StrictConvergence bool
	}

	Option func(c *Compiler)

	Pass struct {
		Name string
		Run  func(p ir.Program) (ir.Program, error)
	}

	PassError struct {
		Pass  string
		Round int // 0 for native translation
		Err   error
	}

	// InstrError is an instruction no pass knows, nil being the only one possible.
	InstrError struct {
		Index int
		Instr ir.Instr
		At    loc.PC // pass which found it
	}

	Result struct {
		Program ir.Program

		Input  int // instructions before native translation
		Native int // instructions after native translation

		Rounds    []RoundStat
		Converged bool
	}

	RoundStat struct {
		Round  int
		Before int
		After  []int // instruction count after each of Passes
	}
)

const DefaultMaxRounds = 100

const NativeTranslationPass = "native_translation"

// Passes is the ordered list of passes making up one round.
// Reorder must go first so the others see what it grouped together.
var Passes = [...]Pass{
	{Name: "reorder", Run: Reorder},
	{Name: "rotation_merge", Run: RotationMerge},
	{Name: "cz_cancel", Run: CZCancel},
	{Name: "deadcode", Run: DeadCode},
}

func New(opts ...Option) *Compiler {
	c := &Compiler{
		MaxRounds: DefaultMaxRounds,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

func WithMaxRounds(n int) Option {
	return func(c *Compiler) { c.MaxRounds = n }
}

func WithNativeTolerance(tol float64) Option {
	return func(c *Compiler) { c.NativeTolerance = tol }
}

func WithStrictConvergence(strict bool) Option {
	return func(c *Compiler) { c.StrictConvergence = strict }
}

// CompileProgram returns the optimized program.
// p is not modified.
func (c *Compiler) CompileProgram(ctx context.Context, p ir.Program) (ir.Program, error) {
	res, err := c.Optimize(ctx, p)
	if err != nil {
		return nil, err
	}

	return res.Program, nil
}

func (c *Compiler) Optimize(ctx context.Context, p ir.Program) (res *Result, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: optimize", "instrs", len(p))
	defer tr.Finish("err", &err)

	maxRounds := c.MaxRounds
	if maxRounds == 0 {
		maxRounds = DefaultMaxRounds
	}

	if maxRounds < 1 {
		return nil, errors.New("max rounds must be at least 1: %d", maxRounds)
	}

	if c.NativeTolerance < 0 {
		return nil, errors.New("negative native tolerance: %v", c.NativeTolerance)
	}

	native := Pass{
		Name: NativeTranslationPass,
		Run: func(p ir.Program) (ir.Program, error) {
			return nativeTranslation(p, c.NativeTolerance)
		},
	}

	res = &Result{Input: len(p)}

	p, err = runPass(ctx, 0, native, p)
	if err != nil {
		return nil, err
	}

	res.Native = len(p)

	for round := 1; round <= maxRounds; round++ {
		start := p

		var st RoundStat

		p, st, err = c.round(ctx, round, p)
		if err != nil {
			return nil, err
		}

		res.Rounds = append(res.Rounds, st)

		if c.converged(start, p) {
			res.Converged = true
			break
		}
	}

	res.Program = p

	tr.Printw("optimized", "input", res.Input, "native", res.Native, "output", len(p), "rounds", len(res.Rounds), "converged", res.Converged, "qubits", usedQubits(p))

	return res, nil
}

func (c *Compiler) round(ctx context.Context, round int, p ir.Program) (_ ir.Program, st RoundStat, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "round", "round", round, "instrs", len(p))
	defer tr.Finish("err", &err)

	st = RoundStat{
		Round:  round,
		Before: len(p),
		After:  make([]int, 0, len(Passes)),
	}

	for _, ps := range Passes {
		p, err = runPass(ctx, round, ps, p)
		if err != nil {
			return nil, st, err
		}

		st.After = append(st.After, len(p))
	}

	if tr.If("dump_round") {
		for i, x := range p {
			tr.Printw("after round", "round", round, "i", i, "x", x)
		}
	}

	return p, st, nil
}

func (c *Compiler) converged(start, end ir.Program) bool {
	if c.StrictConvergence {
		return start.Equal(end)
	}

	return len(start) == len(end)
}

func runPass(ctx context.Context, round int, ps Pass, p ir.Program) (ir.Program, error) {
	tr := tlog.SpanFromContext(ctx)

	q, err := ps.Run(p)
	if err != nil {
		if ie, ok := err.(*InstrError); ok {
			tr.Printw("pass failed", "pass", ps.Name, "round", round, "index", ie.Index, "err", err, "at", ie.At)
		}

		return nil, &PassError{Pass: ps.Name, Round: round, Err: err}
	}

	if tr.If("dump_pass") {
		tr.Printw("pass", "pass", ps.Name, "round", round, "before", len(p), "after", len(q))

		for i, x := range q {
			tr.Printw("code", "pass", ps.Name, "i", i, "x", x)
		}
	}

	return q, nil
}

func (e *PassError) Error() string {
	if e.Round == 0 {
		return fmt.Sprintf("pass %v: %v", e.Pass, e.Err)
	}

	return fmt.Sprintf("pass %v (round %d): %v", e.Pass, e.Round, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

func (e *InstrError) Error() string {
	return fmt.Sprintf("unsupported instruction at %d: %T", e.Index, e.Instr)
}

// unsupported is the only failure a pass has: p holds something other than RX, RZ, CZ or Measure.
// The error records the pass function which found it.
func unsupported(i int, x ir.Instr) error {
	return &InstrError{Index: i, Instr: x, At: loc.Caller(1)}
}

func check(i int, x ir.Instr) error {
	switch x.(type) {
	case ir.RX, ir.RZ, ir.CZ, ir.Measure:
		return nil
	default:
		return &InstrError{Index: i, Instr: x, At: loc.Caller(1)}
	}
}

func usedQubits(p ir.Program) (s set.Bits[ir.Qubit]) {
	for _, x := range p {
		s.SetAll(ir.Qubits(x)...)
	}

	return s
}
