package back

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustin-ward/dustinw-qc/compiler/ir"
)

func TestSmoke(t *testing.T) {
	prog := ir.Program{
		RX{Angle: 0.45, Qubit: 0},
		Measure{0},
	}

	ctx := context.Background()

	var c Compiler

	obj, err := c.CompileProgram(ctx, prog)
	if err != nil {
		t.Errorf("compile program: %v", err)
	}

	t.Logf("result: %v", obj)
}

func TestCompileSample(t *testing.T) {
	h := pi / 2

	p := ir.Program{
		RX{Angle: 0.45, Qubit: 0},
		RZ{Angle: -1.0, Qubit: 0},
		RZ{Angle: 1.0, Qubit: 1},
		RX{Angle: 0.45, Qubit: 1},
		CZ{0, 1},
		Measure{0},
		Measure{1},
	}

	res, err := New().Optimize(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, ir.Program{
		RZ{Angle: h, Qubit: 0},
		RX{Angle: h, Qubit: 0},
		RZ{Angle: 0.45, Qubit: 0},
		RX{Angle: -h, Qubit: 0},
		RZ{Angle: -h + -1, Qubit: 0},
		RZ{Angle: 1 + h, Qubit: 1},
		RX{Angle: h, Qubit: 1},
		RZ{Angle: 0.45, Qubit: 1},
		RX{Angle: -h, Qubit: 1},
		RZ{Angle: -h, Qubit: 1},
		CZ{0, 1},
		Measure{0},
		Measure{1},
	}, res.Program)

	assert.Equal(t, 7, res.Input)
	assert.Equal(t, 15, res.Native)
	assert.True(t, res.Converged)
	require.Len(t, res.Rounds, 2)
	assert.Equal(t, RoundStat{Round: 1, Before: 15, After: []int{15, 13, 13, 13}}, res.Rounds[0])
	assert.Equal(t, RoundStat{Round: 2, Before: 13, After: []int{13, 13, 13, 13}}, res.Rounds[1])

	for i, x := range res.Program {
		assert.True(t, IsNative(x), "instr %d: %v", i, x)

		if i+1 < len(res.Program) {
			assert.False(t, ir.Cancellable(x, res.Program[i+1]), "instr %d", i)
		}
	}
}

func TestCompileDeterministic(t *testing.T) {
	p := ir.Program{
		RX{Angle: 0.3, Qubit: 2},
		CZ{2, 1},
		RZ{Angle: 0.7, Qubit: 2},
		CZ{1, 2},
		RX{Angle: 0.3, Qubit: 2},
		Measure{2},
	}

	c := New()

	a, err := c.CompileProgram(context.Background(), p)
	require.NoError(t, err)

	b, err := c.CompileProgram(context.Background(), p)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestCompileMaxRounds(t *testing.T) {
	p := ir.Program{
		RZ{Angle: 0.1, Qubit: 0},
		RZ{Angle: 0.1, Qubit: 0},
		RZ{Angle: 0.1, Qubit: 0},
	}

	res, err := New(WithMaxRounds(1)).Optimize(context.Background(), p)
	require.NoError(t, err)

	assert.Len(t, res.Rounds, 1)
	assert.False(t, res.Converged)
	assert.Len(t, res.Program, 2)

	res, err = New().Optimize(context.Background(), p)
	require.NoError(t, err)

	a := 0.1

	assert.Len(t, res.Rounds, 3)
	assert.True(t, res.Converged)
	assert.Equal(t, ir.Program{RZ{Angle: a + a + a, Qubit: 0}}, res.Program)
}

func TestCompileRoundBound(t *testing.T) {
	var p ir.Program

	for i := 0; i < 64; i++ {
		p = append(p, RZ{Angle: 1, Qubit: 0})
	}

	for n := 1; n <= 8; n++ {
		res, err := New(WithMaxRounds(n)).Optimize(context.Background(), p)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(res.Rounds), n)
	}
}

func TestCompileConvergence(t *testing.T) {
	p := ir.Program{
		CZ{0, 1},
		RZ{Angle: 1, Qubit: 0},
	}

	res, err := New().Optimize(context.Background(), p)
	require.NoError(t, err)

	// reordering keeps the count, so the first round looks converged
	assert.Len(t, res.Rounds, 1)
	assert.True(t, res.Converged)

	strict, err := New(WithStrictConvergence(true)).Optimize(context.Background(), p)
	require.NoError(t, err)

	assert.Len(t, strict.Rounds, 2)
	assert.True(t, strict.Converged)

	assert.Equal(t, ir.Program{RZ{Angle: 1, Qubit: 0}, CZ{0, 1}}, res.Program)
	assert.Equal(t, res.Program, strict.Program)
}

func TestCompileCancelAcrossRounds(t *testing.T) {
	p := ir.Program{
		RZ{Angle: 1, Qubit: 0},
		CZ{0, 1},
		RZ{Angle: -1, Qubit: 0},
		CZ{1, 0},
		Measure{0},
	}

	res, err := New().Optimize(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, ir.Program{Measure{0}}, res.Program)
}

func TestCompileInvalidOptions(t *testing.T) {
	_, err := New(WithMaxRounds(-1)).Optimize(context.Background(), nil)
	assert.Error(t, err)

	_, err = New(WithNativeTolerance(-1)).Optimize(context.Background(), nil)
	assert.Error(t, err)
}

func TestCompileEmpty(t *testing.T) {
	res, err := New().Optimize(context.Background(), ir.Program{})
	require.NoError(t, err)

	assert.Empty(t, res.Program)
	assert.True(t, res.Converged)
}

func TestCompilePassError(t *testing.T) {
	p, err := New().CompileProgram(context.Background(), ir.Program{Measure{0}, nil})
	require.Error(t, err)
	assert.Nil(t, p)

	var perr *PassError
	require.True(t, errors.As(err, &perr))

	assert.Equal(t, NativeTranslationPass, perr.Pass)
	assert.Equal(t, 0, perr.Round)
	assert.Contains(t, err.Error(), NativeTranslationPass)
}

func TestInstrErrorLocation(t *testing.T) {
	for _, ps := range Passes {
		_, err := ps.Run(ir.Program{RZ{Angle: 1, Qubit: 0}, nil})
		require.Error(t, err, ps.Name)

		var ie *InstrError
		require.True(t, errors.As(err, &ie), ps.Name)

		assert.Equal(t, 1, ie.Index, ps.Name)
		assert.Nil(t, ie.Instr, ps.Name)
		assert.NotZero(t, ie.At, ps.Name)
		assert.Equal(t, "unsupported instruction at 1: <nil>", ie.Error())
	}

	_, err := New().Optimize(context.Background(), ir.Program{Measure{0}, nil})

	var ie *InstrError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)
}

func TestPassErrorMessage(t *testing.T) {
	err := &PassError{Pass: "cz_cancel", Round: 3, Err: errors.New("boom")}

	assert.Equal(t, "pass cz_cancel (round 3): boom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "boom")
}
