package compiler_test

import (
	"context"
	"errors"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dustin-ward/dustinw-qc/compiler"
	"github.com/dustin-ward/dustinw-qc/compiler/back"
	"github.com/dustin-ward/dustinw-qc/compiler/ir"
	"github.com/dustin-ward/dustinw-qc/compiler/parse"
)

var _ = Describe("Compiler", func() {
	var ctx context.Context

	h := math.Pi / 2

	expected := ir.Program{
		ir.RZ{Angle: h, Qubit: 0},
		ir.RX{Angle: h, Qubit: 0},
		ir.RZ{Angle: 0.45, Qubit: 0},
		ir.RX{Angle: -h, Qubit: 0},
		ir.RZ{Angle: -h + -1, Qubit: 0},
		ir.RZ{Angle: 1 + h, Qubit: 1},
		ir.RX{Angle: h, Qubit: 1},
		ir.RZ{Angle: 0.45, Qubit: 1},
		ir.RX{Angle: -h, Qubit: 1},
		ir.RZ{Angle: -h, Qubit: 1},
		ir.CZ{A: 0, B: 1},
		ir.Measure{Qubit: 0},
		ir.Measure{Qubit: 1},
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("optimizes the sample file", func() {
		u, err := compiler.OptimizeFile(ctx, "testdata/sample.quil")
		Expect(err).NotTo(HaveOccurred())

		Expect(u.Input).To(HaveLen(7))
		Expect(u.Result.Native).To(Equal(15))
		Expect(u.Result.Converged).To(BeTrue())
		Expect(u.Result.Rounds).To(HaveLen(2))
		Expect(u.Result.Program.Equal(expected)).To(BeTrue())

		for i, x := range u.Result.Program {
			Expect(back.IsNative(x)).To(BeTrue(), "instr %d", i)
		}
	})

	It("prints text that parses back to the optimized program", func() {
		obj, err := compiler.CompileFile(ctx, "testdata/sample.quil")
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSuffix(string(obj), "\n"), "\n")
		Expect(lines).To(HaveLen(len(expected)))
		Expect(lines[0]).To(Equal("RZ(1.5707963267948966) 0"))
		Expect(lines[3]).To(Equal("RX(-1.5707963267948966) 0"))
		Expect(lines[10:]).To(Equal([]string{"CZ 0 1", "MEASURE 0", "MEASURE 1"}))

		p, err := parse.Parse(ctx, obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Equal(expected)).To(BeTrue())
	})

	It("cancels a CZ pair separated by rotations on the anchor", func() {
		obj, err := compiler.Compile(ctx, "inline", []byte("CZ 0 1\nRZ(0.5) 0\nCZ 1 0\nMEASURE 0\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(obj)).To(Equal("RZ(0.5) 0\nMEASURE 0\n"))
	})

	It("removes rotations that merge to zero", func() {
		obj, err := compiler.Compile(ctx, "inline", []byte("RZ(1) 3; RZ(-1) 3\nMEASURE 3"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(obj)).To(Equal("MEASURE 3\n"))
	})

	It("compiles an empty file", func() {
		obj, err := compiler.Compile(ctx, "empty", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obj).To(BeEmpty())
	})

	It("respects the round limit", func() {
		u, err := compiler.Optimize(ctx, "inline", []byte("RZ(1) 0\nRZ(1) 0\nRZ(1) 0\nRZ(1) 0\n"), back.WithMaxRounds(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Result.Rounds).To(HaveLen(1))
		Expect(u.Result.Converged).To(BeFalse())
		Expect(u.Result.Program).To(HaveLen(2))
	})

	It("reports parse errors with their position", func() {
		_, err := compiler.Compile(ctx, "bad", []byte("RX(0.45) 0\nCZ 0\n"))
		Expect(err).To(HaveOccurred())

		var perr *parse.Error
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Line).To(Equal(2))
	})

	It("rejects bad options", func() {
		_, err := compiler.Compile(ctx, "inline", []byte("MEASURE 0"), back.WithMaxRounds(-1))
		Expect(err).To(HaveOccurred())
	})

	It("fails on a missing file", func() {
		_, err := compiler.CompileFile(ctx, "testdata/missing.quil")
		Expect(err).To(HaveOccurred())
	})
})
