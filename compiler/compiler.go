package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/dustin-ward/dustinw-qc/compiler/back"
	"github.com/dustin-ward/dustinw-qc/compiler/format"
	"github.com/dustin-ward/dustinw-qc/compiler/ir"
	"github.com/dustin-ward/dustinw-qc/compiler/parse"
)

type (
	// Unit is a program compiled from a single source file.
	Unit struct {
		Name string

		Input  ir.Program
		Result *back.Result
	}
)

func CompileFile(ctx context.Context, name string, opts ...back.Option) (obj []byte, err error) {
	u, err := OptimizeFile(ctx, name, opts...)
	if err != nil {
		return nil, err
	}

	return u.Text(ctx)
}

func Compile(ctx context.Context, name string, text []byte, opts ...back.Option) (obj []byte, err error) {
	u, err := Optimize(ctx, name, text, opts...)
	if err != nil {
		return nil, err
	}

	return u.Text(ctx)
}

func OptimizeFile(ctx context.Context, name string, opts ...back.Option) (*Unit, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Optimize(ctx, name, text, opts...)
}

// Optimize parses text and runs the backend over it.
func Optimize(ctx context.Context, name string, text []byte, opts ...back.Option) (u *Unit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	p, err := parse.Parse(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	res, err := back.New(opts...).Optimize(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "optimize")
	}

	return &Unit{
		Name:   name,
		Input:  p,
		Result: res,
	}, nil
}

func (u *Unit) Text(ctx context.Context) ([]byte, error) {
	return format.Format(ctx, nil, u.Result.Program)
}
