// Package compiler runs the cat-to-Verilog pipeline: scan, parse, analyze
// and emit. Each stage runs to completion before the next starts and the
// first error ends the run.
package compiler

import (
	"errors"
	"fmt"

	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/ir"
	"github.com/fexolm/cat2verilog/irgen"
	"github.com/fexolm/cat2verilog/logger"
	"github.com/fexolm/cat2verilog/scanner"
	"github.com/fexolm/cat2verilog/verilog"
)

type Options struct {
	// Strict turns undriven-signal warnings into errors.
	Strict bool
}

type Stage string

const (
	StageLex      Stage = "LexError"
	StageParse    Stage = "ParseError"
	StageSemantic Stage = "SemanticError"
)

// Error attributes a pipeline failure to a file and stage. The wrapped error
// is a *scanner.Error, *ast.ParseError or *irgen.Error.
type Error struct {
	File  string
	Stage Stage
	Kind  string
	Pos   scanner.Pos
	Err   error
}

type diagnostic interface {
	error
	Position() scanner.Pos
	Message() string
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if d, ok := e.Err.(diagnostic); ok {
		msg = d.Message()
	}
	return fmt.Sprintf("%s:%s: %s(%s): %s", e.File, e.Pos, e.Stage, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(file string, err error) *Error {
	ce := &Error{File: file, Err: err}
	var (
		lexErr   *scanner.Error
		parseErr *ast.ParseError
		semErr   *irgen.Error
	)
	switch {
	case errors.As(err, &lexErr):
		ce.Stage, ce.Kind, ce.Pos = StageLex, lexErr.Kind.String(), lexErr.Pos
	case errors.As(err, &parseErr):
		ce.Stage, ce.Kind, ce.Pos = StageParse, parseErr.Kind.String(), parseErr.Pos
	case errors.As(err, &semErr):
		ce.Stage, ce.Kind, ce.Pos = StageSemantic, semErr.Kind.String(), semErr.Pos
	}
	return ce
}

type Result struct {
	Verilog  []byte
	Warnings []ir.Warning
}

// Compile translates one module. On failure the returned error is a *Error
// and no output is produced.
func Compile(file string, src []byte, opts Options) (*Result, error) {
	logger.LogPhase(file, "lex")
	toks, err := scanner.Scan(src)
	if err != nil {
		return nil, wrap(file, err)
	}
	logger.LogPhaseComplete(file, "lex", "tokens", len(toks))

	logger.LogPhase(file, "parse")
	parsed, err := ast.Parse(toks)
	if err != nil {
		return nil, wrap(file, err)
	}
	logger.LogPhaseComplete(file, "parse", "module", parsed.Name, "assigns", len(parsed.Assigns))

	logger.LogPhase(file, "analyze")
	mod, err := irgen.GenerateIR(parsed, irgen.Options{Strict: opts.Strict})
	if err != nil {
		return nil, wrap(file, err)
	}
	logger.LogPhaseComplete(file, "analyze", "signals", mod.Symbols.Len(), "warnings", len(mod.Warnings))

	logger.LogPhase(file, "emit")
	out := verilog.Emit(mod)
	logger.LogPhaseComplete(file, "emit", "bytes", len(out))

	return &Result{Verilog: []byte(out), Warnings: mod.Warnings}, nil
}
