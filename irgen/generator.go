// Package irgen validates a parsed module and lowers it to the annotated
// form in package ir. Analysis is fail-fast: the first error found is
// returned and no partial module is produced.
package irgen

import (
	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/ir"
)

type Options struct {
	// Strict rejects signals that are declared but never driven.
	Strict bool
}

type clockKey struct {
	edge  ast.Edge
	clock string
}

type generator struct {
	src  *ast.Module
	opts Options
	syms *ir.SymbolTable
	out  *ir.Module

	procs map[clockKey]*ir.Process
}

// GenerateIR checks m and returns its annotated form. The caller's AST is
// not modified.
func GenerateIR(m *ast.Module, opts Options) (*ir.Module, error) {
	g := &generator{
		src:   m,
		opts:  opts,
		syms:  ir.NewSymbolTable(),
		procs: make(map[clockKey]*ir.Process),
	}
	g.out = &ir.Module{Name: m.Name, Symbols: g.syms}

	steps := []func() error{
		g.declareSignals,
		g.checkTargets,
		g.annotate,
		g.checkDrivers,
		g.checkLoops,
		g.lint,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return g.out, nil
}

var signalKinds = map[ast.SignalKind]ir.SignalKind{
	ast.Input:  ir.Input,
	ast.Output: ir.Output,
	ast.Wire:   ir.Wire,
	ast.Reg:    ir.Register,
}

func (g *generator) declareSignals() error {
	if verilogKeywords[g.src.Name] {
		return errorf(ReservedIdentifier, g.src.Name, g.src.Pos, "module name %q is a Verilog keyword", g.src.Name)
	}
	declare := func(decl *ast.Signal) (*ir.Signal, error) {
		if verilogKeywords[decl.Name] {
			return nil, errorf(ReservedIdentifier, decl.Name, decl.Pos, "signal name %q is a Verilog keyword", decl.Name)
		}
		sig := &ir.Signal{Name: decl.Name, Kind: signalKinds[decl.Kind], Width: decl.Width, Pos: decl.Pos}
		if prev, ok := g.syms.Insert(sig); !ok {
			return nil, errorf(DuplicateSignal, decl.Name, decl.Pos, "signal %q already declared at %s", decl.Name, prev.Pos)
		}
		if decl.Width < 1 || decl.Width > ir.MaxWidth {
			return nil, errorf(WidthMismatch, decl.Name, decl.Pos, "signal %q has width %d, must be between 1 and %d", decl.Name, decl.Width, ir.MaxWidth)
		}
		return sig, nil
	}
	for _, p := range g.src.Ports {
		sig, err := declare(p)
		if err != nil {
			return err
		}
		g.out.Ports = append(g.out.Ports, sig)
	}
	for _, d := range g.src.Decls {
		sig, err := declare(d)
		if err != nil {
			return err
		}
		g.out.Decls = append(g.out.Decls, sig)
	}
	return nil
}

func (g *generator) checkTargets() error {
	for _, a := range g.src.Assigns {
		sig, ok := g.syms.Lookup(a.Target)
		if !ok {
			return errorf(UndeclaredSignal, a.Target, a.Pos, "assignment to undeclared signal %q", a.Target)
		}
		if sig.Kind == ir.Input {
			return errorf(AssignToInput, a.Target, a.Pos, "cannot assign to input %q", a.Target)
		}
	}
	return nil
}

func (g *generator) annotate() error {
	for _, a := range g.src.Assigns {
		if a.Kind == ast.Sequential {
			if err := g.checkClock(a.Clock); err != nil {
				return err
			}
		}
		expr, err := g.expr(a.Expr)
		if err != nil {
			return err
		}
		target, _ := g.syms.Lookup(a.Target)
		if expr.Width() > target.Width {
			return errorf(WidthMismatch, a.Target, a.Pos, "cannot assign %d-bit value to %d-bit signal %q", expr.Width(), target.Width, a.Target)
		}

		assign := &ir.Assign{Target: a.Target, Expr: expr, Pos: a.Pos}
		if a.Kind == ast.Combinational {
			g.out.Assigns = append(g.out.Assigns, assign)
			continue
		}
		key := clockKey{a.Clock.Edge, a.Clock.Signal}
		proc, ok := g.procs[key]
		if !ok {
			proc = &ir.Process{Edge: key.edge, Clock: key.clock}
			g.procs[key] = proc
			g.out.Processes = append(g.out.Processes, proc)
		}
		proc.Assigns = append(proc.Assigns, assign)
	}
	return nil
}

func (g *generator) checkClock(clk *ast.Clock) error {
	sig, ok := g.syms.Lookup(clk.Signal)
	if !ok {
		return errorf(UndeclaredSignal, clk.Signal, clk.Pos, "undeclared clock %q", clk.Signal)
	}
	if sig.Width != 1 {
		return errorf(WidthMismatch, clk.Signal, clk.Pos, "clock %q must be 1 bit wide, has %d", clk.Signal, sig.Width)
	}
	sig.Read = true
	return nil
}

func describeDriver(a *ast.Assign) string {
	if a.Kind == ast.Combinational {
		return "combinational assignment at " + a.Pos.String()
	}
	return "always @(" + a.Clock.Edge.String() + " " + a.Clock.Signal + ") at " + a.Pos.String()
}

// checkDrivers enforces one driver per signal: a second assignment of any
// kind to the same target is rejected, as is driving a reg combinationally
// or a wire from a clocked block.
func (g *generator) checkDrivers() error {
	drivers := make(map[string]*ast.Assign)
	for _, a := range g.src.Assigns {
		if first, ok := drivers[a.Target]; ok {
			return errorf(MultipleDrivers, a.Target, a.Pos, "signal %q has multiple drivers: already driven by %s", a.Target, describeDriver(first))
		}
		drivers[a.Target] = a
	}
	for _, a := range g.src.Assigns {
		sig, _ := g.syms.Lookup(a.Target)
		switch {
		case a.Kind == ast.Combinational && sig.Kind == ir.Register:
			return errorf(DriverKindMismatch, a.Target, a.Pos, "reg %q can only be assigned in an always block", a.Target)
		case a.Kind == ast.Sequential && sig.Kind == ir.Wire:
			return errorf(DriverKindMismatch, a.Target, a.Pos, "wire %q cannot be assigned in an always block", a.Target)
		}
		if a.Kind == ast.Sequential {
			sig.Driver = ir.DrivenSequential
		} else {
			sig.Driver = ir.DrivenCombinational
		}
	}
	return nil
}

func (g *generator) checkLoops() error {
	dg := newDepGraph(g.out.Assigns)
	if path, pos := dg.findCycle(); path != nil {
		return loopError(path, pos)
	}
	return nil
}

func (g *generator) lint() error {
	for _, sig := range g.syms.Signals() {
		if sig.Kind != ir.Input && sig.Driver == ir.Undriven {
			if g.opts.Strict {
				return errorf(UndrivenSignal, sig.Name, sig.Pos, "%s %q is never driven", sig.Kind, sig.Name)
			}
			g.out.Warnings = append(g.out.Warnings, ir.Warning{Kind: ir.UndrivenSignal, Signal: sig.Name, Pos: sig.Pos})
		}
		if sig.Kind != ir.Output && !sig.Read {
			g.out.Warnings = append(g.out.Warnings, ir.Warning{Kind: ir.UnusedSignal, Signal: sig.Name, Pos: sig.Pos})
		}
	}
	return nil
}
