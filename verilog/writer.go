// Package verilog emits Verilog-2001 source for an annotated module.
//
// Output is a pure function of the module: ports and declarations follow
// source declaration order, continuous assignments follow source order and
// always blocks follow the first appearance of their clock.
package verilog

import (
	"fmt"
	"strings"

	"github.com/fexolm/cat2verilog/ir"
)

const indent = "    "

// Emit renders m. Generation cannot fail for a module produced by irgen.
func Emit(m *ir.Module) string {
	var b strings.Builder
	writeHeader(&b, m)

	if len(m.Decls) > 0 {
		b.WriteByte('\n')
		for _, d := range m.Decls {
			fmt.Fprintf(&b, "%s%s %s%s;\n", indent, d.Kind, rangeOf(d.Width), d.Name)
		}
	}
	if len(m.Assigns) > 0 {
		b.WriteByte('\n')
		for _, a := range m.Assigns {
			fmt.Fprintf(&b, "%sassign %s = %s;\n", indent, a.Target, Expr(a.Expr))
		}
	}
	for _, p := range m.Processes {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%salways @(%s %s) begin\n", indent, p.Edge, p.Clock)
		for _, a := range p.Assigns {
			fmt.Fprintf(&b, "%s%s%s <= %s;\n", indent, indent, a.Target, Expr(a.Expr))
		}
		fmt.Fprintf(&b, "%send\n", indent)
	}

	b.WriteString("\nendmodule\n")
	return b.String()
}

func writeHeader(b *strings.Builder, m *ir.Module) {
	if len(m.Ports) == 0 {
		fmt.Fprintf(b, "module %s;\n", m.Name)
		return
	}
	fmt.Fprintf(b, "module %s (\n", m.Name)
	for i, p := range m.Ports {
		kind := p.Kind.String()
		if p.Kind == ir.Output && p.Driver == ir.DrivenSequential {
			kind += " reg"
		}
		sep := ","
		if i == len(m.Ports)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "%s%s %s%s%s\n", indent, kind, rangeOf(p.Width), p.Name, sep)
	}
	b.WriteString(");\n")
}

func rangeOf(width int) string {
	if width == 1 {
		return ""
	}
	return fmt.Sprintf("[%d:0] ", width-1)
}
