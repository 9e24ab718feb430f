package verilog

import (
	"math/big"
	"testing"

	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/ir"
	"github.com/fexolm/cat2verilog/irgen"
	"github.com/kr/pretty"
)

func lower(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, err := ast.ParseModule([]byte(src))
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	mod, err := irgen.GenerateIR(m, irgen.Options{})
	if err != nil {
		t.Fatalf("GenerateIR: %v", err)
	}
	return mod
}

func TestEmitAdder(t *testing.T) {
	m := lower(t, `module adder {
  input a[4]; input b[4];
  output sum[4];
  sum = a + b;
}`)
	want := `module adder (
    input [3:0] a,
    input [3:0] b,
    output [3:0] sum
);

    assign sum = a + b;

endmodule
`
	if got := Emit(m); got != want {
		t.Errorf("Emit mismatch:\n%s", pretty.Diff(want, got))
	}
}

func TestEmitSequential(t *testing.T) {
	m := lower(t, `module counter {
  input clk; input rst; input en;
  output q[4];
  output flag;
  wire next[4];
  reg seen;
  next = en ? q + 4'd1 : q;
  always @(posedge clk) { q <= rst ? 4'd0 : next; }
  always @(negedge clk) { seen <= en; }
  flag = seen;
}`)
	want := `module counter (
    input clk,
    input rst,
    input en,
    output reg [3:0] q,
    output flag
);

    wire [3:0] next;
    reg seen;

    assign next = en ? (q + 4'd1) : q;
    assign flag = seen;

    always @(posedge clk) begin
        q <= rst ? 4'd0 : next;
    end

    always @(negedge clk) begin
        seen <= en;
    end

endmodule
`
	if got := Emit(m); got != want {
		t.Errorf("Emit mismatch:\n%s", pretty.Diff(want, got))
	}
}

func TestEmitMergesBlocksPerClock(t *testing.T) {
	m := lower(t, `module m {
  input clk; input d;
  reg a; reg b; output q;
  always @(posedge clk) { a <= d; }
  always @(posedge clk) { b <= a; q <= b; }
}`)
	want := `module m (
    input clk,
    input d,
    output reg q
);

    reg a;
    reg b;

    always @(posedge clk) begin
        a <= d;
        b <= a;
        q <= b;
    end

endmodule
`
	if got := Emit(m); got != want {
		t.Errorf("Emit mismatch:\n%s", pretty.Diff(want, got))
	}
}

func TestEmitNoPorts(t *testing.T) {
	m := lower(t, "module empty { }")
	want := "module empty;\n\nendmodule\n"
	if got := Emit(m); got != want {
		t.Errorf("Emit = %q, want %q", got, want)
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	src := `module m {
  input a[8]; input b[8]; input s;
  output y[8]; output z;
  wire t[8];
  t = a ^ b;
  y = s ? t : {b[3:0], a[7:4]};
  z = t == 8'hff || !s;
}`
	first := Emit(lower(t, src))
	for i := 0; i < 20; i++ {
		if got := Emit(lower(t, src)); got != first {
			t.Fatalf("run %d differs:\n%s", i, pretty.Diff(first, got))
		}
	}
}

func TestExprParentheses(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"a + b", "a + b"},
		{"a + b + c", "a + b + c"},
		{"a + (b + c)", "a + (b + c)"},
		{"a - b + c", "(a - b) + c"},
		{"a + b * c", "a + (b * c)"},
		{"a & b + c", "(a & b) + c"},
		{"a | b & c", "a | (b & c)"},
		{"a ^ b | c", "(a ^ b) | c"},
		{"a == b && c", "(a == b) && c"},
		{"a && b || c && d", "(a && b) || (c && d)"},
		{"a << 1 + b", "a << (1 + b)"},
		{"~(a & b)", "~(a & b)"},
		{"~a & b", "~a & b"},
		{"-(-a)", "-(-a)"},
		{"~~a", "~~a"},
		{"!(a == b)", "!(a == b)"},
		{"s ? a : b", "s ? a : b"},
		{"s ? a : s ? b : c", "s ? a : (s ? b : c)"},
		{"(s ? a : b) + c", "(s ? a : b) + c"},
		{"{a, b + c}", "{a, b + c}"},
		{"a[3] & b[1:0]", "a[3] & b[1:0]"},
		{"8'hFF & a", "8'hFF & a"},
		{"a + 1_0", "a + 1_0"},
		{"{a, 5}", "{a, 3'd5}"},
		{"{b, a + 1}", "{b, a + 1'd1}"},
		{"{~0, a}", "{~1'd0, a}"},
		{"{s ? 1 : 0, d[0]}", "{s ? 1'd1 : 1'd0, d}"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m := lower(t, "module m { input a[8], b[8], c[8], d, s; output y[16]; y = "+tt.expr+"; }")
			if got := Expr(m.Assigns[0].Expr); got != tt.want {
				t.Errorf("Expr(%s) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestExprConst(t *testing.T) {
	c := &ir.Const{Value: big.NewInt(10), Bits: 4, Sized: true, Base: 'b', Digits: "1010"}
	if got := Expr(c); got != "4'b1010" {
		t.Errorf("Expr = %s", got)
	}
	u := &ir.Const{Value: big.NewInt(7), Bits: 3, Digits: "7"}
	if got := Expr(&ir.Binary{Op: ast.Mul, Left: u, Right: c, Bits: 4}); got != "7 * 4'b1010" {
		t.Errorf("Expr = %s", got)
	}
}
