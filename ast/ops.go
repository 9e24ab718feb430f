package ast

type UnOp int

const (
	BitNot UnOp = iota // ~
	LogNot             // !
	Neg                // -
)

func (op UnOp) String() string {
	switch op {
	case BitNot:
		return "~"
	case LogNot:
		return "!"
	case Neg:
		return "-"
	}
	return "?"
}

type BinOp int

const (
	Mul BinOp = iota
	Div
	Mod
	And
	Add
	Sub
	Or
	Xor
	Shl
	Shr
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	LogAnd
	LogOr
)

var binOpText = [...]string{
	Mul: "*", Div: "/", Mod: "%", And: "&",
	Add: "+", Sub: "-", Or: "|", Xor: "^",
	Shl: "<<", Shr: ">>",
	Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
	LogAnd: "&&", LogOr: "||",
}

func (op BinOp) String() string {
	if int(op) < len(binOpText) {
		return binOpText[op]
	}
	return "?"
}

// Binding strength of binary operators, loosest first. Unary operators bind
// tighter than all of them.
const (
	PrecLogOr = iota + 1
	PrecLogAnd
	PrecCompare
	PrecShift
	PrecAdd
	PrecMul

	maxPrec = PrecMul
)

func (op BinOp) Precedence() int {
	switch op {
	case Mul, Div, Mod, And:
		return PrecMul
	case Add, Sub, Or, Xor:
		return PrecAdd
	case Shl, Shr:
		return PrecShift
	case Eq, Ne, Lt, Le, Gt, Ge:
		return PrecCompare
	case LogAnd:
		return PrecLogAnd
	case LogOr:
		return PrecLogOr
	}
	return 0
}

// IsCompare reports whether op yields a single truth bit.
func (op BinOp) IsCompare() bool {
	p := op.Precedence()
	return p == PrecCompare || p == PrecLogAnd || p == PrecLogOr
}

var binOps = map[string]BinOp{}

func init() {
	for op, text := range binOpText {
		binOps[text] = BinOp(op)
	}
}
