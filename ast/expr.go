package ast

// Expression is the closed union of ckt expressions. Variants: StringLit,
// NumberLit, BoolLit, Identifier, PhysicalQuantity, BilateralQuantity,
// BinaryOp, UnaryOp, Group, and New. Sub-expressions are exclusively owned
// by their parent node; the tree has no sharing and no cycles.
type Expression interface {
	expr()
}

// StringLit is a string literal with delimiters stripped.
type StringLit struct {
	Value string
}

// NumberLit is a bare numeric literal without a unit.
type NumberLit struct {
	Value float64
}

// BoolLit is a True/False literal.
type BoolLit struct {
	Value bool
}

// Identifier is a bare name reference.
type Identifier struct {
	Name string
}

// PhysicalQuantity is a signed magnitude with an optional unit suffix,
// e.g. "42V" or "-5.0ohm". Unit is empty when absent; when present it is
// a valid identifier.
type PhysicalQuantity struct {
	Value float64
	Unit  string
}

// BilateralQuantity is a physical quantity with an attached tolerance,
// e.g. "10V +/- 5%" or "3.3V +/- 0.1V".
type BilateralQuantity struct {
	Value     float64
	Unit      string
	Tolerance Tolerance
}

// Tolerance is the tolerance union: a percentage or an absolute quantity.
type Tolerance interface {
	tol()
}

// Percentage is a relative tolerance, e.g. the 5 in "+/- 5%".
type Percentage struct {
	Value float64
}

// Absolute is a tolerance expressed as a quantity of its own, e.g. the
// "0.1V" in "3.3V +/- 0.1V". The nested quantity carries a placeholder
// zero-percent tolerance that has no meaning and must not be inspected.
type Absolute struct {
	Quantity *BilateralQuantity
}

func (*Percentage) tol() {}
func (*Absolute) tol()   {}

// BinaryOp applies Op to two sub-expressions.
type BinaryOp struct {
	Left  Expression
	Op    Operator
	Right Expression
}

// UnaryOp applies a prefix Op to its operand.
type UnaryOp struct {
	Op      Operator
	Operand Expression
}

// Group is an explicitly parenthesized expression; the node is kept so a
// renderer can reproduce source parenthesization.
type Group struct {
	Inner Expression
}

// New is the "new <Type>" instantiation form.
type New struct {
	TypeName string
}

func (*StringLit) expr()         {}
func (*NumberLit) expr()         {}
func (*BoolLit) expr()           {}
func (*Identifier) expr()        {}
func (*PhysicalQuantity) expr()  {}
func (*BilateralQuantity) expr() {}
func (*BinaryOp) expr()          {}
func (*UnaryOp) expr()           {}
func (*Group) expr()             {}
func (*New) expr()               {}

// Operator enumerates expression operators.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Power
	BitwiseOr
	BitwiseAnd
	LessThan
	GreaterThan
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	Within
	Plus  // unary
	Minus // unary
)

var operatorNames = [...]string{
	Add:          "Add",
	Subtract:     "Subtract",
	Multiply:     "Multiply",
	Divide:       "Divide",
	Power:        "Power",
	BitwiseOr:    "BitwiseOr",
	BitwiseAnd:   "BitwiseAnd",
	LessThan:     "LessThan",
	GreaterThan:  "GreaterThan",
	LessEqual:    "LessEqual",
	GreaterEqual: "GreaterEqual",
	Equal:        "Equal",
	NotEqual:     "NotEqual",
	Within:       "Within",
	Plus:         "Plus",
	Minus:        "Minus",
}

var operatorText = [...]string{
	Add:          "+",
	Subtract:     "-",
	Multiply:     "*",
	Divide:       "/",
	Power:        "**",
	BitwiseOr:    "|",
	BitwiseAnd:   "&",
	LessThan:     "<",
	GreaterThan:  ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
	Within:       "within",
	Plus:         "+",
	Minus:        "-",
}

// String returns the variant name, e.g. "Add".
func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorNames) {
		return "?"
	}
	return operatorNames[op]
}

// Text returns the source spelling, e.g. "+".
func (op Operator) Text() string {
	if op < 0 || int(op) >= len(operatorText) {
		return "?"
	}
	return operatorText[op]
}

// AssignOp enumerates assignment operators.
type AssignOp int

const (
	AssignSimple AssignOp = iota // =
	AssignAdd                    // +=
	AssignSub                    // -=
	AssignMul                    // *=
	AssignDiv                    // /=
	AssignPow                    // **=
	AssignIntDiv                 // //=
	AssignOr                     // |=
	AssignAnd                    // &=
	AssignXor                    // ^=
	AssignShl                    // <<=
	AssignShr                    // >>=
	AssignAt                     // @=
)

var assignOpNames = [...]string{
	AssignSimple: "Simple",
	AssignAdd:    "Add",
	AssignSub:    "Subtract",
	AssignMul:    "Multiply",
	AssignDiv:    "Divide",
	AssignPow:    "Power",
	AssignIntDiv: "IntegerDivide",
	AssignOr:     "BitwiseOr",
	AssignAnd:    "BitwiseAnd",
	AssignXor:    "BitwiseXor",
	AssignShl:    "LeftShift",
	AssignShr:    "RightShift",
	AssignAt:     "At",
}

var assignOpText = [...]string{
	AssignSimple: "=",
	AssignAdd:    "+=",
	AssignSub:    "-=",
	AssignMul:    "*=",
	AssignDiv:    "/=",
	AssignPow:    "**=",
	AssignIntDiv: "//=",
	AssignOr:     "|=",
	AssignAnd:    "&=",
	AssignXor:    "^=",
	AssignShl:    "<<=",
	AssignShr:    ">>=",
	AssignAt:     "@=",
}

// String returns the variant name, e.g. "Add".
func (op AssignOp) String() string {
	if op < 0 || int(op) >= len(assignOpNames) {
		return "?"
	}
	return assignOpNames[op]
}

// Text returns the source spelling, e.g. "+=".
func (op AssignOp) Text() string {
	if op < 0 || int(op) >= len(assignOpText) {
		return "?"
	}
	return assignOpText[op]
}
