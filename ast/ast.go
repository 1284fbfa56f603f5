// Package ast defines the typed abstract syntax tree produced by the parser.
//
// Statement, Expression, Tolerance, Connectable, and PinID are closed unions:
// every variant is a struct with a private marker method, and consumers are
// expected to switch over all variants. Nodes are constructed bottom-up
// during parsing and never mutated afterwards; every node is uniquely owned
// by its parent.
package ast

// Statement is the closed union of ckt statements. Variants: the three
// import forms, Assignment, CumulativeAssign, SetAssign, Connection, Block,
// Declaration, Pass, DocString, Comment, Assert, Retype, SignalDef, PinDef,
// PhysicalQuantity, and BilateralQuantity.
type Statement interface {
	stmt()
}

// BlockType distinguishes the three block kinds.
type BlockType int

const (
	Component BlockType = iota
	Module
	Interface
)

func (t BlockType) String() string {
	switch t {
	case Component:
		return "Component"
	case Module:
		return "Module"
	case Interface:
		return "Interface"
	}
	return "?"
}

// Keyword returns the source keyword introducing a block of this type.
func (t BlockType) Keyword() string {
	switch t {
	case Component:
		return "component"
	case Module:
		return "module"
	case Interface:
		return "interface"
	}
	return "?"
}

// FromImport is "from <module> import <items>"; Module is a dotted
// identifier namespace.
type FromImport struct {
	Module string
	Items  []string
}

// DirectImport is "import <module>".
type DirectImport struct {
	Module string
}

// FromStringImport is "from <path> import <items>" where path is a string
// literal, typically a relative file reference.
type FromStringImport struct {
	Path  string
	Items []string
}

// Block is a named component/module/interface scope. Parent names a single
// base block by identifier or is empty; resolving it is a later semantic
// stage's concern. Body order is significant: comments and docstrings are
// preserved interleaved with semantic statements.
type Block struct {
	Type   BlockType
	Name   string
	Parent string
	Body   []Statement
}

// Assignment is "target [: type] <op> value" with the full operator set.
type Assignment struct {
	Target   string
	Operator AssignOp
	Value    Expression
	TypeInfo string
}

// CumulativeAssign is a compound assignment restricted to += and -= over a
// physical quantity or expression; quantity accumulation has different
// downstream semantics than generic assignment.
type CumulativeAssign struct {
	Target   string
	Operator AssignOp
	Value    CumulativeValue
	TypeInfo string
}

// SetAssign is a compound assignment restricted to |= and &= for
// bit-flag combination.
type SetAssign struct {
	Target   string
	Operator AssignOp
	Value    CumulativeValue
	TypeInfo string
}

// CumulativeValue is the value union of CumulativeAssign and SetAssign:
// either a bare physical quantity or a general expression.
type CumulativeValue interface {
	cumulative()
}

// PhysicalValue is the quantity arm of CumulativeValue.
type PhysicalValue struct {
	Quantity *PhysicalQuantity
}

// ArithmeticValue is the expression arm of CumulativeValue.
type ArithmeticValue struct {
	Expr Expression
}

func (*PhysicalValue) cumulative()   {}
func (*ArithmeticValue) cumulative() {}

// Connection is an undirected topological link "left ~ right".
type Connection struct {
	Left  Connectable
	Right Connectable
}

// Connectable is a terminal of a connection: a bare name, a dotted pin
// reference, or a named signal.
type Connectable interface {
	connectable()
}

// NameRef is a bare identifier terminal.
type NameRef struct {
	Name string
}

// PinRef is a dotted "owner.pin" reference; Path keeps the dotted form.
type PinRef struct {
	Path string
}

// SignalRef is a "signal <name>" terminal.
type SignalRef struct {
	Name string
}

func (*NameRef) connectable()   {}
func (*PinRef) connectable()    {}
func (*SignalRef) connectable() {}

// Declaration is "name : type" without a value.
type Declaration struct {
	Name     string
	TypeInfo string
}

// Pass is the no-op statement.
type Pass struct{}

// DocString is a bare string literal statement.
type DocString struct {
	Text string
}

// Comment is a "#" comment preserved as a statement for tooling.
type Comment struct {
	Text string
}

// Assert is "assert <condition>" where condition is a comparison.
type Assert struct {
	Condition Expression
}

// Retype is "retype <source> as <target>".
type Retype struct {
	Source string
	Target string
}

// SignalDef is "signal <name>".
type SignalDef struct {
	Name string
}

// PinDef is "pin <id>" where id is a name, a number, or a string literal.
type PinDef struct {
	Pin PinID
}

// PinID is the pin identifier union.
type PinID interface {
	pinID()
}

type PinName struct {
	Name string
}

type PinNumber struct {
	Number int64
}

type PinLabel struct {
	Label string
}

func (*PinName) pinID()   {}
func (*PinNumber) pinID() {}
func (*PinLabel) pinID()  {}

func (*FromImport) stmt()        {}
func (*DirectImport) stmt()      {}
func (*FromStringImport) stmt()  {}
func (*Block) stmt()             {}
func (*Assignment) stmt()        {}
func (*CumulativeAssign) stmt()  {}
func (*SetAssign) stmt()         {}
func (*Connection) stmt()        {}
func (*Declaration) stmt()       {}
func (*Pass) stmt()              {}
func (*DocString) stmt()         {}
func (*Comment) stmt()           {}
func (*Assert) stmt()            {}
func (*Retype) stmt()            {}
func (*SignalDef) stmt()         {}
func (*PinDef) stmt()            {}
func (*PhysicalQuantity) stmt()  {}
func (*BilateralQuantity) stmt() {}
