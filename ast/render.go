package ast

import (
	"strconv"
	"strings"
)

// Render prints a statement back to surface syntax. Block bodies are
// indented by four spaces per nesting level; nested statements are
// rendered recursively. The result carries no trailing newline.
func Render(s Statement) string {
	var b strings.Builder
	renderStmt(&b, s, 0)
	return b.String()
}

// RenderFile prints a statement sequence as newline-separated source text.
func RenderFile(stmts []Statement) string {
	var b strings.Builder
	for _, s := range stmts {
		renderStmt(&b, s, 0)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderExpression prints an expression back to surface syntax. Group
// nodes reproduce their parentheses, so explicitly grouped source forms
// survive a render/reparse round trip.
func RenderExpression(e Expression) string {
	var b strings.Builder
	renderExpr(&b, e)
	return b.String()
}

func renderStmt(b *strings.Builder, s Statement, depth int) {
	indent := strings.Repeat("    ", depth)
	b.WriteString(indent)

	switch v := s.(type) {
	case *FromImport:
		b.WriteString("from ")
		b.WriteString(v.Module)
		b.WriteString(" import ")
		b.WriteString(strings.Join(v.Items, ", "))
	case *DirectImport:
		b.WriteString("import ")
		b.WriteString(v.Module)
	case *FromStringImport:
		b.WriteString("from \"")
		b.WriteString(v.Path)
		b.WriteString("\" import ")
		b.WriteString(strings.Join(v.Items, ", "))
	case *Block:
		b.WriteString(v.Type.Keyword())
		b.WriteByte(' ')
		b.WriteString(v.Name)
		if v.Parent != "" {
			b.WriteString(" from ")
			b.WriteString(v.Parent)
		}
		b.WriteByte(':')
		if len(v.Body) == 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString("    pass")
			return
		}
		for _, st := range v.Body {
			b.WriteByte('\n')
			renderStmt(b, st, depth+1)
		}
	case *Assignment:
		b.WriteString(v.Target)
		if v.TypeInfo != "" {
			b.WriteString(": ")
			b.WriteString(v.TypeInfo)
		}
		b.WriteByte(' ')
		b.WriteString(v.Operator.Text())
		b.WriteByte(' ')
		renderExpr(b, v.Value)
	case *CumulativeAssign:
		renderCompound(b, v.Target, v.TypeInfo, v.Operator, v.Value)
	case *SetAssign:
		renderCompound(b, v.Target, v.TypeInfo, v.Operator, v.Value)
	case *Connection:
		renderConnectable(b, v.Left)
		b.WriteString(" ~ ")
		renderConnectable(b, v.Right)
	case *Declaration:
		b.WriteString(v.Name)
		b.WriteString(": ")
		b.WriteString(v.TypeInfo)
	case *Pass:
		b.WriteString("pass")
	case *DocString:
		b.WriteByte('"')
		b.WriteString(v.Text)
		b.WriteByte('"')
	case *Comment:
		b.WriteString("# ")
		b.WriteString(v.Text)
	case *Assert:
		b.WriteString("assert ")
		renderExpr(b, v.Condition)
	case *Retype:
		b.WriteString("retype ")
		b.WriteString(v.Source)
		b.WriteString(" as ")
		b.WriteString(v.Target)
	case *SignalDef:
		b.WriteString("signal ")
		b.WriteString(v.Name)
	case *PinDef:
		b.WriteString("pin ")
		switch pin := v.Pin.(type) {
		case *PinName:
			b.WriteString(pin.Name)
		case *PinNumber:
			b.WriteString(strconv.FormatInt(pin.Number, 10))
		case *PinLabel:
			b.WriteByte('"')
			b.WriteString(pin.Label)
			b.WriteByte('"')
		}
	case *PhysicalQuantity:
		renderQuantity(b, v.Value, v.Unit)
	case *BilateralQuantity:
		renderBilateral(b, v)
	}
}

func renderCompound(b *strings.Builder, target, typeInfo string, op AssignOp, cv CumulativeValue) {
	b.WriteString(target)
	if typeInfo != "" {
		b.WriteString(": ")
		b.WriteString(typeInfo)
	}
	b.WriteByte(' ')
	b.WriteString(op.Text())
	b.WriteByte(' ')
	switch v := cv.(type) {
	case *PhysicalValue:
		renderQuantity(b, v.Quantity.Value, v.Quantity.Unit)
	case *ArithmeticValue:
		renderExpr(b, v.Expr)
	}
}

func renderConnectable(b *strings.Builder, c Connectable) {
	switch v := c.(type) {
	case *NameRef:
		b.WriteString(v.Name)
	case *PinRef:
		b.WriteString(v.Path)
	case *SignalRef:
		b.WriteString("signal ")
		b.WriteString(v.Name)
	}
}

func renderExpr(b *strings.Builder, e Expression) {
	switch v := e.(type) {
	case *StringLit:
		b.WriteByte('"')
		b.WriteString(v.Value)
		b.WriteByte('"')
	case *NumberLit:
		b.WriteString(formatNumber(v.Value))
	case *BoolLit:
		if v.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *Identifier:
		b.WriteString(v.Name)
	case *PhysicalQuantity:
		renderQuantity(b, v.Value, v.Unit)
	case *BilateralQuantity:
		renderBilateral(b, v)
	case *BinaryOp:
		renderExpr(b, v.Left)
		if boundRange(v) {
			// Physical-within-Physical is the "min to max" surface form.
			b.WriteString(" to ")
		} else {
			b.WriteByte(' ')
			b.WriteString(v.Op.Text())
			b.WriteByte(' ')
		}
		renderExpr(b, v.Right)
	case *UnaryOp:
		b.WriteString(v.Op.Text())
		renderExpr(b, v.Operand)
	case *Group:
		b.WriteByte('(')
		renderExpr(b, v.Inner)
		b.WriteByte(')')
	case *New:
		b.WriteString("new ")
		b.WriteString(v.TypeName)
	}
}

func boundRange(v *BinaryOp) bool {
	if v.Op != Within {
		return false
	}
	_, leftQty := v.Left.(*PhysicalQuantity)
	_, rightQty := v.Right.(*PhysicalQuantity)
	return leftQty && rightQty
}

func renderQuantity(b *strings.Builder, value float64, unit string) {
	b.WriteString(formatNumber(value))
	b.WriteString(unit)
}

func renderBilateral(b *strings.Builder, v *BilateralQuantity) {
	renderQuantity(b, v.Value, v.Unit)
	b.WriteString(" +/- ")
	switch tol := v.Tolerance.(type) {
	case *Percentage:
		b.WriteString(formatNumber(tol.Value))
		b.WriteByte('%')
	case *Absolute:
		renderQuantity(b, tol.Quantity.Value, tol.Quantity.Unit)
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
