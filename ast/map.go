package ast

// StatementMap converts a statement to a generic tagged structure
// {"type": <variant name>, <variant-specific fields>} so a host environment
// can render or serialize the tree without depending on the ast types.
// Body statements, expressions, and tolerances are converted recursively.
func StatementMap(s Statement) map[string]any {
	m := map[string]any{}
	switch v := s.(type) {
	case *FromImport:
		m["type"] = "Import"
		m["module"] = v.Module
		m["items"] = append([]string{}, v.Items...)
	case *DirectImport:
		m["type"] = "Import"
		m["module"] = v.Module
	case *FromStringImport:
		m["type"] = "Import"
		m["path"] = v.Path
		m["items"] = append([]string{}, v.Items...)
	case *Block:
		m["type"] = "Block"
		m["block_type"] = v.Type.String()
		m["name"] = v.Name
		if v.Parent != "" {
			m["parent"] = v.Parent
		}
		body := make([]map[string]any, len(v.Body))
		for i, st := range v.Body {
			body[i] = StatementMap(st)
		}
		m["body"] = body
	case *Assignment:
		m["type"] = "Assignment"
		m["target"] = v.Target
		m["operator"] = v.Operator.String()
		m["value"] = ExpressionMap(v.Value)
		if v.TypeInfo != "" {
			m["type_info"] = v.TypeInfo
		}
	case *CumulativeAssign:
		m["type"] = "CumulativeAssign"
		m["target"] = v.Target
		m["operator"] = v.Operator.String()
		m["value"] = cumulativeMap(v.Value)
		if v.TypeInfo != "" {
			m["type_info"] = v.TypeInfo
		}
	case *SetAssign:
		m["type"] = "SetAssign"
		m["target"] = v.Target
		m["operator"] = v.Operator.String()
		m["value"] = cumulativeMap(v.Value)
		if v.TypeInfo != "" {
			m["type_info"] = v.TypeInfo
		}
	case *Connection:
		m["type"] = "Connection"
		m["left"] = connectableMap(v.Left)
		m["right"] = connectableMap(v.Right)
	case *Declaration:
		m["type"] = "Declaration"
		m["name"] = v.Name
		m["type_info"] = v.TypeInfo
	case *Pass:
		m["type"] = "Pass"
	case *DocString:
		m["type"] = "DocString"
		m["value"] = v.Text
	case *Comment:
		m["type"] = "Comment"
		m["value"] = v.Text
	case *Assert:
		m["type"] = "Assert"
		m["condition"] = ExpressionMap(v.Condition)
	case *Retype:
		m["type"] = "Retype"
		m["source"] = v.Source
		m["target"] = v.Target
	case *SignalDef:
		m["type"] = "SignalDef"
		m["name"] = v.Name
	case *PinDef:
		m["type"] = "PinDef"
		switch pin := v.Pin.(type) {
		case *PinName:
			m["name"] = pin.Name
		case *PinNumber:
			m["number"] = pin.Number
		case *PinLabel:
			m["label"] = pin.Label
		}
	case *PhysicalQuantity:
		m["type"] = "PhysicalQuantity"
		quantityFields(m, v.Value, v.Unit)
	case *BilateralQuantity:
		m["type"] = "BilateralQuantity"
		quantityFields(m, v.Value, v.Unit)
		m["tolerance"] = ToleranceMap(v.Tolerance)
	}
	return m
}

// ExpressionMap converts an expression to a generic tagged structure,
// recursively converting sub-expressions.
func ExpressionMap(e Expression) map[string]any {
	m := map[string]any{}
	switch v := e.(type) {
	case *StringLit:
		m["type"] = "String"
		m["value"] = v.Value
	case *NumberLit:
		m["type"] = "Number"
		m["value"] = v.Value
	case *BoolLit:
		m["type"] = "Boolean"
		m["value"] = v.Value
	case *Identifier:
		m["type"] = "Identifier"
		m["name"] = v.Name
	case *PhysicalQuantity:
		m["type"] = "Physical"
		quantityFields(m, v.Value, v.Unit)
	case *BilateralQuantity:
		m["type"] = "Bilateral"
		quantityFields(m, v.Value, v.Unit)
		m["tolerance"] = ToleranceMap(v.Tolerance)
	case *BinaryOp:
		m["type"] = "BinaryOp"
		m["left"] = ExpressionMap(v.Left)
		m["operator"] = v.Op.String()
		m["right"] = ExpressionMap(v.Right)
	case *UnaryOp:
		m["type"] = "UnaryOp"
		m["operator"] = v.Op.String()
		m["operand"] = ExpressionMap(v.Operand)
	case *Group:
		m["type"] = "Group"
		m["inner"] = ExpressionMap(v.Inner)
	case *New:
		m["type"] = "New"
		m["name"] = v.TypeName
	}
	return m
}

// ToleranceMap converts a tolerance to {"type": "percentage"|"absolute", "value": ...}.
func ToleranceMap(t Tolerance) map[string]any {
	switch v := t.(type) {
	case *Percentage:
		return map[string]any{"type": "percentage", "value": v.Value}
	case *Absolute:
		value := map[string]any{}
		quantityFields(value, v.Quantity.Value, v.Quantity.Unit)
		return map[string]any{"type": "absolute", "value": value}
	}
	return nil
}

func connectableMap(c Connectable) map[string]any {
	switch v := c.(type) {
	case *NameRef:
		return map[string]any{"type": "Name", "name": v.Name}
	case *PinRef:
		return map[string]any{"type": "Pin", "path": v.Path}
	case *SignalRef:
		return map[string]any{"type": "Signal", "name": v.Name}
	}
	return nil
}

func cumulativeMap(cv CumulativeValue) map[string]any {
	switch v := cv.(type) {
	case *PhysicalValue:
		m := map[string]any{"type": "Physical"}
		quantityFields(m, v.Quantity.Value, v.Quantity.Unit)
		return m
	case *ArithmeticValue:
		return ExpressionMap(v.Expr)
	}
	return nil
}

func quantityFields(m map[string]any, value float64, unit string) {
	m["value"] = value
	if unit != "" {
		m["unit"] = unit
	}
}
