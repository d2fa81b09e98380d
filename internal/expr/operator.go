package expr

import "fmt"

// Operator is the operation an operator node performs.
type Operator int

const (
	OpNone Operator = iota
	OpEqual
	OpNotEqual
	OpGreaterThan
	OpGreaterThanEqual
	OpLessThan
	OpLessThanEqual
	OpAnd
	OpOr
	OpNot
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpLike
	OpIn
	OpConcat
	OpAsc
	OpDesc
	// OpLimit carries a size child and an optional offset child.
	OpLimit
)

var operatorNames = map[Operator]string{
	OpNone:             "None",
	OpEqual:            "Equal",
	OpNotEqual:         "NotEqual",
	OpGreaterThan:      "GreaterThan",
	OpGreaterThanEqual: "GreaterThanEqual",
	OpLessThan:         "LessThan",
	OpLessThanEqual:    "LessThanEqual",
	OpAnd:              "And",
	OpOr:               "Or",
	OpNot:              "Not",
	OpPlus:             "Plus",
	OpMinus:            "Minus",
	OpMultiply:         "Multiply",
	OpDivide:           "Divide",
	OpLike:             "Like",
	OpIn:               "In",
	OpConcat:           "Concat",
	OpAsc:              "Asc",
	OpDesc:             "Desc",
	OpLimit:            "Limit",
}

// String returns the operator name.
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsComparison reports whether the operator compares two operands.
func (o Operator) IsComparison() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanEqual, OpLessThan, OpLessThanEqual:
		return true
	}
	return false
}

// IsArithmetic reports whether the operator is an arithmetic operator.
func (o Operator) IsArithmetic() bool {
	switch o {
	case OpPlus, OpMinus, OpMultiply, OpDivide:
		return true
	}
	return false
}
