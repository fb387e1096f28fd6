package planner

import (
	"fmt"

	"mit.edu/dsg/godist/common"
)

// Expr represents a node in an expression tree attached to a plan node payload.
// The separator moves expressions around with their owning node and copies them into
// boundary nodes; it never evaluates them.
type Expr interface {
	// OutputType returns the type of value this expression produces.
	OutputType() common.Type

	// String returns a string representation of the expression.
	String() string
}

// ColumnValueExpr references a column of the input row by offset.
type ColumnValueExpr struct {
	fieldOffset int
	outputType  common.Type
	name        string
}

func NewColumnValueExpression(fieldOffset int, outputType common.Type, name string) *ColumnValueExpr {
	return &ColumnValueExpr{
		fieldOffset: fieldOffset,
		outputType:  outputType,
		name:        name,
	}
}

func (e *ColumnValueExpr) FieldOffset() int {
	return e.fieldOffset
}

func (e *ColumnValueExpr) OutputType() common.Type {
	return e.outputType
}

func (e *ColumnValueExpr) String() string {
	return e.name
}

type ConstantValueExpr struct {
	val common.Value
}

func NewConstantValueExpression(val common.Value) *ConstantValueExpr {
	return &ConstantValueExpr{val: val}
}

func (e *ConstantValueExpr) OutputType() common.Type {
	return e.val.Type()
}

func (e *ConstantValueExpr) String() string {
	return e.val.String()
}

type ComparisonType int

const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
)

func (c ComparisonType) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterThanOrEqual:
		return ">="
	case LessThanOrEqual:
		return "<="
	}
	return "???"
}

// ParseComparisonType maps an operator token back to its ComparisonType.
func ParseComparisonType(op string) (ComparisonType, bool) {
	switch op {
	case "=", "==":
		return Equal, true
	case "!=", "<>":
		return NotEqual, true
	case ">":
		return GreaterThan, true
	case "<":
		return LessThan, true
	case ">=":
		return GreaterThanOrEqual, true
	case "<=":
		return LessThanOrEqual, true
	}
	return 0, false
}

type ComparisonExpression struct {
	left     Expr
	right    Expr
	compType ComparisonType
}

func NewComparisonExpression(left Expr, right Expr, compType ComparisonType) *ComparisonExpression {
	return &ComparisonExpression{
		left:     left,
		right:    right,
		compType: compType,
	}
}

func (e *ComparisonExpression) OutputType() common.Type {
	return common.IntType
}

func (e *ComparisonExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left.String(), e.compType.String(), e.right.String())
}

type BinaryLogicType int

const (
	And BinaryLogicType = iota
	Or
)

func (l BinaryLogicType) String() string {
	switch l {
	case And:
		return "AND"
	case Or:
		return "OR"
	}
	return "???"
}

type BinaryLogicExpression struct {
	left      Expr
	right     Expr
	logicType BinaryLogicType
}

func NewBinaryLogicExpression(left Expr, right Expr, logicType BinaryLogicType) *BinaryLogicExpression {
	return &BinaryLogicExpression{
		left:      left,
		right:     right,
		logicType: logicType,
	}
}

func (e *BinaryLogicExpression) OutputType() common.Type {
	return common.IntType
}

func (e *BinaryLogicExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left.String(), e.logicType.String(), e.right.String())
}
