package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"mit.edu/dsg/godist/common"
)

// TestExprRendering checks the text that predicates contribute to explain output.
func TestExprRendering(t *testing.T) {
	id := NewColumnValueExpression(0, common.IntType, "id")
	name := NewColumnValueExpression(1, common.StringType, "name")
	const1 := NewConstantValueExpression(common.NewIntValue(1))
	alice := NewConstantValueExpression(common.NewStringValue("alice"))
	null := NewConstantValueExpression(common.NewNullValue(common.IntType))

	tests := []struct {
		name string
		expr Expr
		want string
		typ  common.Type
	}{
		{"column", id, "id", common.IntType},
		{"string constant", alice, "'alice'", common.StringType},
		{"null constant", null, "NULL", common.IntType},
		{"comparison", NewComparisonExpression(id, const1, GreaterThanOrEqual), "(id >= 1)", common.IntType},
		{"nested logic", NewBinaryLogicExpression(
			NewComparisonExpression(name, alice, Equal),
			NewBinaryLogicExpression(
				NewComparisonExpression(id, const1, NotEqual),
				NewComparisonExpression(id, null, LessThan), Or),
			And), "((name = 'alice') AND ((id != 1) OR (id < NULL)))", common.IntType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
			assert.Equal(t, tt.typ, tt.expr.OutputType())
		})
	}
	assert.Equal(t, 1, NewColumnValueExpression(1, common.StringType, "name").FieldOffset())
}

func TestParseComparisonType(t *testing.T) {
	for c := Equal; c <= LessThanOrEqual; c++ {
		got, ok := ParseComparisonType(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	got, ok := ParseComparisonType("<>")
	assert.True(t, ok)
	assert.Equal(t, NotEqual, got)
	_, ok = ParseComparisonType("~")
	assert.False(t, ok)
}
