package common

import (
	"fmt"
	"strconv"
)

type Type int8

const (
	// For uninitialized Values
	DefaultType Type = iota
	IntType
	StringType
)

func (t Type) String() string {
	switch t {
	case IntType:
		return "int"
	case StringType:
		return "string"
	}
	return "unknown"
}

// ObjectID is a unique identifier for a table in the database.
type ObjectID uint32

const InvalidObjectID ObjectID = 0

// PartitionID identifies one horizontally sharded slice of a table.
type PartitionID uint32

func (p PartitionID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// NodeID is the stable address of a node inside a plan tree arena.
type NodeID int32

// InvalidNodeID marks an absent node: the parent of a root, or an unset back-reference.
const InvalidNodeID NodeID = -1

func (n NodeID) IsValid() bool {
	return n >= 0
}

// Value is a constant carried by plan expressions. The separator never evaluates
// expressions; values exist so payloads can be copied and rendered.
type Value struct {
	t                Type
	null             bool
	underlyingInt    int64
	underlyingString string
}

// NewIntValue creates a new integer Value.
func NewIntValue(v int64) Value {
	return Value{t: IntType, underlyingInt: v}
}

// NewStringValue creates a new string Value.
func NewStringValue(v string) Value {
	return Value{t: StringType, underlyingString: v}
}

// NewNullValue creates a NULL Value of the given type.
func NewNullValue(t Type) Value {
	return Value{t: t, null: true}
}

// Type returns the type of the Value.
func (v Value) Type() Type {
	return v.t
}

// IsNull returns true if the Value is NULL.
func (v Value) IsNull() bool {
	return v.null
}

// IntValue returns the underlying (non-NULL) integer.
func (v Value) IntValue() int64 {
	Assert(v.t == IntType, "type mismatch in IntValue")
	Assert(!v.null, "accessing value of NULL int")
	return v.underlyingInt
}

// StringValue returns the underlying (non-NULL) string.
func (v Value) StringValue() string {
	Assert(v.t == StringType, "type mismatch in StringValue")
	Assert(!v.null, "accessing value of NULL string")
	return v.underlyingString
}

func (v Value) String() string {
	if v.null {
		return "NULL"
	}
	switch v.t {
	case IntType:
		return strconv.FormatInt(v.underlyingInt, 10)
	case StringType:
		return fmt.Sprintf("'%s'", v.underlyingString)
	}
	return "<nil>"
}
