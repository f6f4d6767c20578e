package types

import (
	"strconv"
	"strings"
)

// ValueKind identifies the runtime kind of a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindSequence
)

// String returns a human-readable kind name, used in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	default:
		return "null"
	}
}

// Value is the runtime datum produced by expression evaluation.
type Value interface {
	Kind() ValueKind
	String() string
}

// Null is the result of statements that produce no value
// (machining operations, loops, blocks).
type Null struct{}

// NullValue is the singleton Null.
var NullValue = Null{}

func (Null) Kind() ValueKind { return KindNull }
func (Null) String() string  { return "null" }

// String is a gcad string value.
type String string

func (String) Kind() ValueKind  { return KindString }
func (s String) String() string { return string(s) }

// Sequence is an ordered list of values, the loop-iteration type.
type Sequence []Value

func (Sequence) Kind() ValueKind { return KindSequence }

func (s Sequence) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (n Number) Kind() ValueKind { return KindNumber }

func (n Number) String() string {
	var s string
	if n.isInt {
		s = strconv.FormatInt(n.i, 10)
	} else {
		s = strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return s + n.unit.String()
}

// AsNumber returns v as a Number, or a TypeError naming the value kind.
func AsNumber(v Value) (Number, error) {
	if n, ok := v.(Number); ok {
		return n, nil
	}
	return Number{}, NewError(TypeError, "expected a number, got %s", v.Kind())
}

// AsString returns v as a string, or a TypeError naming the value kind.
func AsString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", NewError(TypeError, "expected a string, got %s", v.Kind())
}

// AsSequence returns v as a Sequence, or a TypeError naming the value kind.
func AsSequence(v Value) (Sequence, error) {
	if s, ok := v.(Sequence); ok {
		return s, nil
	}
	return nil, NewError(TypeError, "expected a sequence, got %s", v.Kind())
}
