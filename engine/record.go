package engine

import "math/big"

// Record is the closed variant of values the engine exchanges in commands
// and change notifications: booleans, signed/arbitrary-precision integers,
// strings, tagged structs, and tuples. Modeled as a tagged sum type via an
// unexported marker method, following the shape of
// wbrown-janus-datalog's datalog.Value family but closed rather than an
// open `interface{}`, since this core's wire vocabulary is fixed.
type Record interface {
	isRecord()
}

// Bool is a boolean record.
type Bool bool

func (Bool) isRecord() {}

// Int64 is a signed integer record.
type Int64 int64

func (Int64) isRecord() {}

// BigInt is an arbitrary-precision integer record.
type BigInt struct{ *big.Int }

func (BigInt) isRecord() {}

// NewBigInt wraps an int64 as a BigInt record.
func NewBigInt(v int64) BigInt { return BigInt{big.NewInt(v)} }

// Str is a string record.
type Str string

func (Str) isRecord() {}

// StructField is one named field inside a Struct record, in declaration
// order — order is load-bearing, it is the canonical tuple order.
type StructField struct {
	Name  string
	Value Record
}

// Struct is a tagged, ordered-field record — the wire shape of every IR
// struct-typed row and of the ddlog_std::Some/None nullable wrapper.
type Struct struct {
	Tag    string
	Fields []StructField
}

func (Struct) isRecord() {}

// FieldByName returns the named field's value and whether it was found.
func (s Struct) FieldByName(name string) (Record, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Tuple is an ordered, untagged sequence of records — used for composite
// primary-key match-expressions.
type Tuple struct {
	Elements []Record
}

func (Tuple) isRecord() {}
