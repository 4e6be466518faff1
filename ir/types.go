// Package ir defines the typed intermediate representation that the
// compiler emits and the runtime dispatches against: scalar and struct
// types, type-defs, relations, rules, and the expression language used in
// rule bodies and heads.
package ir

import "fmt"

// Type is the closed variant of IR types. Every concrete type below
// implements it via an unexported marker method so the set cannot be
// extended outside this package.
type Type interface {
	isType()
	String() string
}

// BoolType is the IR boolean scalar.
type BoolType struct{}

func (BoolType) isType()        {}
func (BoolType) String() string { return "Bool" }

// SignedType is a signed integer scalar of a fixed bit width.
type SignedType struct {
	Width int // e.g. 64 for SQL `integer`
}

func (SignedType) isType() {}
func (t SignedType) String() string {
	return fmt.Sprintf("Signed(%d)", t.Width)
}

// ArbitraryIntType is the IR arbitrary-precision integer scalar, used for
// SQL `bigint` columns.
type ArbitraryIntType struct{}

func (ArbitraryIntType) isType()        {}
func (ArbitraryIntType) String() string { return "ArbitraryInt" }

// StringType is the IR string scalar.
type StringType struct{}

func (StringType) isType()        {}
func (StringType) String() string { return "String" }

// NamedType references a previously-registered type-def by name. It
// resolves through a *TypeRegistry, never by storing the struct directly,
// so a forward reference (table referencing a view's row type, etc.) is
// representable even though this core never produces one.
type NamedType struct {
	Name string
}

func (NamedType) isType()        {}
func (t NamedType) String() string { return t.Name }

// Field is a single (name, type) pair within a StructType. Order is
// significant: it is the canonical tuple order used by the engine codec.
type Field struct {
	Name string
	Type Type
}

// StructType is an ordered, named-field record type. Field names must be
// unique within one struct; that invariant is enforced at construction by
// NewStructType, not re-checked by every caller.
type StructType struct {
	Fields []Field
}

func (StructType) isType() {}

func (t StructType) String() string {
	s := "{"
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	return s + "}"
}

// NewStructType builds a StructType from fields in declaration order,
// rejecting duplicate field names.
func NewStructType(fields []Field) (StructType, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return StructType{}, fmt.Errorf("ir: duplicate field name %q in struct type", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return StructType{Fields: append([]Field(nil), fields...)}, nil
}

// FieldByName returns the field with the given name and whether it exists.
func (t StructType) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
