package ir

// TypeDef binds a unique type name to a struct type. A relation's row type
// must resolve, through a TypeDef, to exactly one StructType — every
// relation's row type resolves to a previously-registered type-def.
type TypeDef struct {
	Name string
	Type StructType
}

// TypeRegistry is an insertion-ordered, name-unique set of TypeDefs. It is
// owned by the translation Context (package compiler) but defined here so
// ir.Program and ir-level invariants can be checked without an import
// cycle back to compiler.
type TypeRegistry struct {
	order []string
	byName map[string]TypeDef
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]TypeDef)}
}

// Add registers a TypeDef. It returns false without mutating the registry
// if the name already exists — fresh-name uniqueness is enforced by the
// caller (compiler.Context), this is just the collision check.
func (r *TypeRegistry) Add(td TypeDef) bool {
	if _, ok := r.byName[td.Name]; ok {
		return false
	}
	r.byName[td.Name] = td
	r.order = append(r.order, td.Name)
	return true
}

// Lookup resolves a type name to its TypeDef.
func (r *TypeRegistry) Lookup(name string) (TypeDef, bool) {
	td, ok := r.byName[name]
	return td, ok
}

// All returns registered TypeDefs in declaration order.
func (r *TypeRegistry) All() []TypeDef {
	out := make([]TypeDef, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

// ResolveStruct follows a Type through NamedType indirection (at most one
// level — type-defs never nest in this core) down to its StructType.
func (r *TypeRegistry) ResolveStruct(t Type) (StructType, bool) {
	switch v := t.(type) {
	case StructType:
		return v, true
	case NamedType:
		td, ok := r.Lookup(v.Name)
		if !ok {
			return StructType{}, false
		}
		return td.Type, true
	default:
		return StructType{}, false
	}
}
