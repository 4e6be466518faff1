package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/ir"
)

func TestNewStructTypeRejectsDuplicateFields(t *testing.T) {
	t.Parallel()

	_, err := ir.NewStructType([]ir.Field{
		{Name: "id", Type: ir.SignedType{Width: 64}},
		{Name: "id", Type: ir.StringType{}},
	})
	require.Error(t, err)
}

func TestStructTypeFieldOrderIsCanonical(t *testing.T) {
	t.Parallel()

	st, err := ir.NewStructType([]ir.Field{
		{Name: "id", Type: ir.SignedType{Width: 64}},
		{Name: "name", Type: ir.StringType{}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, fieldNames(st))
}

func TestTypeRegistryAddRejectsCollision(t *testing.T) {
	t.Parallel()

	reg := ir.NewTypeRegistry()
	st, err := ir.NewStructType([]ir.Field{{Name: "id", Type: ir.SignedType{Width: 64}}})
	require.NoError(t, err)

	assert.True(t, reg.Add(ir.TypeDef{Name: "Thosts", Type: st}))
	assert.False(t, reg.Add(ir.TypeDef{Name: "Thosts", Type: st}))
}

func TestTypeRegistryResolveStructThroughNamedType(t *testing.T) {
	t.Parallel()

	reg := ir.NewTypeRegistry()
	st, err := ir.NewStructType([]ir.Field{{Name: "id", Type: ir.SignedType{Width: 64}}})
	require.NoError(t, err)
	require.True(t, reg.Add(ir.TypeDef{Name: "Thosts", Type: st}))

	got, ok := reg.ResolveStruct(ir.NamedType{Name: "Thosts"})
	require.True(t, ok)
	assert.Equal(t, st, got)

	_, ok = reg.ResolveStruct(ir.NamedType{Name: "Tmissing"})
	assert.False(t, ok)
}

func TestRelationRegistryAddRejectsCollision(t *testing.T) {
	t.Parallel()

	reg := ir.NewRelationRegistry()
	rel := ir.Relation{Name: "Rhosts", Role: ir.Input, RowType: ir.NamedType{Name: "Thosts"}}

	assert.True(t, reg.Add(rel))
	assert.False(t, reg.Add(rel))

	got, ok := reg.Lookup("Rhosts")
	require.True(t, ok)
	assert.Equal(t, ir.Input, got.Role)
}

func TestProgramAccessorsPreserveOrder(t *testing.T) {
	t.Parallel()

	st, err := ir.NewStructType([]ir.Field{{Name: "id", Type: ir.SignedType{Width: 64}}})
	require.NoError(t, err)

	prog := &ir.Program{Declarations: []ir.Declaration{
		ir.TypeDefDecl{TypeDef: ir.TypeDef{Name: "Thosts", Type: st}},
		ir.RelationDecl{Relation: ir.Relation{Name: "Rhosts", Role: ir.Input, RowType: ir.NamedType{Name: "Thosts"}}},
		ir.RuleDecl{Rule: ir.Rule{
			Head: ir.Atom{Relation: "v_hosts", Row: ir.VarRef{Name: "v1", Typ: ir.NamedType{Name: "Thosts"}}},
			Body: []ir.BodyFragment{ir.LiteralFragment{Atom: ir.Atom{Relation: "Rhosts", Row: ir.VarRef{Name: "v1"}}}},
		}},
	}}

	assert.Len(t, prog.TypeDefs(), 1)
	assert.Len(t, prog.Relations(), 1)
	require.Len(t, prog.Rules(), 1)
	assert.Len(t, prog.RulesWithHead("v_hosts"), 1)
	assert.Empty(t, prog.RulesWithHead("nope"))
}

func fieldNames(st ir.StructType) []string {
	out := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		out[i] = f.Name
	}
	return out
}
