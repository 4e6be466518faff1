package compiler

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

// columnTypeVocabulary maps each accepted DDL column type keyword to the
// atlas sql/schema type that describes it; a keyword not in this map is
// rejected with ErrUnknownType. The IR scalar a column lowers to is derived from the
// constructed schema.Type itself (see schemaToIRType), not chosen by a
// second, independently-maintained closure.
var columnTypeVocabulary = map[string]func(arg int) schema.Type{
	"boolean": func(int) schema.Type { return &schema.BoolType{T: "boolean"} },
	"integer": func(int) schema.Type { return &schema.IntegerType{T: "integer"} },
	"bigint":  func(int) schema.Type { return &schema.IntegerType{T: "bigint"} },
	"varchar": func(arg int) schema.Type { return &schema.StringType{T: "varchar", Size: arg} },
}

// lowerColumnType maps one DDL column's declared SQL type to an IR scalar
// type.
func lowerColumnType(col sqlast.ColumnDef, node sqlast.Node) (ir.Type, error) {
	mk, ok := columnTypeVocabulary[strings.ToLower(col.Type)]
	if !ok {
		return nil, newTranslationError("lower-column-type", node,
			fmt.Errorf("%w: %q", ErrUnknownType, col.Type))
	}
	irType, err := schemaToIRType(mk(col.Arg))
	if err != nil {
		return nil, newTranslationError("lower-column-type", node, err)
	}
	return irType, nil
}

// schemaToIRType inspects an atlas sql/schema column type and returns the
// IR scalar it lowers to. A VARCHAR's length argument is optional and
// plays no part in the lowering: String is String whether or not a
// length was declared, so Size is never consulted here.
func schemaToIRType(t schema.Type) (ir.Type, error) {
	switch st := t.(type) {
	case *schema.BoolType:
		return ir.BoolType{}, nil
	case *schema.IntegerType:
		switch st.T {
		case "integer":
			return ir.SignedType{Width: 64}, nil
		case "bigint":
			return ir.ArbitraryIntType{}, nil
		default:
			return nil, fmt.Errorf("%w: unrecognized integer width %q", ErrUnknownType, st.T)
		}
	case *schema.StringType:
		return ir.StringType{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported atlas schema type %T", ErrUnknownType, t)
	}
}
