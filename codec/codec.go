// Package codec converts between client-facing SQL scalars and the
// engine's record wire format, including the ddlog_std Some/None
// nullable wrapper convention.
package codec

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

// SomeTag and NoneTag are the fully-qualified nullable wrapper tags; the
// wrapper is recognized by tag name, which is part of the engine's
// external record contract.
const (
	SomeTag = "ddlog_std::Some"
	NoneTag = "ddlog_std::None"
)

// EncodeParam converts a client-bound parameter value into an engine
// record for a column of IR type t, applying the nullable wrapper when
// nullable is true. v is the already-typed client value (bool, int32,
// int64, string, *big.Int, or nil for NULL) — no further narrowing
// happens here, since a bound parameter is assumed to already carry the
// client's declared width.
func EncodeParam(t ir.Type, nullable bool, v any) (engine.Record, error) {
	if v == nil {
		if !nullable {
			return nil, newConversionError(t.String(), fmt.Errorf("%w: NULL for non-nullable column", ErrTypeMismatch))
		}
		return engine.Struct{Tag: NoneTag}, nil
	}
	inner, err := encodeScalar(t, v)
	if err != nil {
		return nil, err
	}
	if nullable {
		return wrapSome(inner), nil
	}
	return inner, nil
}

func wrapSome(inner engine.Record) engine.Record {
	return engine.Struct{Tag: SomeTag, Fields: []engine.StructField{{Name: "0", Value: inner}}}
}

func encodeScalar(t ir.Type, v any) (engine.Record, error) {
	switch tt := t.(type) {
	case ir.BoolType:
		b, ok := v.(bool)
		if !ok {
			return nil, newConversionError("Bool", fmt.Errorf("%w: got %T", ErrTypeMismatch, v))
		}
		return engine.Bool(b), nil

	case ir.SignedType:
		n, err := asInt64(v)
		if err != nil {
			return nil, newConversionError(tt.String(), err)
		}
		return engine.Int64(n), nil

	case ir.ArbitraryIntType:
		if b, ok := v.(*big.Int); ok {
			return engine.BigInt{Int: b}, nil
		}
		n, err := asInt64(v)
		if err != nil {
			return nil, newConversionError("ArbitraryInt", err)
		}
		return engine.NewBigInt(n), nil

	case ir.StringType:
		s, ok := v.(string)
		if !ok {
			return nil, newConversionError("String", fmt.Errorf("%w: got %T", ErrTypeMismatch, v))
		}
		return engine.Str(s), nil

	default:
		return nil, newConversionError(t.String(), fmt.Errorf("%w: unsupported IR type", ErrTypeMismatch))
	}
}

func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
	}
}

func fitsInt32(n int64) bool {
	return n >= int32Min && n <= int32Max
}

const (
	int32Min = -1 << 31
	int32Max = 1<<31 - 1
)

// EncodeLiteral converts a parsed SQL literal token into an engine record
// for column type t. Unlike EncodeParam, a numeric literal bound for a
// Signed column is explicitly narrow-checked against the client's 32-bit
// Integer domain before being widened into the engine's 64-bit storage
// slot — an overflow is rejected, never truncated silently.
func EncodeLiteral(t ir.Type, nullable bool, lit *sqlast.Literal) (engine.Record, error) {
	if lit.Kind == sqlast.LiteralNull {
		if !nullable {
			return nil, newConversionError(t.String(), fmt.Errorf("%w: NULL for non-nullable column", ErrTypeMismatch))
		}
		return engine.Struct{Tag: NoneTag}, nil
	}

	v, err := literalScalarValue(t, lit)
	if err != nil {
		return nil, err
	}
	inner, err := encodeScalar(t, v)
	if err != nil {
		return nil, err
	}
	if nullable {
		return wrapSome(inner), nil
	}
	return inner, nil
}

func literalScalarValue(t ir.Type, lit *sqlast.Literal) (any, error) {
	switch tt := t.(type) {
	case ir.BoolType:
		if lit.Kind != sqlast.LiteralBool {
			return nil, newConversionError("Bool", fmt.Errorf("%w: not a boolean literal", ErrTypeMismatch))
		}
		return lit.Text == "true", nil

	case ir.SignedType:
		if lit.Kind != sqlast.LiteralNumber {
			return nil, newConversionError(tt.String(), fmt.Errorf("%w: not a numeric literal", ErrTypeMismatch))
		}
		n, err := strconv.ParseInt(lit.Text, 10, 64)
		if err != nil {
			return nil, newConversionError(tt.String(), err)
		}
		if !fitsInt32(n) {
			return nil, newConversionError(tt.String(), fmt.Errorf("%w: %d does not fit the 32-bit Integer domain", ErrOverflow, n))
		}
		return n, nil

	case ir.ArbitraryIntType:
		if lit.Kind != sqlast.LiteralNumber {
			return nil, newConversionError("ArbitraryInt", fmt.Errorf("%w: not a numeric literal", ErrTypeMismatch))
		}
		n, ok := new(big.Int).SetString(lit.Text, 10)
		if !ok {
			return nil, newConversionError("ArbitraryInt", fmt.Errorf("%w: %q is not a valid integer literal", ErrTypeMismatch, lit.Text))
		}
		return n, nil

	case ir.StringType:
		if lit.Kind != sqlast.LiteralString {
			return nil, newConversionError("String", fmt.Errorf("%w: not a string literal", ErrTypeMismatch))
		}
		return lit.Text, nil

	default:
		return nil, newConversionError(t.String(), fmt.Errorf("%w: unsupported IR type", ErrTypeMismatch))
	}
}

// DecodeValue converts an engine record read back from a materialized
// view into a client-facing Go value for column type t, unwrapping the
// nullable convention when nullable is true. It returns a nil any for a
// decoded NULL.
func DecodeValue(t ir.Type, nullable bool, rec engine.Record) (any, error) {
	if nullable {
		if s, ok := rec.(engine.Struct); ok {
			switch s.Tag {
			case NoneTag:
				return nil, nil
			case SomeTag:
				inner, ok := s.FieldByName("0")
				if !ok {
					return nil, newConversionError(t.String(), fmt.Errorf("%w: Some wrapper missing its inner field", ErrTypeMismatch))
				}
				return decodeScalar(t, inner)
			}
			// Any other top-level struct decodes as the plain value.
		}
	}
	return decodeScalar(t, rec)
}

func decodeScalar(t ir.Type, rec engine.Record) (any, error) {
	switch tt := t.(type) {
	case ir.BoolType:
		b, ok := rec.(engine.Bool)
		if !ok {
			return nil, newConversionError("Bool", fmt.Errorf("%w: got %T", ErrTypeMismatch, rec))
		}
		return bool(b), nil

	case ir.SignedType:
		n, ok := rec.(engine.Int64)
		if !ok {
			return nil, newConversionError(tt.String(), fmt.Errorf("%w: got %T", ErrTypeMismatch, rec))
		}
		if !fitsInt32(int64(n)) {
			return nil, newConversionError(tt.String(), fmt.Errorf("%w: %d does not fit the client Integer width", ErrOverflow, int64(n)))
		}
		return int32(n), nil

	case ir.ArbitraryIntType:
		b, ok := rec.(engine.BigInt)
		if !ok {
			return nil, newConversionError("ArbitraryInt", fmt.Errorf("%w: got %T", ErrTypeMismatch, rec))
		}
		if !b.IsInt64() {
			return nil, newConversionError("ArbitraryInt", fmt.Errorf("%w: value does not fit int64", ErrOverflow))
		}
		return b.Int64(), nil

	case ir.StringType:
		s, ok := rec.(engine.Str)
		if !ok {
			return nil, newConversionError("String", fmt.Errorf("%w: got %T", ErrTypeMismatch, rec))
		}
		return string(s), nil

	default:
		return nil, newConversionError(t.String(), fmt.Errorf("%w: unsupported IR type", ErrTypeMismatch))
	}
}
