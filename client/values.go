package client

import (
	"database/sql/driver"
	"fmt"
)

// toDriverValue narrows a decoded runtime value (bool, int32, int64,
// string, or nil — see codec.DecodeValue) into one of driver.Value's
// fixed set of wire types.
func toDriverValue(v any) (driver.Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return val, nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		return val, nil
	default:
		return nil, fmt.Errorf("client: unsupported result value type %T", v)
	}
}

// fromDriverValue widens a driver.Value bound by a caller back into the
// plain Go value codec.EncodeParam/EncodeLiteral expect. database/sql
// hands text placeholders through as []byte in some paths; this core's
// only string-shaped column type wants a Go string, never raw bytes.
func fromDriverValue(v driver.Value) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func driverValuesToAny(args []driver.Value) []any {
	out := make([]any, len(args))
	for i, v := range args {
		out[i] = fromDriverValue(v)
	}
	return out
}

// bindingsFromNamedValues converts database/sql's NamedValue slice into a
// positional binding list. Named parameters aren't part of sqlast's
// placeholder grammar, which only ever produces positional `?` bindings,
// so only Ordinal is consulted.
func bindingsFromNamedValues(args []driver.NamedValue) []any {
	bindings := make([]any, len(args))
	for _, a := range args {
		idx := a.Ordinal - 1
		if idx < 0 || idx >= len(bindings) {
			continue
		}
		bindings[idx] = fromDriverValue(a.Value)
	}
	return bindings
}
