package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/codec"
	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

func TestEncodeParamRoundTrip(t *testing.T) {
	t.Parallel()

	rec, err := codec.EncodeParam(ir.SignedType{Width: 64}, false, int32(42))
	require.NoError(t, err)
	assert.Equal(t, engine.Int64(42), rec)

	v, err := codec.DecodeValue(ir.SignedType{Width: 64}, false, rec)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
}

func TestEncodeParamNullableWrapsSome(t *testing.T) {
	t.Parallel()

	rec, err := codec.EncodeParam(ir.StringType{}, true, "hi")
	require.NoError(t, err)

	s, ok := rec.(engine.Struct)
	require.True(t, ok)
	assert.Equal(t, codec.SomeTag, s.Tag)

	v, err := codec.DecodeValue(ir.StringType{}, true, rec)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestEncodeParamNullableNil(t *testing.T) {
	t.Parallel()

	rec, err := codec.EncodeParam(ir.StringType{}, true, nil)
	require.NoError(t, err)

	s, ok := rec.(engine.Struct)
	require.True(t, ok)
	assert.Equal(t, codec.NoneTag, s.Tag)

	v, err := codec.DecodeValue(ir.StringType{}, true, rec)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEncodeParamNullRejectedForNonNullable(t *testing.T) {
	t.Parallel()

	_, err := codec.EncodeParam(ir.StringType{}, false, nil)
	require.Error(t, err)
}

func TestEncodeLiteralNarrowsOrRejects(t *testing.T) {
	t.Parallel()

	ok := &sqlast.Literal{Kind: sqlast.LiteralNumber, Text: "100"}
	rec, err := codec.EncodeLiteral(ir.SignedType{Width: 64}, false, ok)
	require.NoError(t, err)
	assert.Equal(t, engine.Int64(100), rec)

	overflow := &sqlast.Literal{Kind: sqlast.LiteralNumber, Text: "99999999999"}
	_, err = codec.EncodeLiteral(ir.SignedType{Width: 64}, false, overflow)
	require.Error(t, err)
}

func TestEncodeLiteralArbitraryIntWidensFreely(t *testing.T) {
	t.Parallel()

	big := &sqlast.Literal{Kind: sqlast.LiteralNumber, Text: "99999999999"}
	rec, err := codec.EncodeLiteral(ir.ArbitraryIntType{}, false, big)
	require.NoError(t, err)

	v, err := codec.DecodeValue(ir.ArbitraryIntType{}, false, rec)
	require.NoError(t, err)
	assert.EqualValues(t, 99999999999, v)
}

func TestDecodeValueTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := codec.DecodeValue(ir.StringType{}, false, engine.Bool(true))
	require.Error(t, err)
}
