package wireform_test

import (
	"testing"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/tokentest"
)

func asInt64() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return wireform.AsInt64(d) }
}

func asString() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return wireform.AsString(d) }
}

func TestAsInt64_WidensAllIntegerShapes(t *testing.T) {
	tokentest.AssertDecode(t, asInt64(), int64(7), tokentest.U16(7))
	tokentest.AssertDecode(t, asInt64(), int64(-3), tokentest.I8(-3))
	tokentest.AssertDecode(t, asInt64(), int64(1<<40), tokentest.U64(1<<40))
}

func TestAsInt64_RejectsOutOfRange(t *testing.T) {
	err := tokentest.AssertDecodeErr(t, asInt64(), tokentest.U64(1<<63))
	if !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}

func TestAsUint64_RejectsNegative(t *testing.T) {
	err := tokentest.AssertDecodeErr(t, wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsUint64(d)
	}), tokentest.I32(-1))
	if !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("expected invalid_value, got %v", err)
	}
}

func TestAsString_AcceptsChar(t *testing.T) {
	tokentest.AssertDecode(t, asString(), "x", tokentest.Char('x'))
}

func TestAsChar_FromSingleRuneString(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsChar(d)
	})
	tokentest.AssertDecode(t, target, 'é', tokentest.Str("é"))

	err := tokentest.AssertDecodeErr(t, target, tokentest.Str("ab"))
	if !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("expected invalid_value for a two-rune string, got %v", err)
	}
}

func TestAsBool_WrongShape(t *testing.T) {
	err := tokentest.AssertDecodeErr(t, wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsBool(d)
	}), tokentest.Str("yes"))
	it, ok := wireform.AsIssue(err)
	if !ok || it.Code != wireform.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if it.Got != wireform.ShapeStr || it.Expected != "a bool" {
		t.Fatalf("unexpected diagnostic detail: %+v", it)
	}
}

func TestAsOption(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		v, ok, err := wireform.AsOption(d, asString())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return v, nil
	})
	tokentest.AssertDecode(t, target, "x", tokentest.Option(true), tokentest.Str("x"))
	tokentest.AssertDecode(t, target, nil, tokentest.Option(false))
}

func TestSliceOf_DrainsToExhaustion(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.SliceOf(d, asInt64())
	})
	tokentest.AssertDecode(t, target, []any{int64(1), int64(2), int64(3)},
		tokentest.SeqStart(3), tokentest.I32(1), tokentest.I32(2), tokentest.I32(3), tokentest.SeqEnd())
	tokentest.AssertDecode(t, target, []any{}, tokentest.SeqStart(0), tokentest.SeqEnd())
}

func TestStringMapOf(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.StringMapOf(d, asInt64())
	})
	tokentest.AssertDecode(t, target, map[string]any{"a": int64(1), "b": int64(2)},
		tokentest.MapStart(2),
		tokentest.Str("a"), tokentest.I32(1),
		tokentest.Str("b"), tokentest.I32(2),
		tokentest.MapEnd())
}

func TestIgnore_ConsumesExactlyOneValue(t *testing.T) {
	tokentest.AssertDecode(t, wireform.Ignore(), nil,
		tokentest.MapStart(1),
		tokentest.Str("k"),
		tokentest.StructVariantStart("E", "V", 0, 1),
		tokentest.Str("a"), tokentest.SeqStart(1), tokentest.I32(1), tokentest.SeqEnd(),
		tokentest.StructVariantEnd(),
		tokentest.MapEnd())
}

func TestEncodableValues(t *testing.T) {
	tokentest.AssertEncode(t, wireform.Some(wireform.I32(5)),
		tokentest.Option(true), tokentest.I32(5))
	tokentest.AssertEncode(t, wireform.None(), tokentest.Option(false))
	tokentest.AssertEncode(t, wireform.Seq(wireform.Bool(true), wireform.Unit()),
		tokentest.SeqStart(2), tokentest.Bool(true), tokentest.Unit(), tokentest.SeqEnd())
	tokentest.AssertEncode(t,
		wireform.MapOf(wireform.Entry{Key: wireform.Str("k"), Value: wireform.F64(1.5)}),
		tokentest.MapStart(1), tokentest.Str("k"), tokentest.F64(1.5), tokentest.MapEnd())
	tokentest.AssertEncode(t, wireform.Bytes([]byte{1, 2}), tokentest.Bytes("\x01\x02"))
}
