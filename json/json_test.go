package json_test

import (
	"math"
	"reflect"
	"testing"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/bind"
	"github.com/reoring/wireform/json"
)

func asInt64() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return wireform.AsInt64(d) }
}

func asString() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return wireform.AsString(d) }
}

func marshal(t *testing.T, v wireform.Encodable) string {
	t.Helper()
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

func TestMarshal_Scalars(t *testing.T) {
	cases := []struct {
		v    wireform.Encodable
		want string
	}{
		{wireform.Bool(true), "true"},
		{wireform.I64(-42), "-42"},
		{wireform.U64(18446744073709551615), "18446744073709551615"},
		{wireform.F64(1.5), "1.5"},
		{wireform.Char('a'), `"a"`},
		{wireform.Str("he\"llo"), `"he\"llo"`},
		{wireform.Bytes([]byte{1, 2, 3}), `"AQID"`},
		{wireform.Unit(), "null"},
		{wireform.None(), "null"},
		{wireform.Some(wireform.I32(5)), "5"},
	}
	for _, c := range cases {
		if got := marshal(t, c.v); got != c.want {
			t.Fatalf("got %s, want %s", got, c.want)
		}
	}
}

func TestMarshal_RejectsNonFiniteFloats(t *testing.T) {
	if _, err := json.Marshal(wireform.F64(math.NaN())); !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("NaN: expected invalid_value, got %v", err)
	}
	if _, err := json.Marshal(wireform.F64(math.Inf(1))); !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("Inf: expected invalid_value, got %v", err)
	}
}

func TestMarshal_Compounds(t *testing.T) {
	got := marshal(t, wireform.Seq(wireform.I32(1), wireform.Str("a")))
	if got != `[1,"a"]` {
		t.Fatalf("seq: %s", got)
	}

	got = marshal(t, wireform.MapOf(
		wireform.Entry{Key: wireform.Str("k"), Value: wireform.Bool(false)},
		wireform.Entry{Key: wireform.I32(7), Value: wireform.Unit()},
	))
	if got != `{"k":false,"7":null}` {
		t.Fatalf("map: %s", got)
	}

	got = marshal(t, bind.StructValue("Point",
		bind.FieldValue{Name: "x", Value: wireform.I32(1)},
		bind.FieldValue{Name: "y", Value: wireform.I32(2)},
	))
	if got != `{"x":1,"y":2}` {
		t.Fatalf("struct: %s", got)
	}
}

func TestMarshal_MapKeyShapes(t *testing.T) {
	if _, err := json.Marshal(wireform.MapOf(
		wireform.Entry{Key: wireform.Bool(true), Value: wireform.I32(1)},
	)); !wireform.IsCode(err, wireform.CodeInvalidType) {
		t.Fatalf("bool key: expected invalid_type, got %v", err)
	}
}

func TestMarshal_VariantConventions(t *testing.T) {
	unit := wireform.EncodableFunc(func(e wireform.Encoder) error {
		return e.EncodeUnitVariant("E", "A", 0)
	})
	if got := marshal(t, unit); got != `"A"` {
		t.Fatalf("unit variant: %s", got)
	}

	newtype := wireform.EncodableFunc(func(e wireform.Encoder) error {
		return e.EncodeNewtypeVariant("E", "B", 1, wireform.I32(9))
	})
	if got := marshal(t, newtype); got != `{"B":9}` {
		t.Fatalf("newtype variant: %s", got)
	}

	tuple := wireform.EncodableFunc(func(e wireform.Encoder) error {
		se, err := e.EncodeTupleVariant("E", "C", 2, 2)
		if err != nil {
			return err
		}
		if err := se.EncodeElement(wireform.I32(1)); err != nil {
			return err
		}
		if err := se.EncodeElement(wireform.I32(2)); err != nil {
			return err
		}
		return se.End()
	})
	if got := marshal(t, tuple); got != `{"C":[1,2]}` {
		t.Fatalf("tuple variant: %s", got)
	}

	strct := wireform.EncodableFunc(func(e wireform.Encoder) error {
		se, err := e.EncodeStructVariant("E", "D", 3, 1)
		if err != nil {
			return err
		}
		if err := se.EncodeField("w", wireform.I32(3)); err != nil {
			return err
		}
		return se.End()
	})
	if got := marshal(t, strct); got != `{"D":{"w":3}}` {
		t.Fatalf("struct variant: %s", got)
	}
}

func TestUnmarshal_Numbers(t *testing.T) {
	v, err := json.Unmarshal([]byte("42"), asInt64())
	if err != nil || v != int64(42) {
		t.Fatalf("int: %v/%v", v, err)
	}

	f := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsFloat64(d)
	})
	v, err = json.Unmarshal([]byte("2.5"), f)
	if err != nil || v != 2.5 {
		t.Fatalf("float: %v/%v", v, err)
	}

	// Past the i64 range the token visits as u64.
	u := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsUint64(d)
	})
	v, err = json.Unmarshal([]byte("18446744073709551615"), u)
	if err != nil || v != uint64(18446744073709551615) {
		t.Fatalf("u64: %v/%v", v, err)
	}
}

func TestUnmarshal_OptionAndUnit(t *testing.T) {
	opt := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		v, ok, err := wireform.AsOption(d, asInt64())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return v, nil
	})
	v, err := json.Unmarshal([]byte("null"), opt)
	if err != nil || v != nil {
		t.Fatalf("null option: %v/%v", v, err)
	}
	v, err = json.Unmarshal([]byte("5"), opt)
	if err != nil || v != int64(5) {
		t.Fatalf("present option: %v/%v", v, err)
	}

	unit := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return nil, wireform.AsUnit(d)
	})
	if _, err := json.Unmarshal([]byte("null"), unit); err != nil {
		t.Fatalf("unit: %v", err)
	}
}

func TestUnmarshal_BytesAndChar(t *testing.T) {
	b := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsBytes(d)
	})
	v, err := json.Unmarshal([]byte(`"AQID"`), b)
	if err != nil || !reflect.DeepEqual(v, []byte{1, 2, 3}) {
		t.Fatalf("bytes: %v/%v", v, err)
	}
	if _, err := json.Unmarshal([]byte(`"!!!"`), b); !wireform.IsCode(err, wireform.CodeInvalidValue) {
		t.Fatalf("bad base64: expected invalid_value, got %v", err)
	}

	c := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsChar(d)
	})
	v, err = json.Unmarshal([]byte(`"é"`), c)
	if err != nil || v != 'é' {
		t.Fatalf("char: %v/%v", v, err)
	}
}

func TestUnmarshal_Struct(t *testing.T) {
	s := bind.Struct{
		Name: "Point",
		Fields: []bind.Field{
			{Name: "x", Decode: asInt64()},
			{Name: "y", Decode: asInt64()},
		},
	}
	v, err := json.Unmarshal([]byte(`{"y":2,"x":1,"extra":[true]}`), s.Target())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := v.(map[string]any)
	if got["x"] != int64(1) || got["y"] != int64(2) {
		t.Fatalf("fields: %#v", got)
	}
}

func TestUnmarshal_EnumConventions(t *testing.T) {
	e := bind.Enum{
		Name: "E",
		Variants: []bind.Variant{
			{Name: "A", Shape: wireform.ShapeUnitVariant},
			{Name: "B", Shape: wireform.ShapeNewtypeVariant, Payload: asInt64()},
			{Name: "C", Shape: wireform.ShapeTupleVariant, Elems: []wireform.DecodeFunc{asInt64(), asString()}},
			{Name: "D", Shape: wireform.ShapeStructVariant, Struct: &bind.Struct{
				Name:   "D",
				Fields: []bind.Field{{Name: "w", Decode: asInt64()}},
			}},
		},
	}
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		name, v, err := e.Decode(d)
		if err != nil {
			return nil, err
		}
		return []any{name, v}, nil
	})

	v, err := json.Unmarshal([]byte(`"A"`), target)
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if got := v.([]any); got[0] != "A" || got[1] != nil {
		t.Fatalf("unit: %#v", got)
	}

	v, err = json.Unmarshal([]byte(`{"B":9}`), target)
	if err != nil {
		t.Fatalf("newtype: %v", err)
	}
	if got := v.([]any); got[0] != "B" || got[1] != int64(9) {
		t.Fatalf("newtype: %#v", got)
	}

	v, err = json.Unmarshal([]byte(`{"C":[1,"a"]}`), target)
	if err != nil {
		t.Fatalf("tuple: %v", err)
	}
	if got := v.([]any); got[0] != "C" {
		t.Fatalf("tuple: %#v", got)
	}

	v, err = json.Unmarshal([]byte(`{"D":{"w":3}}`), target)
	if err != nil {
		t.Fatalf("struct: %v", err)
	}
	got := v.([]any)
	if got[0] != "D" || got[1].(map[string]any)["w"] != int64(3) {
		t.Fatalf("struct: %#v", got)
	}

	if _, err := json.Unmarshal([]byte(`"Z"`), target); !wireform.IsCode(err, wireform.CodeUnknownVariant) {
		t.Fatalf("undeclared: expected unknown_variant, got %v", err)
	}
}

func TestUnmarshal_TrailingData(t *testing.T) {
	if _, err := json.Unmarshal([]byte(`1 2`), asInt64()); err == nil {
		t.Fatalf("expected an error for trailing data")
	}
}

func TestUnmarshal_EndOfInput(t *testing.T) {
	_, err := json.Unmarshal([]byte(``), asInt64())
	if !wireform.IsCode(err, wireform.CodeEndOfInput) {
		t.Fatalf("expected end_of_input, got %v", err)
	}
}

func TestRoundTrip_UntaggedEnumOverJSON(t *testing.T) {
	e := bind.Enum{
		Name:    "Num",
		Tagging: bind.Untagged,
		Variants: []bind.Variant{
			{Name: "I", Shape: wireform.ShapeNewtypeVariant, Payload: asInt64()},
			{Name: "S", Shape: wireform.ShapeNewtypeVariant, Payload: asString()},
		},
	}
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		name, v, err := e.Decode(d)
		if err != nil {
			return nil, err
		}
		return []any{name, v}, nil
	})

	v, err := json.Unmarshal([]byte(`"hello"`), target)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := v.([]any); got[0] != "S" || got[1] != "hello" {
		t.Fatalf("got %#v", got)
	}
}
