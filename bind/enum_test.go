package bind_test

import (
	"testing"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/bind"
	"github.com/reoring/wireform/tokentest"
)

func shapeEnum(tagging bind.Tagging) bind.Enum {
	return bind.Enum{
		Name:    "Shape",
		Tagging: tagging,
		// Consulted only by the tagged forms.
		TagField:     "type",
		PayloadField: "value",
		Variants: []bind.Variant{
			{Name: "Empty", Index: 0, Shape: wireform.ShapeUnitVariant},
			{Name: "Radius", Index: 1, Shape: wireform.ShapeNewtypeVariant, Payload: asInt64()},
			{Name: "Pair", Index: 2, Shape: wireform.ShapeTupleVariant, Elems: []wireform.DecodeFunc{asInt64(), asInt64()}},
			{Name: "Rect", Index: 3, Shape: wireform.ShapeStructVariant, Struct: &bind.Struct{
				Name: "Rect",
				Fields: []bind.Field{
					{Name: "w", Decode: asInt64()},
					{Name: "h", Decode: asInt64()},
				},
			}},
		},
	}
}

func TestEnum_External_DecodeEachKind(t *testing.T) {
	e := shapeEnum(bind.External)

	name, v, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.UnitVariant("Shape", "Empty", 0),
	}))
	if err != nil || name != "Empty" || v != nil {
		t.Fatalf("unit: %s/%v/%v", name, v, err)
	}

	name, v, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.NewtypeVariant("Shape", "Radius", 1), tokentest.U8(4),
	}))
	if err != nil || name != "Radius" || v != int64(4) {
		t.Fatalf("newtype: %s/%v/%v", name, v, err)
	}

	name, v, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.TupleVariantStart("Shape", "Pair", 2, 2),
		tokentest.I32(1), tokentest.I32(2),
		tokentest.TupleVariantEnd(),
	}))
	if err != nil || name != "Pair" {
		t.Fatalf("tuple: %s/%v", name, err)
	}
	elems := v.([]any)
	if elems[0] != int64(1) || elems[1] != int64(2) {
		t.Fatalf("tuple payload: %#v", elems)
	}

	name, v, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.StructVariantStart("Shape", "Rect", 3, 2),
		tokentest.Str("w"), tokentest.I32(3),
		tokentest.Str("h"), tokentest.I32(4),
		tokentest.StructVariantEnd(),
	}))
	if err != nil || name != "Rect" {
		t.Fatalf("struct: %s/%v", name, err)
	}
	fields := v.(map[string]any)
	if fields["w"] != int64(3) || fields["h"] != int64(4) {
		t.Fatalf("struct payload: %#v", fields)
	}
}

func TestEnum_External_UnknownVariant(t *testing.T) {
	e := shapeEnum(bind.External)
	_, _, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.UnitVariant("Shape", "Blob", 9),
	}))
	it, ok := wireform.AsIssue(err)
	if !ok || it.Code != wireform.CodeUnknownVariant || it.Name != "Blob" {
		t.Fatalf("expected unknown_variant for Blob, got %v", err)
	}
	if len(it.Known) != 4 {
		t.Fatalf("declared set missing from diagnostic: %+v", it)
	}
}

func TestEnum_External_EncodeEachKind(t *testing.T) {
	e := shapeEnum(bind.External)

	enc := func(vv bind.VariantValue, expected ...tokentest.Token) {
		t.Helper()
		v := wireform.EncodableFunc(func(w wireform.Encoder) error { return e.Encode(w, vv) })
		tokentest.AssertEncode(t, v, expected...)
	}

	enc(bind.VariantValue{Name: "Empty"},
		tokentest.UnitVariant("Shape", "Empty", 0))
	enc(bind.VariantValue{Name: "Radius", Value: wireform.I32(4)},
		tokentest.NewtypeVariant("Shape", "Radius", 1), tokentest.I32(4))
	enc(bind.VariantValue{Name: "Pair", Elems: []wireform.Encodable{wireform.I32(1), wireform.I32(2)}},
		tokentest.TupleVariantStart("Shape", "Pair", 2, 2),
		tokentest.I32(1), tokentest.I32(2),
		tokentest.TupleVariantEnd())
	enc(bind.VariantValue{Name: "Rect", Fields: []bind.FieldValue{
		{Name: "w", Value: wireform.I32(3)},
		{Name: "h", Value: wireform.I32(4)},
	}},
		tokentest.StructVariantStart("Shape", "Rect", 3, 2),
		tokentest.Str("w"), tokentest.I32(3),
		tokentest.Str("h"), tokentest.I32(4),
		tokentest.StructVariantEnd())
}

func TestEnum_Internal_Decode(t *testing.T) {
	e := shapeEnum(bind.Internal)
	name, v, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.StructStart("Shape", 3),
		tokentest.Str("type"), tokentest.Str("Rect"),
		tokentest.Str("w"), tokentest.I32(3),
		tokentest.Str("h"), tokentest.I32(4),
		tokentest.StructEnd(),
	}))
	if err != nil || name != "Rect" {
		t.Fatalf("resolve: %s/%v", name, err)
	}
	fields := v.(map[string]any)
	if fields["w"] != int64(3) || fields["h"] != int64(4) {
		t.Fatalf("payload: %#v", fields)
	}
}

func TestEnum_Internal_UnitVariantIgnoresNothing(t *testing.T) {
	e := shapeEnum(bind.Internal)
	name, _, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.StructStart("Shape", 1),
		tokentest.Str("type"), tokentest.Str("Empty"),
		tokentest.StructEnd(),
	}))
	if err != nil || name != "Empty" {
		t.Fatalf("resolve: %s/%v", name, err)
	}
}

func TestEnum_Internal_EncodeFlattensTag(t *testing.T) {
	e := shapeEnum(bind.Internal)
	v := wireform.EncodableFunc(func(w wireform.Encoder) error {
		return e.Encode(w, bind.VariantValue{Name: "Rect", Fields: []bind.FieldValue{
			{Name: "w", Value: wireform.I32(3)},
			{Name: "h", Value: wireform.I32(4)},
		}})
	})
	tokentest.AssertEncode(t, v,
		tokentest.StructStart("Shape", 3),
		tokentest.Str("type"), tokentest.Str("Rect"),
		tokentest.Str("w"), tokentest.I32(3),
		tokentest.Str("h"), tokentest.I32(4),
		tokentest.StructEnd())
}

func TestEnum_Internal_EncodeRejectsNewtype(t *testing.T) {
	e := shapeEnum(bind.Internal)
	v := wireform.EncodableFunc(func(w wireform.Encoder) error {
		return e.Encode(w, bind.VariantValue{Name: "Radius", Value: wireform.I32(4)})
	})
	enc := tokentest.NewEncoder(nil)
	if err := v.Encode(enc); err == nil {
		t.Fatalf("a newtype payload cannot carry an internal tag")
	}
}

func TestEnum_Adjacent_DecodeBothFieldOrders(t *testing.T) {
	e := shapeEnum(bind.Adjacent)

	name, v, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.StructStart("Shape", 2),
		tokentest.Str("type"), tokentest.Str("Radius"),
		tokentest.Str("value"), tokentest.U8(4),
		tokentest.StructEnd(),
	}))
	if err != nil || name != "Radius" || v != int64(4) {
		t.Fatalf("tag first: %s/%v/%v", name, v, err)
	}

	name, v, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.StructStart("Shape", 2),
		tokentest.Str("value"), tokentest.U8(4),
		tokentest.Str("type"), tokentest.Str("Radius"),
		tokentest.StructEnd(),
	}))
	if err != nil || name != "Radius" || v != int64(4) {
		t.Fatalf("payload first: %s/%v/%v", name, v, err)
	}
}

func TestEnum_Adjacent_Encode(t *testing.T) {
	e := shapeEnum(bind.Adjacent)

	unit := wireform.EncodableFunc(func(w wireform.Encoder) error {
		return e.Encode(w, bind.VariantValue{Name: "Empty"})
	})
	tokentest.AssertEncode(t, unit,
		tokentest.StructStart("Shape", 1),
		tokentest.Str("type"), tokentest.Str("Empty"),
		tokentest.StructEnd())

	newtype := wireform.EncodableFunc(func(w wireform.Encoder) error {
		return e.Encode(w, bind.VariantValue{Name: "Radius", Value: wireform.I32(4)})
	})
	tokentest.AssertEncode(t, newtype,
		tokentest.StructStart("Shape", 2),
		tokentest.Str("type"), tokentest.Str("Radius"),
		tokentest.Str("value"), tokentest.I32(4),
		tokentest.StructEnd())
}

func TestEnum_Untagged_DeclarationOrder(t *testing.T) {
	e := bind.Enum{
		Name:    "Num",
		Tagging: bind.Untagged,
		Variants: []bind.Variant{
			{Name: "A", Shape: wireform.ShapeStructVariant, Struct: &bind.Struct{
				Name:    "A",
				Unknown: bind.UnknownDeny,
				Fields:  []bind.Field{{Name: "a", Decode: asInt64()}},
			}},
			{Name: "B", Shape: wireform.ShapeStructVariant, Struct: &bind.Struct{
				Name:    "B",
				Unknown: bind.UnknownDeny,
				Fields:  []bind.Field{{Name: "b", Decode: asInt64()}},
			}},
			{Name: "C", Shape: wireform.ShapeUnitVariant},
		},
	}

	name, _, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.MapStart(1), tokentest.Str("a"), tokentest.U8(1), tokentest.MapEnd(),
	}))
	if err != nil || name != "A" {
		t.Fatalf("{a:1} must resolve to A: %s/%v", name, err)
	}

	name, _, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{
		tokentest.MapStart(1), tokentest.Str("b"), tokentest.U8(1), tokentest.MapEnd(),
	}))
	if err != nil || name != "B" {
		t.Fatalf("{b:1} must resolve to B: %s/%v", name, err)
	}

	// A trailing unit variant stays strict: it must not swallow arbitrary
	// non-unit input.
	name, _, err = e.Decode(tokentest.NewDecoder([]tokentest.Token{tokentest.Unit()}))
	if err != nil || name != "C" {
		t.Fatalf("unit must resolve to C: %s/%v", name, err)
	}
	if _, _, err := e.Decode(tokentest.NewDecoder([]tokentest.Token{tokentest.Bool(true)})); err == nil {
		t.Fatalf("bool input must not resolve to any variant")
	}
}

func TestEnum_Untagged_Encode(t *testing.T) {
	e := shapeEnum(bind.Untagged)
	v := wireform.EncodableFunc(func(w wireform.Encoder) error {
		return e.Encode(w, bind.VariantValue{Name: "Radius", Value: wireform.I32(4)})
	})
	tokentest.AssertEncode(t, v, tokentest.I32(4))
}
