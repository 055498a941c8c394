package content_test

import (
	"strconv"
	"testing"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/content"
	"github.com/reoring/wireform/tokentest"
)

func asInt64() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return wireform.AsInt64(d) }
}

// Buffering a stream and replaying the buffer must be call-for-call
// indistinguishable from the original stream.
func TestBufferThenReplayIsLossless(t *testing.T) {
	tokens := []tokentest.Token{
		tokentest.MapStart(3),
		tokentest.Str("nums"),
		tokentest.SeqStart(2), tokentest.I32(1), tokentest.U64(2), tokentest.SeqEnd(),
		tokentest.Str("opt"),
		tokentest.Option(true), tokentest.F64(2.5),
		tokentest.Str("raw"),
		tokentest.Bytes("xy"),
		tokentest.MapEnd(),
	}
	dec := tokentest.NewDecoder(tokens)
	buf, err := content.FromDecoder(dec)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	if dec.Remaining() != 0 {
		t.Fatalf("buffering left %d tokens unconsumed", dec.Remaining())
	}
	tokentest.AssertEncode(t, buf, tokens...)
}

func TestBufferCopiesBytes(t *testing.T) {
	raw := []byte{1, 2, 3}
	dec := tokentest.NewDecoder([]tokentest.Token{tokentest.Bytes(string(raw))})
	buf, err := content.FromDecoder(dec)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	got, err := wireform.AsBytes(content.NewDecoder(buf))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	got[0] = 9
	again, err := wireform.AsBytes(content.NewDecoder(buf))
	if err != nil {
		t.Fatalf("second replay: %v", err)
	}
	if again[0] != 1 {
		t.Fatalf("buffered bytes were aliased by the first replay")
	}
}

func TestBufferRejectsVariants(t *testing.T) {
	dec := tokentest.NewDecoder([]tokentest.Token{tokentest.UnitVariant("E", "A", 0)})
	if _, err := content.FromDecoder(dec); err == nil {
		t.Fatalf("expected an error buffering an externally tagged variant")
	}
}

func TestBufferFlattensNewtype(t *testing.T) {
	dec := tokentest.NewDecoder([]tokentest.Token{
		tokentest.NewtypeStruct("Meters"), tokentest.I64(5),
	})
	buf, err := content.FromDecoder(dec)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	v, err := asInt64()(content.NewDecoder(buf))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if v != int64(5) {
		t.Fatalf("got %v, want 5", v)
	}
}

func TestReplay_BareValueIntoOptionTarget(t *testing.T) {
	d := content.NewDecoder(content.U8(7))
	v, ok, err := wireform.AsOption(d, asInt64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ok || v != int64(7) {
		t.Fatalf("bare value should replay as a present optional, got %v/%t", v, ok)
	}

	_, ok, err = wireform.AsOption(content.NewDecoder(content.None()), asInt64())
	if err != nil {
		t.Fatalf("decode none: %v", err)
	}
	if ok {
		t.Fatalf("none replayed as present")
	}
}

func TestReplay_UnitAcceptsNone(t *testing.T) {
	if err := wireform.AsUnit(content.NewDecoder(content.None())); err != nil {
		t.Fatalf("none should satisfy a unit target: %v", err)
	}
}

func TestReplay_CursorEndEnforcesDrain(t *testing.T) {
	buf := content.Seq(content.U8(1), content.U8(2))
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeSeq(oneElementVisitor{})
	})
	_, err := target.Decode(content.NewDecoder(buf))
	if !wireform.IsCode(err, wireform.CodeInvalidLength) {
		t.Fatalf("expected invalid_length from an undrained cursor, got %v", err)
	}
}

type oneElementVisitor struct{ wireform.UnimplementedVisitor }

func (oneElementVisitor) Expecting() string { return "a sequence" }

func (oneElementVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	if _, _, err := sa.NextElement(wireform.Ignore()); err != nil {
		return nil, err
	}
	return nil, sa.End()
}

func TestReplay_ExhaustedCursorStaysExhausted(t *testing.T) {
	buf := content.Seq()
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeSeq(doubleQueryVisitor{})
	})
	if _, err := target.Decode(content.NewDecoder(buf)); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

type doubleQueryVisitor struct{ wireform.UnimplementedVisitor }

func (doubleQueryVisitor) Expecting() string { return "an empty sequence" }

func (doubleQueryVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	for i := 0; i < 2; i++ {
		_, ok, err := sa.NextElement(wireform.Ignore())
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, wireform.ErrCustom("exhausted cursor produced an element")
		}
	}
	return nil, sa.End()
}

func TestReplay_EnumConventions(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeEnum("E", []string{"A", "B"}, enumProbe{})
	})

	v, err := target.Decode(content.NewDecoder(content.Str("A")))
	if err != nil {
		t.Fatalf("unit variant: %v", err)
	}
	if v != "A:unit" {
		t.Fatalf("got %v", v)
	}

	buf := content.Map(content.Pair{Key: content.Str("B"), Value: content.U8(3)})
	v, err = target.Decode(content.NewDecoder(buf))
	if err != nil {
		t.Fatalf("newtype variant: %v", err)
	}
	if v != "B:3" {
		t.Fatalf("got %v", v)
	}

	two := content.Map(
		content.Pair{Key: content.Str("A"), Value: content.U8(1)},
		content.Pair{Key: content.Str("B"), Value: content.U8(2)},
	)
	if _, err := target.Decode(content.NewDecoder(two)); err == nil {
		t.Fatalf("a two-entry map must not name a variant")
	}
}

type enumProbe struct{ wireform.UnimplementedVisitor }

func (enumProbe) Expecting() string { return "variant of E" }

func (enumProbe) VisitEnum(ea wireform.EnumAccess) (any, error) {
	name, va, err := ea.Variant()
	if err != nil {
		return nil, err
	}
	if name == "A" {
		if err := va.UnitVariant(); err != nil {
			return nil, err
		}
		return "A:unit", nil
	}
	v, err := va.NewtypeVariant(asInt64())
	if err != nil {
		return nil, err
	}
	return "B:" + strconv.FormatInt(v.(int64), 10), nil
}
