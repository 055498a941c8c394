package tokentest_test

import (
	"strings"
	"testing"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/tokentest"
)

func TestEncoder_MatchesCallForCall(t *testing.T) {
	v := wireform.EncodableFunc(func(enc wireform.Encoder) error {
		se, err := enc.EncodeStruct("Point", 2)
		if err != nil {
			return err
		}
		if err := se.EncodeField("x", wireform.I32(1)); err != nil {
			return err
		}
		if err := se.EncodeField("y", wireform.I32(2)); err != nil {
			return err
		}
		return se.End()
	})
	tokentest.AssertEncode(t, v,
		tokentest.StructStart("Point", 2),
		tokentest.Str("x"), tokentest.I32(1),
		tokentest.Str("y"), tokentest.I32(2),
		tokentest.StructEnd())
}

func TestEncoder_MismatchShowsBothTokens(t *testing.T) {
	err := tokentest.AssertEncodeErr(t, wireform.Bool(true), tokentest.I32(1))
	if !strings.Contains(err.Error(), "got Bool(true), want I32(1)") {
		t.Fatalf("diagnostic should name both tokens: %v", err)
	}
}

func TestEncoder_CallPastEndFails(t *testing.T) {
	err := tokentest.AssertEncodeErr(t, wireform.Seq(wireform.Bool(true)), tokentest.SeqStart(1))
	if !strings.Contains(err.Error(), "past the end") {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

func TestEncoder_VariantTokens(t *testing.T) {
	unit := wireform.EncodableFunc(func(enc wireform.Encoder) error {
		return enc.EncodeUnitVariant("E", "A", 0)
	})
	tokentest.AssertEncode(t, unit, tokentest.UnitVariant("E", "A", 0))

	tuple := wireform.EncodableFunc(func(enc wireform.Encoder) error {
		se, err := enc.EncodeTupleVariant("E", "B", 1, 2)
		if err != nil {
			return err
		}
		if err := se.EncodeElement(wireform.U8(1)); err != nil {
			return err
		}
		if err := se.EncodeElement(wireform.U8(2)); err != nil {
			return err
		}
		return se.End()
	})
	tokentest.AssertEncode(t, tuple,
		tokentest.TupleVariantStart("E", "B", 1, 2),
		tokentest.U8(1), tokentest.U8(2),
		tokentest.TupleVariantEnd())
}

func TestDecoder_EndOfInput(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsInt64(d)
	})
	err := tokentest.AssertDecodeErr(t, target)
	if !wireform.IsCode(err, wireform.CodeEndOfInput) {
		t.Fatalf("expected end_of_input, got %v", err)
	}
}

func TestDecoder_ExhaustedCursorStaysExhausted(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeSeq(requeryVisitor{})
	})
	tokentest.AssertDecode(t, target, nil, tokentest.SeqStart(0), tokentest.SeqEnd())
}

// requeryVisitor asks an exhausted cursor again before calling End; both
// queries must report exhaustion without consuming anything.
type requeryVisitor struct{ wireform.UnimplementedVisitor }

func (requeryVisitor) Expecting() string { return "an empty sequence" }

func (requeryVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
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

func TestDecoder_EndWithPendingElements(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeSeq(earlyEndVisitor{})
	})
	err := tokentest.AssertDecodeErr(t, target,
		tokentest.SeqStart(2), tokentest.I32(1), tokentest.I32(2), tokentest.SeqEnd())
	if !strings.Contains(err.Error(), "still pending") {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

type earlyEndVisitor struct{ wireform.UnimplementedVisitor }

func (earlyEndVisitor) Expecting() string { return "a sequence" }

func (earlyEndVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	if _, _, err := sa.NextElement(wireform.Ignore()); err != nil {
		return nil, err
	}
	return nil, sa.End()
}

func TestDecoder_NewtypeStruct(t *testing.T) {
	target := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return d.DecodeNewtypeStruct("Meters", newtypeVisitor{})
	})
	tokentest.AssertDecode(t, target, int64(5),
		tokentest.NewtypeStruct("Meters"), tokentest.I64(5))
}

type newtypeVisitor struct{ wireform.UnimplementedVisitor }

func (newtypeVisitor) Expecting() string { return "a wrapped integer" }

func (newtypeVisitor) VisitNewtype(dec wireform.Decoder) (any, error) {
	return wireform.AsInt64(dec)
}

func TestDecoder_HumanReadableFlag(t *testing.T) {
	dec := tokentest.NewDecoder(nil)
	if !dec.IsHumanReadable() {
		t.Fatalf("default must be human-readable")
	}
	dec.HumanReadable = false
	if dec.IsHumanReadable() {
		t.Fatalf("flag override not honored")
	}
}
