package content

import (
	wireform "github.com/reoring/wireform"
)

// FromDecoder drains one value from a live Decoder into an owned tree. The
// input must be self-describing; the tree is built in exactly one pass.
func FromDecoder(dec wireform.Decoder) (Value, error) {
	v, err := dec.DecodeAny(buildVisitor{})
	if err != nil {
		return Value{}, err
	}
	return v.(Value), nil
}

// target adapts FromDecoder to the Decodable cursor argument.
func target() wireform.Decodable {
	return wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return FromDecoder(d)
	})
}

type buildVisitor struct{}

func (buildVisitor) Expecting() string { return "any self-describing value" }

func (buildVisitor) VisitBool(v bool) (any, error)       { return Bool(v), nil }
func (buildVisitor) VisitInt8(v int8) (any, error)       { return I8(v), nil }
func (buildVisitor) VisitInt16(v int16) (any, error)     { return I16(v), nil }
func (buildVisitor) VisitInt32(v int32) (any, error)     { return I32(v), nil }
func (buildVisitor) VisitInt64(v int64) (any, error)     { return I64(v), nil }
func (buildVisitor) VisitUint8(v uint8) (any, error)     { return U8(v), nil }
func (buildVisitor) VisitUint16(v uint16) (any, error)   { return U16(v), nil }
func (buildVisitor) VisitUint32(v uint32) (any, error)   { return U32(v), nil }
func (buildVisitor) VisitUint64(v uint64) (any, error)   { return U64(v), nil }
func (buildVisitor) VisitFloat32(v float32) (any, error) { return F32(v), nil }
func (buildVisitor) VisitFloat64(v float64) (any, error) { return F64(v), nil }
func (buildVisitor) VisitChar(v rune) (any, error)       { return Char(v), nil }
func (buildVisitor) VisitString(v string) (any, error)   { return Str(v), nil }
func (buildVisitor) VisitBytes(v []byte) (any, error) {
	// Copy: the tree owns its data; the source may reuse the slice.
	b := make([]byte, len(v))
	copy(b, v)
	return Bytes(b), nil
}
func (buildVisitor) VisitNone() (any, error) { return None(), nil }
func (buildVisitor) VisitUnit() (any, error) { return Unit(), nil }

func (buildVisitor) VisitSome(dec wireform.Decoder) (any, error) {
	inner, err := FromDecoder(dec)
	if err != nil {
		return nil, err
	}
	return Some(inner), nil
}

// Newtype layers carry no data of their own and are flattened while buffering.
func (buildVisitor) VisitNewtype(dec wireform.Decoder) (any, error) {
	return FromDecoder(dec)
}

func (buildVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	elems := []Value{}
	if n := sa.Size(); n > 0 {
		elems = make([]Value, 0, n)
	}
	for {
		v, ok, err := sa.NextElement(target())
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		elems = append(elems, v.(Value))
	}
	if err := sa.End(); err != nil {
		return nil, err
	}
	return Value{kind: KindSeq, seq: elems}, nil
}

func (buildVisitor) VisitMap(ma wireform.MapAccess) (any, error) {
	pairs := []Pair{}
	if n := ma.Size(); n > 0 {
		pairs = make([]Pair, 0, n)
	}
	for {
		k, ok, err := ma.NextKey(target())
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := ma.NextValue(target())
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: k.(Value), Value: v.(Value)})
	}
	if err := ma.End(); err != nil {
		return nil, err
	}
	return Value{kind: KindMap, pairs: pairs}, nil
}

func (buildVisitor) VisitEnum(wireform.EnumAccess) (any, error) {
	return nil, wireform.ErrCustom("cannot buffer an externally tagged variant; tag resolution requires self-describing input")
}
