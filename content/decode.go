package content

import (
	"fmt"

	wireform "github.com/reoring/wireform"
)

// Decoder replays a buffered tree through the full pull protocol. Replay is
// call-for-call indistinguishable from the live Decoder that produced the
// tree, which is what makes multi-pass resolution legal. A Decoder is
// single-use; build a fresh one per replay.
type Decoder struct {
	v Value
	// HumanReadable mirrors the capability of the format the tree was
	// buffered from.
	HumanReadable bool
}

// NewDecoder replays v as a Decoder. The replay reports human-readable by
// default; set HumanReadable to mirror a binary origin.
func NewDecoder(v Value) *Decoder { return &Decoder{v: v, HumanReadable: true} }

func (d *Decoder) sub(v Value) *Decoder {
	return &Decoder{v: v, HumanReadable: d.HumanReadable}
}

func (d *Decoder) IsHumanReadable() bool { return d.HumanReadable }

func (d *Decoder) DecodeAny(vis wireform.Visitor) (any, error) {
	switch d.v.kind {
	case KindUnit:
		return vis.VisitUnit()
	case KindBool:
		return vis.VisitBool(d.v.b)
	case KindI8:
		return vis.VisitInt8(int8(d.v.i))
	case KindI16:
		return vis.VisitInt16(int16(d.v.i))
	case KindI32:
		return vis.VisitInt32(int32(d.v.i))
	case KindI64:
		return vis.VisitInt64(d.v.i)
	case KindU8:
		return vis.VisitUint8(uint8(d.v.u))
	case KindU16:
		return vis.VisitUint16(uint16(d.v.u))
	case KindU32:
		return vis.VisitUint32(uint32(d.v.u))
	case KindU64:
		return vis.VisitUint64(d.v.u)
	case KindF32:
		return vis.VisitFloat32(float32(d.v.f))
	case KindF64:
		return vis.VisitFloat64(d.v.f)
	case KindChar:
		return vis.VisitChar(d.v.r)
	case KindStr:
		return vis.VisitString(d.v.s)
	case KindBytes:
		// Copy: the tree may be replayed again; the visitor may keep or
		// mutate what it is handed.
		b := make([]byte, len(d.v.bytes))
		copy(b, d.v.bytes)
		return vis.VisitBytes(b)
	case KindNone:
		return vis.VisitNone()
	case KindSome:
		return vis.VisitSome(d.sub(*d.v.elem))
	case KindSeq:
		return vis.VisitSeq(&seqAccess{d: d, elems: d.v.seq})
	default: // KindMap
		return vis.VisitMap(&mapAccess{d: d, pairs: d.v.pairs})
	}
}

func (d *Decoder) DecodeBool(v wireform.Visitor) (any, error)    { return d.DecodeAny(v) }
func (d *Decoder) DecodeInt8(v wireform.Visitor) (any, error)    { return d.DecodeAny(v) }
func (d *Decoder) DecodeInt16(v wireform.Visitor) (any, error)   { return d.DecodeAny(v) }
func (d *Decoder) DecodeInt32(v wireform.Visitor) (any, error)   { return d.DecodeAny(v) }
func (d *Decoder) DecodeInt64(v wireform.Visitor) (any, error)   { return d.DecodeAny(v) }
func (d *Decoder) DecodeUint8(v wireform.Visitor) (any, error)   { return d.DecodeAny(v) }
func (d *Decoder) DecodeUint16(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }
func (d *Decoder) DecodeUint32(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }
func (d *Decoder) DecodeUint64(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }
func (d *Decoder) DecodeFloat32(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }
func (d *Decoder) DecodeFloat64(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }
func (d *Decoder) DecodeChar(v wireform.Visitor) (any, error)    { return d.DecodeAny(v) }
func (d *Decoder) DecodeString(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }

func (d *Decoder) DecodeBytes(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }

// DecodeOption treats a bare value as a present optional, so a tree buffered
// from non-option input still replays into an optional target.
func (d *Decoder) DecodeOption(v wireform.Visitor) (any, error) {
	switch d.v.kind {
	case KindNone:
		return v.VisitNone()
	case KindSome:
		return v.VisitSome(d.sub(*d.v.elem))
	default:
		return v.VisitSome(d)
	}
}

func (d *Decoder) DecodeUnit(v wireform.Visitor) (any, error) {
	switch d.v.kind {
	case KindUnit, KindNone:
		return v.VisitUnit()
	default:
		return d.DecodeAny(v)
	}
}

func (d *Decoder) DecodeUnitStruct(name string, v wireform.Visitor) (any, error) {
	return d.DecodeUnit(v)
}

func (d *Decoder) DecodeNewtypeStruct(name string, v wireform.Visitor) (any, error) {
	return v.VisitNewtype(d)
}

func (d *Decoder) DecodeSeq(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }

func (d *Decoder) DecodeTupleStruct(name string, n int, v wireform.Visitor) (any, error) {
	return d.DecodeAny(v)
}

func (d *Decoder) DecodeMap(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }

func (d *Decoder) DecodeStruct(name string, fields []string, v wireform.Visitor) (any, error) {
	return d.DecodeAny(v)
}

func (d *Decoder) DecodeEnum(name string, variants []string, v wireform.Visitor) (any, error) {
	switch d.v.kind {
	case KindStr:
		return v.VisitEnum(&enumAccess{d: d, variant: d.v.s})
	case KindMap:
		if len(d.v.pairs) != 1 {
			return nil, wireform.ErrInvalidValue("map must have a single entry to name a variant")
		}
		p := d.v.pairs[0]
		if p.Key.kind != KindStr {
			return nil, wireform.ErrInvalidType(p.Key.Shape(), "a variant name")
		}
		return v.VisitEnum(&enumAccess{d: d, variant: p.Key.s, payload: &p.Value})
	default:
		return nil, wireform.ErrInvalidType(d.v.Shape(), "an externally tagged variant")
	}
}

func (d *Decoder) DecodeIgnored(v wireform.Visitor) (any, error) { return v.VisitUnit() }

// ---- cursors ----

type seqAccess struct {
	d     *Decoder
	elems []Value
	pos   int
}

func (s *seqAccess) NextElement(target wireform.Decodable) (any, bool, error) {
	if s.pos >= len(s.elems) {
		return nil, false, nil
	}
	v, err := target.Decode(s.d.sub(s.elems[s.pos]))
	if err != nil {
		return nil, false, err
	}
	s.pos++
	return v, true, nil
}

func (s *seqAccess) Size() int { return len(s.elems) - s.pos }

func (s *seqAccess) End() error {
	if rest := len(s.elems) - s.pos; rest > 0 {
		return wireform.ErrInvalidLength(s.pos, fmt.Sprintf("%d elements", len(s.elems)))
	}
	return nil
}

type mapAccess struct {
	d            *Decoder
	pairs        []Pair
	pos          int
	valuePending bool
}

func (m *mapAccess) NextKey(target wireform.Decodable) (any, bool, error) {
	if m.pos >= len(m.pairs) {
		return nil, false, nil
	}
	if m.valuePending {
		return nil, false, wireform.ErrCustom("NextKey called with a value pending")
	}
	k, err := target.Decode(m.d.sub(m.pairs[m.pos].Key))
	if err != nil {
		return nil, false, err
	}
	m.valuePending = true
	return k, true, nil
}

func (m *mapAccess) NextValue(target wireform.Decodable) (any, error) {
	if !m.valuePending {
		return nil, wireform.ErrCustom("NextValue called before NextKey")
	}
	v, err := target.Decode(m.d.sub(m.pairs[m.pos].Value))
	if err != nil {
		return nil, err
	}
	m.pos++
	m.valuePending = false
	return v, nil
}

func (m *mapAccess) Size() int { return len(m.pairs) - m.pos }

func (m *mapAccess) End() error {
	if rest := len(m.pairs) - m.pos; rest > 0 {
		return wireform.ErrInvalidLength(m.pos, fmt.Sprintf("%d entries", len(m.pairs)))
	}
	return nil
}

type enumAccess struct {
	d       *Decoder
	variant string
	payload *Value
}

func (e *enumAccess) Variant() (string, wireform.VariantAccess, error) {
	return e.variant, &variantAccess{d: e.d, payload: e.payload}, nil
}

type variantAccess struct {
	d       *Decoder
	payload *Value
}

func (va *variantAccess) UnitVariant() error {
	if va.payload == nil || va.payload.kind == KindUnit || va.payload.kind == KindNone {
		return nil
	}
	return wireform.ErrInvalidType(va.payload.Shape(), "unit variant")
}

func (va *variantAccess) NewtypeVariant(target wireform.Decodable) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "newtype variant")
	}
	return target.Decode(va.d.sub(*va.payload))
}

func (va *variantAccess) TupleVariant(n int, v wireform.Visitor) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "tuple variant")
	}
	if va.payload.kind != KindSeq {
		return nil, wireform.ErrInvalidType(va.payload.Shape(), "tuple variant")
	}
	return v.VisitSeq(&seqAccess{d: va.d, elems: va.payload.seq})
}

func (va *variantAccess) StructVariant(fields []string, v wireform.Visitor) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "struct variant")
	}
	switch va.payload.kind {
	case KindMap:
		return v.VisitMap(&mapAccess{d: va.d, pairs: va.payload.pairs})
	case KindSeq:
		return v.VisitSeq(&seqAccess{d: va.d, elems: va.payload.seq})
	default:
		return nil, wireform.ErrInvalidType(va.payload.Shape(), "struct variant")
	}
}
