// Package content materializes one decoded value into an owned,
// format-independent tree that can be replayed as a Decoder, possibly
// multiple times. It is the look-ahead mechanism behind tag-free and
// internally/adjacently tagged variant resolution.
//
// The tree is exclusively owned by the resolution routine that built it and
// is never shared across operations.
package content

import (
	wireform "github.com/reoring/wireform"
)

// Kind identifies one case of the buffered tree. Struct-like input arrives
// through the map case; newtype layers are flattened while buffering.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindChar
	KindStr
	KindBytes
	KindNone
	KindSome
	KindSeq
	KindMap
)

// Value is one node of the buffered tree.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	r     rune
	s     string
	bytes []byte
	elem  *Value
	seq   []Value
	pairs []Pair
}

// Pair is one ordered key/value entry of a buffered map.
type Pair struct {
	Key   Value
	Value Value
}

func (v Value) Kind() Kind { return v.kind }

// Shape reports the wire shape the node replays as.
func (v Value) Shape() wireform.Shape {
	switch v.kind {
	case KindUnit:
		return wireform.ShapeUnit
	case KindBool:
		return wireform.ShapeBool
	case KindI8:
		return wireform.ShapeI8
	case KindI16:
		return wireform.ShapeI16
	case KindI32:
		return wireform.ShapeI32
	case KindI64:
		return wireform.ShapeI64
	case KindU8:
		return wireform.ShapeU8
	case KindU16:
		return wireform.ShapeU16
	case KindU32:
		return wireform.ShapeU32
	case KindU64:
		return wireform.ShapeU64
	case KindF32:
		return wireform.ShapeF32
	case KindF64:
		return wireform.ShapeF64
	case KindChar:
		return wireform.ShapeChar
	case KindStr:
		return wireform.ShapeStr
	case KindBytes:
		return wireform.ShapeBytes
	case KindNone, KindSome:
		return wireform.ShapeOption
	case KindSeq:
		return wireform.ShapeSeq
	default:
		return wireform.ShapeMap
	}
}

// ---- constructors ----

func Unit() Value          { return Value{kind: KindUnit} }
func Bool(v bool) Value    { return Value{kind: KindBool, b: v} }
func I8(v int8) Value      { return Value{kind: KindI8, i: int64(v)} }
func I16(v int16) Value    { return Value{kind: KindI16, i: int64(v)} }
func I32(v int32) Value    { return Value{kind: KindI32, i: int64(v)} }
func I64(v int64) Value    { return Value{kind: KindI64, i: v} }
func U8(v uint8) Value     { return Value{kind: KindU8, u: uint64(v)} }
func U16(v uint16) Value   { return Value{kind: KindU16, u: uint64(v)} }
func U32(v uint32) Value   { return Value{kind: KindU32, u: uint64(v)} }
func U64(v uint64) Value   { return Value{kind: KindU64, u: v} }
func F32(v float32) Value  { return Value{kind: KindF32, f: float64(v)} }
func F64(v float64) Value  { return Value{kind: KindF64, f: v} }
func Char(v rune) Value    { return Value{kind: KindChar, r: v} }
func Str(v string) Value   { return Value{kind: KindStr, s: v} }
func Bytes(v []byte) Value { return Value{kind: KindBytes, bytes: v} }
func None() Value          { return Value{kind: KindNone} }

func Some(v Value) Value { return Value{kind: KindSome, elem: &v} }

func Seq(elems ...Value) Value { return Value{kind: KindSeq, seq: elems} }

func Map(pairs ...Pair) Value { return Value{kind: KindMap, pairs: pairs} }

// Pairs returns the ordered entries of a map node, nil otherwise.
func (v Value) Pairs() []Pair { return v.pairs }

// Encode replays the tree through the push contract, so a buffered value can
// be re-emitted into any format.
func (v Value) Encode(enc wireform.Encoder) error {
	switch v.kind {
	case KindUnit:
		return enc.EncodeUnit()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindI8:
		return enc.EncodeInt8(int8(v.i))
	case KindI16:
		return enc.EncodeInt16(int16(v.i))
	case KindI32:
		return enc.EncodeInt32(int32(v.i))
	case KindI64:
		return enc.EncodeInt64(v.i)
	case KindU8:
		return enc.EncodeUint8(uint8(v.u))
	case KindU16:
		return enc.EncodeUint16(uint16(v.u))
	case KindU32:
		return enc.EncodeUint32(uint32(v.u))
	case KindU64:
		return enc.EncodeUint64(v.u)
	case KindF32:
		return enc.EncodeFloat32(float32(v.f))
	case KindF64:
		return enc.EncodeFloat64(v.f)
	case KindChar:
		return enc.EncodeChar(v.r)
	case KindStr:
		return enc.EncodeString(v.s)
	case KindBytes:
		return enc.EncodeBytes(v.bytes)
	case KindNone:
		return enc.EncodeNone()
	case KindSome:
		return enc.EncodeSome(*v.elem)
	case KindSeq:
		se, err := enc.EncodeSeq(len(v.seq))
		if err != nil {
			return err
		}
		for _, el := range v.seq {
			if err := se.EncodeElement(el); err != nil {
				return err
			}
		}
		return se.End()
	default: // KindMap
		me, err := enc.EncodeMap(len(v.pairs))
		if err != nil {
			return err
		}
		for _, p := range v.pairs {
			if err := me.EncodeKey(p.Key); err != nil {
				return err
			}
			if err := me.EncodeValue(p.Value); err != nil {
				return err
			}
		}
		return me.End()
	}
}
