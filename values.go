package wireform

import "unicode/utf8"

// Encodable adapters for plain Go values. These cover the leaf shapes a
// hand-written Encode implementation composes from.

// Unit returns the Encodable for the unit value.
func Unit() Encodable { return EncodableFunc(func(e Encoder) error { return e.EncodeUnit() }) }

func Bool(v bool) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeBool(v) })
}
func I8(v int8) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeInt8(v) })
}
func I16(v int16) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeInt16(v) })
}
func I32(v int32) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeInt32(v) })
}
func I64(v int64) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeInt64(v) })
}
func U8(v uint8) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeUint8(v) })
}
func U16(v uint16) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeUint16(v) })
}
func U32(v uint32) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeUint32(v) })
}
func U64(v uint64) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeUint64(v) })
}
func F32(v float32) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeFloat32(v) })
}
func F64(v float64) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeFloat64(v) })
}
func Char(v rune) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeChar(v) })
}
func Str(v string) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeString(v) })
}
func Bytes(v []byte) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeBytes(v) })
}

// None returns the Encodable for an absent optional value.
func None() Encodable { return EncodableFunc(func(e Encoder) error { return e.EncodeNone() }) }

// Some wraps a present optional value.
func Some(v Encodable) Encodable {
	return EncodableFunc(func(e Encoder) error { return e.EncodeSome(v) })
}

// Seq encodes elems as a known-length sequence.
func Seq(elems ...Encodable) Encodable {
	return EncodableFunc(func(e Encoder) error {
		se, err := e.EncodeSeq(len(elems))
		if err != nil {
			return err
		}
		for _, el := range elems {
			if err := se.EncodeElement(el); err != nil {
				return err
			}
		}
		return se.End()
	})
}

// Entry is one ordered key/value pair of a map Encodable.
type Entry struct {
	Key   Encodable
	Value Encodable
}

// MapOf encodes entries as a known-length map, preserving order.
func MapOf(entries ...Entry) Encodable {
	return EncodableFunc(func(e Encoder) error {
		me, err := e.EncodeMap(len(entries))
		if err != nil {
			return err
		}
		for _, en := range entries {
			if err := me.EncodeKey(en.Key); err != nil {
				return err
			}
			if err := me.EncodeValue(en.Value); err != nil {
				return err
			}
		}
		return me.End()
	})
}

// ---- typed decode helpers ----

// AsBool decodes a single bool.
func AsBool(d Decoder) (bool, error) {
	v, err := d.DecodeBool(boolVisitor{Expecting("a bool")})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

type boolVisitor struct{ UnimplementedVisitor }

func (boolVisitor) VisitBool(v bool) (any, error) { return v, nil }

// AsInt64 decodes any integer shape, widening signed values and checking
// unsigned values for range.
func AsInt64(d Decoder) (int64, error) {
	v, err := d.DecodeInt64(intVisitor{Expecting("an integer")})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

type intVisitor struct{ UnimplementedVisitor }

func (intVisitor) VisitInt8(v int8) (any, error)     { return int64(v), nil }
func (intVisitor) VisitInt16(v int16) (any, error)   { return int64(v), nil }
func (intVisitor) VisitInt32(v int32) (any, error)   { return int64(v), nil }
func (intVisitor) VisitInt64(v int64) (any, error)   { return v, nil }
func (intVisitor) VisitUint8(v uint8) (any, error)   { return int64(v), nil }
func (intVisitor) VisitUint16(v uint16) (any, error) { return int64(v), nil }
func (intVisitor) VisitUint32(v uint32) (any, error) { return int64(v), nil }
func (intVisitor) VisitUint64(v uint64) (any, error) {
	if v > 1<<63-1 {
		return nil, ErrInvalidValue("integer out of range for i64")
	}
	return int64(v), nil
}

// AsUint64 decodes any non-negative integer shape.
func AsUint64(d Decoder) (uint64, error) {
	v, err := d.DecodeUint64(uintVisitor{Expecting("an unsigned integer")})
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

type uintVisitor struct{ UnimplementedVisitor }

func (uintVisitor) VisitUint8(v uint8) (any, error)   { return uint64(v), nil }
func (uintVisitor) VisitUint16(v uint16) (any, error) { return uint64(v), nil }
func (uintVisitor) VisitUint32(v uint32) (any, error) { return uint64(v), nil }
func (uintVisitor) VisitUint64(v uint64) (any, error) { return v, nil }
func (uintVisitor) VisitInt8(v int8) (any, error)     { return uintFromSigned(int64(v)) }
func (uintVisitor) VisitInt16(v int16) (any, error)   { return uintFromSigned(int64(v)) }
func (uintVisitor) VisitInt32(v int32) (any, error)   { return uintFromSigned(int64(v)) }
func (uintVisitor) VisitInt64(v int64) (any, error)   { return uintFromSigned(v) }

func uintFromSigned(v int64) (any, error) {
	if v < 0 {
		return nil, ErrInvalidValue("negative integer where unsigned expected")
	}
	return uint64(v), nil
}

// AsFloat64 decodes either float width, widening integers.
func AsFloat64(d Decoder) (float64, error) {
	v, err := d.DecodeFloat64(floatVisitor{Expecting("a float")})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

type floatVisitor struct{ UnimplementedVisitor }

func (floatVisitor) VisitFloat32(v float32) (any, error) { return float64(v), nil }
func (floatVisitor) VisitFloat64(v float64) (any, error) { return v, nil }
func (floatVisitor) VisitInt32(v int32) (any, error)     { return float64(v), nil }
func (floatVisitor) VisitInt64(v int64) (any, error)     { return float64(v), nil }
func (floatVisitor) VisitUint64(v uint64) (any, error)   { return float64(v), nil }

// AsString decodes a string.
func AsString(d Decoder) (string, error) {
	v, err := d.DecodeString(stringVisitor{Expecting("a string")})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

type stringVisitor struct{ UnimplementedVisitor }

func (stringVisitor) VisitString(v string) (any, error) { return v, nil }
func (stringVisitor) VisitChar(v rune) (any, error)     { return string(v), nil }

// AsChar decodes a single character, accepting a one-rune string.
func AsChar(d Decoder) (rune, error) {
	v, err := d.DecodeChar(charVisitor{Expecting("a character")})
	if err != nil {
		return 0, err
	}
	return v.(rune), nil
}

type charVisitor struct{ UnimplementedVisitor }

func (charVisitor) VisitChar(v rune) (any, error) { return v, nil }
func (charVisitor) VisitString(v string) (any, error) {
	r, size := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError || size != len(v) {
		return nil, ErrInvalidValue("expected a single character, got string " + v)
	}
	return r, nil
}

// AsBytes decodes a byte payload, accepting a string as raw bytes.
func AsBytes(d Decoder) ([]byte, error) {
	v, err := d.DecodeBytes(bytesVisitor{Expecting("bytes")})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

type bytesVisitor struct{ UnimplementedVisitor }

func (bytesVisitor) VisitBytes(v []byte) (any, error)  { return v, nil }
func (bytesVisitor) VisitString(v string) (any, error) { return []byte(v), nil }

// AsUnit decodes the unit value.
func AsUnit(d Decoder) error {
	_, err := d.DecodeUnit(unitVisitor{Expecting("unit")})
	return err
}

type unitVisitor struct{ UnimplementedVisitor }

func (unitVisitor) VisitUnit() (any, error) { return nil, nil }

// AsOption decodes an optional value; ok is false for an absent value.
func AsOption(d Decoder, inner DecodeFunc) (v any, ok bool, err error) {
	out, err := d.DecodeOption(optionVisitor{
		UnimplementedVisitor: Expecting("an optional value"),
		inner:                inner,
	})
	if err != nil {
		return nil, false, err
	}
	p := out.(optionResult)
	return p.v, p.ok, nil
}

type optionResult struct {
	v  any
	ok bool
}

type optionVisitor struct {
	UnimplementedVisitor
	inner DecodeFunc
}

func (optionVisitor) VisitNone() (any, error) { return optionResult{}, nil }
func (o optionVisitor) VisitSome(dec Decoder) (any, error) {
	v, err := o.inner(dec)
	if err != nil {
		return nil, err
	}
	return optionResult{v: v, ok: true}, nil
}

// SliceOf decodes a sequence by applying elem to each element, draining the
// cursor to exhaustion.
func SliceOf(d Decoder, elem DecodeFunc) ([]any, error) {
	v, err := d.DecodeSeq(sliceVisitor{
		UnimplementedVisitor: Expecting("a sequence"),
		elem:                 elem,
	})
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}

type sliceVisitor struct {
	UnimplementedVisitor
	elem DecodeFunc
}

func (s sliceVisitor) VisitSeq(sa SeqAccess) (any, error) {
	out := []any{}
	if n := sa.Size(); n > 0 {
		out = make([]any, 0, n)
	}
	for {
		v, ok, err := sa.NextElement(s.elem)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	if err := sa.End(); err != nil {
		return nil, err
	}
	return out, nil
}

// StringMapOf decodes a string-keyed map by applying val to each value.
// Input order is not preserved; use a Visitor directly when order matters.
func StringMapOf(d Decoder, val DecodeFunc) (map[string]any, error) {
	v, err := d.DecodeMap(stringMapVisitor{
		UnimplementedVisitor: Expecting("a map with string keys"),
		val:                  val,
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

type stringMapVisitor struct {
	UnimplementedVisitor
	val DecodeFunc
}

func (m stringMapVisitor) VisitMap(ma MapAccess) (any, error) {
	out := map[string]any{}
	for {
		k, ok, err := ma.NextKey(DecodeFunc(func(d Decoder) (any, error) { return AsString(d) }))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := ma.NextValue(m.val)
		if err != nil {
			return nil, err
		}
		out[k.(string)] = v
	}
	if err := ma.End(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ignore returns a target that consumes exactly one value of any shape and
// discards it. Used to skip unknown fields.
func Ignore() Decodable {
	return DecodeFunc(func(d Decoder) (any, error) { return d.DecodeIgnored(ignoreVisitor{}) })
}

type ignoreVisitor struct{}

func (ignoreVisitor) Expecting() string                 { return "anything" }
func (ignoreVisitor) VisitBool(bool) (any, error)       { return nil, nil }
func (ignoreVisitor) VisitInt8(int8) (any, error)       { return nil, nil }
func (ignoreVisitor) VisitInt16(int16) (any, error)     { return nil, nil }
func (ignoreVisitor) VisitInt32(int32) (any, error)     { return nil, nil }
func (ignoreVisitor) VisitInt64(int64) (any, error)     { return nil, nil }
func (ignoreVisitor) VisitUint8(uint8) (any, error)     { return nil, nil }
func (ignoreVisitor) VisitUint16(uint16) (any, error)   { return nil, nil }
func (ignoreVisitor) VisitUint32(uint32) (any, error)   { return nil, nil }
func (ignoreVisitor) VisitUint64(uint64) (any, error)   { return nil, nil }
func (ignoreVisitor) VisitFloat32(float32) (any, error) { return nil, nil }
func (ignoreVisitor) VisitFloat64(float64) (any, error) { return nil, nil }
func (ignoreVisitor) VisitChar(rune) (any, error)       { return nil, nil }
func (ignoreVisitor) VisitString(string) (any, error)   { return nil, nil }
func (ignoreVisitor) VisitBytes([]byte) (any, error)    { return nil, nil }
func (ignoreVisitor) VisitNone() (any, error)           { return nil, nil }
func (ignoreVisitor) VisitUnit() (any, error)           { return nil, nil }

func (v ignoreVisitor) VisitSome(dec Decoder) (any, error)    { return dec.DecodeIgnored(v) }
func (v ignoreVisitor) VisitNewtype(dec Decoder) (any, error) { return dec.DecodeIgnored(v) }

func (v ignoreVisitor) VisitSeq(sa SeqAccess) (any, error) {
	for {
		_, ok, err := sa.NextElement(Ignore())
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return nil, sa.End()
}

func (v ignoreVisitor) VisitMap(ma MapAccess) (any, error) {
	for {
		_, ok, err := ma.NextKey(Ignore())
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, err := ma.NextValue(Ignore()); err != nil {
			return nil, err
		}
	}
	return nil, ma.End()
}

func (v ignoreVisitor) VisitEnum(ea EnumAccess) (any, error) {
	_, va, err := ea.Variant()
	if err != nil {
		return nil, err
	}
	if err := va.UnitVariant(); err == nil {
		return nil, nil
	}
	return va.NewtypeVariant(Ignore())
}
