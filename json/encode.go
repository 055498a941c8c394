// Package json is a self-describing JSON format for the wireform protocol,
// built on the streaming token surface of github.com/goccy/go-json.
//
// Conventions: unit and absent options render as null; bytes render as a
// base64 string; variants are externally tagged ("Variant" for a unit
// variant, {"Variant": payload} otherwise).
package json

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	wireform "github.com/reoring/wireform"
)

// Marshal renders v as JSON.
func Marshal(v wireform.Encodable) ([]byte, error) {
	e := NewEncoder()
	if err := v.Encode(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Encoder implements wireform.Encoder by appending JSON text to an internal
// buffer. Single-use.
type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the accumulated output.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Encoder) IsHumanReadable() bool { return true }

func (e *Encoder) writeEscaped(s string) error {
	b, err := gojson.Marshal(s)
	if err != nil {
		return wireform.ErrCustomf("json: cannot escape string: %v", err)
	}
	e.buf.Write(b)
	return nil
}

func (e *Encoder) EncodeBool(v bool) error {
	if v {
		e.buf.WriteString("true")
	} else {
		e.buf.WriteString("false")
	}
	return nil
}

func (e *Encoder) encodeInt(v int64) error {
	e.buf.WriteString(strconv.FormatInt(v, 10))
	return nil
}

func (e *Encoder) encodeUint(v uint64) error {
	e.buf.WriteString(strconv.FormatUint(v, 10))
	return nil
}

func (e *Encoder) EncodeInt8(v int8) error     { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt16(v int16) error   { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt32(v int32) error   { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt64(v int64) error   { return e.encodeInt(v) }
func (e *Encoder) EncodeUint8(v uint8) error   { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint16(v uint16) error { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint32(v uint32) error { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint64(v uint64) error { return e.encodeUint(v) }

func (e *Encoder) encodeFloat(v float64, bits int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return wireform.ErrInvalidValue("JSON cannot represent NaN or infinity")
	}
	e.buf.WriteString(strconv.FormatFloat(v, 'g', -1, bits))
	return nil
}

func (e *Encoder) EncodeFloat32(v float32) error { return e.encodeFloat(float64(v), 32) }
func (e *Encoder) EncodeFloat64(v float64) error { return e.encodeFloat(v, 64) }

func (e *Encoder) EncodeChar(v rune) error     { return e.writeEscaped(string(v)) }
func (e *Encoder) EncodeString(v string) error { return e.writeEscaped(v) }

func (e *Encoder) EncodeBytes(v []byte) error {
	return e.writeEscaped(base64.StdEncoding.EncodeToString(v))
}

func (e *Encoder) EncodeNone() error {
	e.buf.WriteString("null")
	return nil
}

func (e *Encoder) EncodeSome(v wireform.Encodable) error { return v.Encode(e) }

func (e *Encoder) EncodeUnit() error {
	e.buf.WriteString("null")
	return nil
}

func (e *Encoder) EncodeUnitStruct(name string) error { return e.EncodeUnit() }

func (e *Encoder) EncodeNewtypeStruct(name string, v wireform.Encodable) error {
	return v.Encode(e)
}

func (e *Encoder) EncodeUnitVariant(name, variant string, index uint32) error {
	return e.writeEscaped(variant)
}

func (e *Encoder) EncodeNewtypeVariant(name, variant string, index uint32, v wireform.Encodable) error {
	e.buf.WriteByte('{')
	if err := e.writeEscaped(variant); err != nil {
		return err
	}
	e.buf.WriteByte(':')
	if err := v.Encode(e); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *Encoder) EncodeSeq(n int) (wireform.SeqEncoder, error) {
	e.buf.WriteByte('[')
	return &seqEncoder{e: e}, nil
}

func (e *Encoder) EncodeTupleStruct(name string, n int) (wireform.SeqEncoder, error) {
	return e.EncodeSeq(n)
}

func (e *Encoder) EncodeTupleVariant(name, variant string, index uint32, n int) (wireform.SeqEncoder, error) {
	e.buf.WriteByte('{')
	if err := e.writeEscaped(variant); err != nil {
		return nil, err
	}
	e.buf.WriteString(":[")
	return &seqEncoder{e: e, wrapped: true}, nil
}

func (e *Encoder) EncodeMap(n int) (wireform.MapEncoder, error) {
	e.buf.WriteByte('{')
	return &mapEncoder{e: e}, nil
}

func (e *Encoder) EncodeStruct(name string, n int) (wireform.StructEncoder, error) {
	e.buf.WriteByte('{')
	return &structEncoder{e: e}, nil
}

func (e *Encoder) EncodeStructVariant(name, variant string, index uint32, n int) (wireform.StructEncoder, error) {
	e.buf.WriteByte('{')
	if err := e.writeEscaped(variant); err != nil {
		return nil, err
	}
	e.buf.WriteString(":{")
	return &structEncoder{e: e, wrapped: true}, nil
}

type seqEncoder struct {
	e       *Encoder
	n       int
	wrapped bool // payload of a tuple variant; End also closes the wrapper
}

func (s *seqEncoder) EncodeElement(v wireform.Encodable) error {
	if s.n > 0 {
		s.e.buf.WriteByte(',')
	}
	s.n++
	return v.Encode(s.e)
}

func (s *seqEncoder) End() error {
	s.e.buf.WriteByte(']')
	if s.wrapped {
		s.e.buf.WriteByte('}')
	}
	return nil
}

type mapEncoder struct {
	e *Encoder
	n int
}

func (m *mapEncoder) EncodeKey(k wireform.Encodable) error {
	if m.n > 0 {
		m.e.buf.WriteByte(',')
	}
	m.n++
	return k.Encode(&keyEncoder{e: m.e})
}

func (m *mapEncoder) EncodeValue(v wireform.Encodable) error {
	m.e.buf.WriteByte(':')
	return v.Encode(m.e)
}

func (m *mapEncoder) End() error {
	m.e.buf.WriteByte('}')
	return nil
}

type structEncoder struct {
	e       *Encoder
	n       int
	wrapped bool
}

func (s *structEncoder) EncodeField(name string, v wireform.Encodable) error {
	if s.n > 0 {
		s.e.buf.WriteByte(',')
	}
	s.n++
	if err := s.e.writeEscaped(name); err != nil {
		return err
	}
	s.e.buf.WriteByte(':')
	return v.Encode(s.e)
}

func (s *structEncoder) End() error {
	s.e.buf.WriteByte('}')
	if s.wrapped {
		s.e.buf.WriteByte('}')
	}
	return nil
}

// keyEncoder renders the shapes JSON accepts as object keys: strings, chars,
// and integers (quoted). Everything else is an invalid_type error.
type keyEncoder struct {
	e *Encoder
}

func (k *keyEncoder) keyErr(got wireform.Shape) error {
	return wireform.ErrInvalidType(got, "a JSON object key")
}

func (k *keyEncoder) IsHumanReadable() bool { return true }

func (k *keyEncoder) EncodeString(v string) error { return k.e.writeEscaped(v) }
func (k *keyEncoder) EncodeChar(v rune) error     { return k.e.writeEscaped(string(v)) }

func (k *keyEncoder) quoted(s string) error {
	k.e.buf.WriteByte('"')
	k.e.buf.WriteString(s)
	k.e.buf.WriteByte('"')
	return nil
}

func (k *keyEncoder) EncodeInt8(v int8) error     { return k.quoted(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) EncodeInt16(v int16) error   { return k.quoted(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) EncodeInt32(v int32) error   { return k.quoted(strconv.FormatInt(int64(v), 10)) }
func (k *keyEncoder) EncodeInt64(v int64) error   { return k.quoted(strconv.FormatInt(v, 10)) }
func (k *keyEncoder) EncodeUint8(v uint8) error   { return k.quoted(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) EncodeUint16(v uint16) error { return k.quoted(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) EncodeUint32(v uint32) error { return k.quoted(strconv.FormatUint(uint64(v), 10)) }
func (k *keyEncoder) EncodeUint64(v uint64) error { return k.quoted(strconv.FormatUint(v, 10)) }

func (k *keyEncoder) EncodeBool(bool) error       { return k.keyErr(wireform.ShapeBool) }
func (k *keyEncoder) EncodeFloat32(float32) error { return k.keyErr(wireform.ShapeF32) }
func (k *keyEncoder) EncodeFloat64(float64) error { return k.keyErr(wireform.ShapeF64) }
func (k *keyEncoder) EncodeBytes([]byte) error    { return k.keyErr(wireform.ShapeBytes) }
func (k *keyEncoder) EncodeNone() error           { return k.keyErr(wireform.ShapeOption) }
func (k *keyEncoder) EncodeSome(wireform.Encodable) error {
	return k.keyErr(wireform.ShapeOption)
}
func (k *keyEncoder) EncodeUnit() error                 { return k.keyErr(wireform.ShapeUnit) }
func (k *keyEncoder) EncodeUnitStruct(string) error     { return k.keyErr(wireform.ShapeUnitStruct) }
func (k *keyEncoder) EncodeNewtypeStruct(name string, v wireform.Encodable) error {
	// A newtype key is transparent; encode its inner value as the key.
	return v.Encode(k)
}
func (k *keyEncoder) EncodeUnitVariant(name, variant string, index uint32) error {
	return k.e.writeEscaped(variant)
}
func (k *keyEncoder) EncodeNewtypeVariant(string, string, uint32, wireform.Encodable) error {
	return k.keyErr(wireform.ShapeNewtypeVariant)
}
func (k *keyEncoder) EncodeSeq(int) (wireform.SeqEncoder, error) {
	return nil, k.keyErr(wireform.ShapeSeq)
}
func (k *keyEncoder) EncodeTupleStruct(string, int) (wireform.SeqEncoder, error) {
	return nil, k.keyErr(wireform.ShapeTupleStruct)
}
func (k *keyEncoder) EncodeTupleVariant(string, string, uint32, int) (wireform.SeqEncoder, error) {
	return nil, k.keyErr(wireform.ShapeTupleVariant)
}
func (k *keyEncoder) EncodeMap(int) (wireform.MapEncoder, error) {
	return nil, k.keyErr(wireform.ShapeMap)
}
func (k *keyEncoder) EncodeStruct(string, int) (wireform.StructEncoder, error) {
	return nil, k.keyErr(wireform.ShapeStruct)
}
func (k *keyEncoder) EncodeStructVariant(string, string, uint32, int) (wireform.StructEncoder, error) {
	return nil, k.keyErr(wireform.ShapeStructVariant)
}
