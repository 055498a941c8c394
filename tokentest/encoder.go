package tokentest

import (
	wireform "github.com/reoring/wireform"
)

// Encoder is a symbolic wireform.Encoder that asserts every outgoing protocol
// call against a fixed expected token list. A mismatch or a call past the end
// of the list fails with both tokens shown.
type Encoder struct {
	expected []Token
	pos      int
	// HumanReadable is what the encoder reports to values that query it.
	// Defaults to true, matching text formats.
	HumanReadable bool
}

// NewEncoder returns an Encoder expecting exactly the given calls.
func NewEncoder(expected []Token) *Encoder {
	return &Encoder{expected: expected, HumanReadable: true}
}

// Remaining returns the count of expected tokens not yet consumed. Zero after
// a successful encode means the list was walked exactly.
func (e *Encoder) Remaining() int { return len(e.expected) - e.pos }

func (e *Encoder) step(got Token) error {
	if e.pos >= len(e.expected) {
		return wireform.ErrCustomf("tokentest: unexpected call %s past the end of the expected tokens", got)
	}
	want := e.expected[e.pos]
	if got != want {
		return wireform.ErrCustomf("tokentest: call #%d mismatch: got %s, want %s", e.pos+1, got, want)
	}
	e.pos++
	return nil
}

func (e *Encoder) IsHumanReadable() bool { return e.HumanReadable }

func (e *Encoder) EncodeBool(v bool) error       { return e.step(Bool(v)) }
func (e *Encoder) EncodeInt8(v int8) error       { return e.step(I8(v)) }
func (e *Encoder) EncodeInt16(v int16) error     { return e.step(I16(v)) }
func (e *Encoder) EncodeInt32(v int32) error     { return e.step(I32(v)) }
func (e *Encoder) EncodeInt64(v int64) error     { return e.step(I64(v)) }
func (e *Encoder) EncodeUint8(v uint8) error     { return e.step(U8(v)) }
func (e *Encoder) EncodeUint16(v uint16) error   { return e.step(U16(v)) }
func (e *Encoder) EncodeUint32(v uint32) error   { return e.step(U32(v)) }
func (e *Encoder) EncodeUint64(v uint64) error   { return e.step(U64(v)) }
func (e *Encoder) EncodeFloat32(v float32) error { return e.step(F32(v)) }
func (e *Encoder) EncodeFloat64(v float64) error { return e.step(F64(v)) }
func (e *Encoder) EncodeChar(v rune) error       { return e.step(Char(v)) }
func (e *Encoder) EncodeString(v string) error   { return e.step(Str(v)) }
func (e *Encoder) EncodeBytes(v []byte) error    { return e.step(Bytes(string(v))) }

func (e *Encoder) EncodeNone() error { return e.step(Option(false)) }

func (e *Encoder) EncodeSome(v wireform.Encodable) error {
	if err := e.step(Option(true)); err != nil {
		return err
	}
	return v.Encode(e)
}

func (e *Encoder) EncodeUnit() error                  { return e.step(Unit()) }
func (e *Encoder) EncodeUnitStruct(name string) error { return e.step(UnitStruct(name)) }

func (e *Encoder) EncodeNewtypeStruct(name string, v wireform.Encodable) error {
	if err := e.step(NewtypeStruct(name)); err != nil {
		return err
	}
	return v.Encode(e)
}

func (e *Encoder) EncodeUnitVariant(name, variant string, index uint32) error {
	return e.step(UnitVariant(name, variant, index))
}

func (e *Encoder) EncodeNewtypeVariant(name, variant string, index uint32, v wireform.Encodable) error {
	if err := e.step(NewtypeVariant(name, variant, index)); err != nil {
		return err
	}
	return v.Encode(e)
}

func (e *Encoder) EncodeSeq(n int) (wireform.SeqEncoder, error) {
	if err := e.step(SeqStart(n)); err != nil {
		return nil, err
	}
	return &seqEncoder{e: e, end: SeqEnd()}, nil
}

func (e *Encoder) EncodeTupleStruct(name string, n int) (wireform.SeqEncoder, error) {
	if err := e.step(TupleStructStart(name, n)); err != nil {
		return nil, err
	}
	return &seqEncoder{e: e, end: TupleStructEnd()}, nil
}

func (e *Encoder) EncodeTupleVariant(name, variant string, index uint32, n int) (wireform.SeqEncoder, error) {
	if err := e.step(TupleVariantStart(name, variant, index, n)); err != nil {
		return nil, err
	}
	return &seqEncoder{e: e, end: TupleVariantEnd()}, nil
}

func (e *Encoder) EncodeMap(n int) (wireform.MapEncoder, error) {
	if err := e.step(MapStart(n)); err != nil {
		return nil, err
	}
	return &mapEncoder{e: e, end: MapEnd()}, nil
}

func (e *Encoder) EncodeStruct(name string, n int) (wireform.StructEncoder, error) {
	if err := e.step(StructStart(name, n)); err != nil {
		return nil, err
	}
	return &structEncoder{e: e, end: StructEnd()}, nil
}

func (e *Encoder) EncodeStructVariant(name, variant string, index uint32, n int) (wireform.StructEncoder, error) {
	if err := e.step(StructVariantStart(name, variant, index, n)); err != nil {
		return nil, err
	}
	return &structEncoder{e: e, end: StructVariantEnd()}, nil
}

type seqEncoder struct {
	e   *Encoder
	end Token
}

func (s *seqEncoder) EncodeElement(v wireform.Encodable) error { return v.Encode(s.e) }
func (s *seqEncoder) End() error                               { return s.e.step(s.end) }

type mapEncoder struct {
	e   *Encoder
	end Token
}

func (m *mapEncoder) EncodeKey(k wireform.Encodable) error   { return k.Encode(m.e) }
func (m *mapEncoder) EncodeValue(v wireform.Encodable) error { return v.Encode(m.e) }
func (m *mapEncoder) End() error                             { return m.e.step(m.end) }

type structEncoder struct {
	e   *Encoder
	end Token
}

// Field names travel as plain Str tokens, so a struct body reads exactly like
// the alternating keys and values of a map.
func (s *structEncoder) EncodeField(name string, v wireform.Encodable) error {
	if err := s.e.step(Str(name)); err != nil {
		return err
	}
	return v.Encode(s.e)
}

func (s *structEncoder) End() error { return s.e.step(s.end) }
