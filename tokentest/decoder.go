package tokentest

import (
	wireform "github.com/reoring/wireform"
)

// Decoder is a symbolic wireform.Decoder that plays a fixed token list back
// as canned pull responses, so a decode routine can be exercised without any
// real format. The token stream is self-describing.
type Decoder struct {
	tokens []Token
	pos    int
	// HumanReadable is what the decoder reports to targets that query it.
	HumanReadable bool
}

// NewDecoder returns a Decoder that will replay tokens in order.
func NewDecoder(tokens []Token) *Decoder {
	return &Decoder{tokens: tokens, HumanReadable: true}
}

// Remaining returns the count of tokens not yet consumed.
func (d *Decoder) Remaining() int { return len(d.tokens) - d.pos }

func (d *Decoder) IsHumanReadable() bool { return d.HumanReadable }

func (d *Decoder) next() (Token, error) {
	if d.pos >= len(d.tokens) {
		return Token{}, wireform.ErrEndOfInput()
	}
	t := d.tokens[d.pos]
	d.pos++
	return t, nil
}

func (d *Decoder) peek() (Token, bool) {
	if d.pos >= len(d.tokens) {
		return Token{}, false
	}
	return d.tokens[d.pos], true
}

func (d *Decoder) DecodeAny(vis wireform.Visitor) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case KindBool:
		return vis.VisitBool(tok.Bool)
	case KindI8:
		return vis.VisitInt8(int8(tok.Int))
	case KindI16:
		return vis.VisitInt16(int16(tok.Int))
	case KindI32:
		return vis.VisitInt32(int32(tok.Int))
	case KindI64:
		return vis.VisitInt64(tok.Int)
	case KindU8:
		return vis.VisitUint8(uint8(tok.Uint))
	case KindU16:
		return vis.VisitUint16(uint16(tok.Uint))
	case KindU32:
		return vis.VisitUint32(uint32(tok.Uint))
	case KindU64:
		return vis.VisitUint64(tok.Uint)
	case KindF32:
		return vis.VisitFloat32(float32(tok.Float))
	case KindF64:
		return vis.VisitFloat64(tok.Float)
	case KindChar:
		return vis.VisitChar(tok.Char)
	case KindStr:
		return vis.VisitString(tok.Str)
	case KindBytes:
		return vis.VisitBytes([]byte(tok.Str))
	case KindOption:
		if tok.Bool {
			return vis.VisitSome(d)
		}
		return vis.VisitNone()
	case KindUnit, KindUnitStruct:
		return vis.VisitUnit()
	case KindNewtypeStruct:
		return vis.VisitNewtype(d)
	case KindSeqStart:
		return vis.VisitSeq(&seqAccess{d: d, end: KindSeqEnd, size: tok.Len})
	case KindTupleStructStart:
		return vis.VisitSeq(&seqAccess{d: d, end: KindTupleStructEnd, size: tok.Len})
	case KindMapStart:
		return vis.VisitMap(&mapAccess{d: d, end: KindMapEnd, size: tok.Len})
	case KindStructStart:
		return vis.VisitMap(&mapAccess{d: d, end: KindStructEnd, size: tok.Len})
	case KindUnitVariant, KindNewtypeVariant, KindTupleVariantStart, KindStructVariantStart:
		return vis.VisitEnum(&enumAccess{d: d, tok: tok})
	default:
		return nil, wireform.ErrCustomf("tokentest: unexpected %s where a value was required", tok)
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
func (d *Decoder) DecodeBytes(v wireform.Visitor) (any, error)   { return d.DecodeAny(v) }
func (d *Decoder) DecodeOption(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }
func (d *Decoder) DecodeUnit(v wireform.Visitor) (any, error)    { return d.DecodeAny(v) }

func (d *Decoder) DecodeUnitStruct(name string, v wireform.Visitor) (any, error) {
	return d.DecodeAny(v)
}

func (d *Decoder) DecodeNewtypeStruct(name string, v wireform.Visitor) (any, error) {
	return d.DecodeAny(v)
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
	return d.DecodeAny(v)
}

func (d *Decoder) DecodeIgnored(v wireform.Visitor) (any, error) {
	if err := d.skipValue(); err != nil {
		return nil, err
	}
	return v.VisitUnit()
}

// skipValue consumes exactly one value's worth of tokens.
func (d *Decoder) skipValue() error {
	tok, err := d.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindOption:
		if tok.Bool {
			return d.skipValue()
		}
		return nil
	case KindNewtypeStruct, KindNewtypeVariant:
		return d.skipValue()
	case KindSeqStart:
		return d.skipUntil(KindSeqEnd)
	case KindTupleStructStart:
		return d.skipUntil(KindTupleStructEnd)
	case KindMapStart:
		return d.skipUntil(KindMapEnd)
	case KindStructStart:
		return d.skipUntil(KindStructEnd)
	case KindTupleVariantStart:
		return d.skipUntil(KindTupleVariantEnd)
	case KindStructVariantStart:
		return d.skipUntil(KindStructVariantEnd)
	default:
		return nil
	}
}

func (d *Decoder) skipUntil(end Kind) error {
	for {
		tok, ok := d.peek()
		if !ok {
			return wireform.ErrEndOfInput()
		}
		if tok.Kind == end {
			d.pos++
			return nil
		}
		if err := d.skipValue(); err != nil {
			return err
		}
	}
}

// ---- cursors ----

type seqAccess struct {
	d    *Decoder
	end  Kind
	size int
}

func (s *seqAccess) NextElement(target wireform.Decodable) (any, bool, error) {
	tok, ok := s.d.peek()
	if !ok {
		return nil, false, wireform.ErrEndOfInput()
	}
	if tok.Kind == s.end {
		return nil, false, nil
	}
	v, err := target.Decode(s.d)
	if err != nil {
		return nil, false, err
	}
	if s.size > 0 {
		s.size--
	}
	return v, true, nil
}

func (s *seqAccess) Size() int { return s.size }

func (s *seqAccess) End() error {
	tok, err := s.d.next()
	if err != nil {
		return err
	}
	if tok.Kind != s.end {
		return wireform.ErrCustomf("tokentest: cursor terminated with %s still pending", tok)
	}
	return nil
}

type mapAccess struct {
	d    *Decoder
	end  Kind
	size int
}

func (m *mapAccess) NextKey(target wireform.Decodable) (any, bool, error) {
	tok, ok := m.d.peek()
	if !ok {
		return nil, false, wireform.ErrEndOfInput()
	}
	if tok.Kind == m.end {
		return nil, false, nil
	}
	k, err := target.Decode(m.d)
	if err != nil {
		return nil, false, err
	}
	return k, true, nil
}

func (m *mapAccess) NextValue(target wireform.Decodable) (any, error) {
	v, err := target.Decode(m.d)
	if err != nil {
		return nil, err
	}
	if m.size > 0 {
		m.size--
	}
	return v, nil
}

func (m *mapAccess) Size() int { return m.size }

func (m *mapAccess) End() error {
	tok, err := m.d.next()
	if err != nil {
		return err
	}
	if tok.Kind != m.end {
		return wireform.ErrCustomf("tokentest: cursor terminated with %s still pending", tok)
	}
	return nil
}

type enumAccess struct {
	d   *Decoder
	tok Token
}

func (e *enumAccess) Variant() (string, wireform.VariantAccess, error) {
	return e.tok.Variant, &variantAccess{d: e.d, tok: e.tok}, nil
}

type variantAccess struct {
	d   *Decoder
	tok Token
}

func (va *variantAccess) UnitVariant() error {
	if va.tok.Kind != KindUnitVariant {
		return wireform.ErrCustomf("tokentest: %s where a unit variant was required", va.tok)
	}
	return nil
}

func (va *variantAccess) NewtypeVariant(target wireform.Decodable) (any, error) {
	if va.tok.Kind != KindNewtypeVariant {
		return nil, wireform.ErrCustomf("tokentest: %s where a newtype variant was required", va.tok)
	}
	return target.Decode(va.d)
}

func (va *variantAccess) TupleVariant(n int, v wireform.Visitor) (any, error) {
	if va.tok.Kind != KindTupleVariantStart {
		return nil, wireform.ErrCustomf("tokentest: %s where a tuple variant was required", va.tok)
	}
	return v.VisitSeq(&seqAccess{d: va.d, end: KindTupleVariantEnd, size: va.tok.Len})
}

func (va *variantAccess) StructVariant(fields []string, v wireform.Visitor) (any, error) {
	if va.tok.Kind != KindStructVariantStart {
		return nil, wireform.ErrCustomf("tokentest: %s where a struct variant was required", va.tok)
	}
	return v.VisitMap(&mapAccess{d: va.d, end: KindStructVariantEnd, size: va.tok.Len})
}
