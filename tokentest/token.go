// Package tokentest is a symbolic test harness for the wireform protocol.
// A Token is a flat, comparable representation of exactly one protocol call;
// the harness Encoder asserts an encode walks an expected token list
// call-for-call, and the harness Decoder plays a token list back as canned
// pull responses, so both directions can be exercised without any real
// format. The vocabulary is closed and stable: one token per primitive, a
// start/end pair per compound shape, one header token per variant kind.
package tokentest

import (
	"fmt"
	"strconv"
)

// Kind enumerates the token vocabulary.
type Kind int

const (
	KindBool Kind = iota
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
	KindOption
	KindUnit
	KindUnitStruct
	KindNewtypeStruct
	KindSeqStart
	KindSeqEnd
	KindMapStart
	KindMapEnd
	KindTupleStructStart
	KindTupleStructEnd
	KindStructStart
	KindStructEnd
	KindUnitVariant
	KindNewtypeVariant
	KindTupleVariantStart
	KindTupleVariantEnd
	KindStructVariantStart
	KindStructVariantEnd
)

// Token carries no payload beyond what a single protocol call needs to be
// replayed or asserted. Tokens are comparable with ==.
type Token struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Char    rune
	Str     string // also the bytes payload, kept as string for comparability
	Name    string
	Variant string
	Index   uint32
	Len     int // declared length; -1 when unknown
}

// ---- constructors ----

func Bool(v bool) Token    { return Token{Kind: KindBool, Bool: v} }
func I8(v int8) Token      { return Token{Kind: KindI8, Int: int64(v)} }
func I16(v int16) Token    { return Token{Kind: KindI16, Int: int64(v)} }
func I32(v int32) Token    { return Token{Kind: KindI32, Int: int64(v)} }
func I64(v int64) Token    { return Token{Kind: KindI64, Int: v} }
func U8(v uint8) Token     { return Token{Kind: KindU8, Uint: uint64(v)} }
func U16(v uint16) Token   { return Token{Kind: KindU16, Uint: uint64(v)} }
func U32(v uint32) Token   { return Token{Kind: KindU32, Uint: uint64(v)} }
func U64(v uint64) Token   { return Token{Kind: KindU64, Uint: v} }
func F32(v float32) Token  { return Token{Kind: KindF32, Float: float64(v)} }
func F64(v float64) Token  { return Token{Kind: KindF64, Float: v} }
func Char(v rune) Token    { return Token{Kind: KindChar, Char: v} }
func Str(v string) Token   { return Token{Kind: KindStr, Str: v} }
func Bytes(v string) Token { return Token{Kind: KindBytes, Str: v} }

// Option marks whether an optional value is present; a present option is
// followed by the tokens of its payload.
func Option(present bool) Token { return Token{Kind: KindOption, Bool: present} }

func Unit() Token                     { return Token{Kind: KindUnit} }
func UnitStruct(name string) Token    { return Token{Kind: KindUnitStruct, Name: name} }
func NewtypeStruct(name string) Token { return Token{Kind: KindNewtypeStruct, Name: name} }

func SeqStart(n int) Token { return Token{Kind: KindSeqStart, Len: n} }
func SeqEnd() Token        { return Token{Kind: KindSeqEnd} }
func MapStart(n int) Token { return Token{Kind: KindMapStart, Len: n} }
func MapEnd() Token        { return Token{Kind: KindMapEnd} }

func TupleStructStart(name string, n int) Token {
	return Token{Kind: KindTupleStructStart, Name: name, Len: n}
}
func TupleStructEnd() Token { return Token{Kind: KindTupleStructEnd} }

func StructStart(name string, n int) Token {
	return Token{Kind: KindStructStart, Name: name, Len: n}
}
func StructEnd() Token { return Token{Kind: KindStructEnd} }

func UnitVariant(name, variant string, index uint32) Token {
	return Token{Kind: KindUnitVariant, Name: name, Variant: variant, Index: index}
}
func NewtypeVariant(name, variant string, index uint32) Token {
	return Token{Kind: KindNewtypeVariant, Name: name, Variant: variant, Index: index}
}
func TupleVariantStart(name, variant string, index uint32, n int) Token {
	return Token{Kind: KindTupleVariantStart, Name: name, Variant: variant, Index: index, Len: n}
}
func TupleVariantEnd() Token { return Token{Kind: KindTupleVariantEnd} }
func StructVariantStart(name, variant string, index uint32, n int) Token {
	return Token{Kind: KindStructVariantStart, Name: name, Variant: variant, Index: index, Len: n}
}
func StructVariantEnd() Token { return Token{Kind: KindStructVariantEnd} }

func (t Token) String() string {
	switch t.Kind {
	case KindBool:
		return fmt.Sprintf("Bool(%t)", t.Bool)
	case KindI8:
		return fmt.Sprintf("I8(%d)", t.Int)
	case KindI16:
		return fmt.Sprintf("I16(%d)", t.Int)
	case KindI32:
		return fmt.Sprintf("I32(%d)", t.Int)
	case KindI64:
		return fmt.Sprintf("I64(%d)", t.Int)
	case KindU8:
		return fmt.Sprintf("U8(%d)", t.Uint)
	case KindU16:
		return fmt.Sprintf("U16(%d)", t.Uint)
	case KindU32:
		return fmt.Sprintf("U32(%d)", t.Uint)
	case KindU64:
		return fmt.Sprintf("U64(%d)", t.Uint)
	case KindF32:
		return "F32(" + strconv.FormatFloat(t.Float, 'g', -1, 32) + ")"
	case KindF64:
		return "F64(" + strconv.FormatFloat(t.Float, 'g', -1, 64) + ")"
	case KindChar:
		return fmt.Sprintf("Char(%q)", t.Char)
	case KindStr:
		return fmt.Sprintf("Str(%q)", t.Str)
	case KindBytes:
		return fmt.Sprintf("Bytes(%q)", t.Str)
	case KindOption:
		return fmt.Sprintf("Option(%t)", t.Bool)
	case KindUnit:
		return "Unit"
	case KindUnitStruct:
		return fmt.Sprintf("UnitStruct(%q)", t.Name)
	case KindNewtypeStruct:
		return fmt.Sprintf("NewtypeStruct(%q)", t.Name)
	case KindSeqStart:
		return fmt.Sprintf("SeqStart(%d)", t.Len)
	case KindSeqEnd:
		return "SeqEnd"
	case KindMapStart:
		return fmt.Sprintf("MapStart(%d)", t.Len)
	case KindMapEnd:
		return "MapEnd"
	case KindTupleStructStart:
		return fmt.Sprintf("TupleStructStart(%q, %d)", t.Name, t.Len)
	case KindTupleStructEnd:
		return "TupleStructEnd"
	case KindStructStart:
		return fmt.Sprintf("StructStart(%q, %d)", t.Name, t.Len)
	case KindStructEnd:
		return "StructEnd"
	case KindUnitVariant:
		return fmt.Sprintf("UnitVariant(%q, %q, %d)", t.Name, t.Variant, t.Index)
	case KindNewtypeVariant:
		return fmt.Sprintf("NewtypeVariant(%q, %q, %d)", t.Name, t.Variant, t.Index)
	case KindTupleVariantStart:
		return fmt.Sprintf("TupleVariantStart(%q, %q, %d, %d)", t.Name, t.Variant, t.Index, t.Len)
	case KindTupleVariantEnd:
		return "TupleVariantEnd"
	case KindStructVariantStart:
		return fmt.Sprintf("StructVariantStart(%q, %q, %d, %d)", t.Name, t.Variant, t.Index, t.Len)
	case KindStructVariantEnd:
		return "StructVariantEnd"
	default:
		return "UnknownToken"
	}
}
