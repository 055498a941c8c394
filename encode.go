package wireform

// Encodable is implemented by values that can walk an Encoder. A value walks
// exactly the calls appropriate to its one Shape; the first error aborts the
// remaining calls (no partial compound is terminated).
type Encodable interface {
	Encode(enc Encoder) error
}

// EncodableFunc adapts a function to Encodable.
type EncodableFunc func(Encoder) error

func (f EncodableFunc) Encode(enc Encoder) error { return f(enc) }

// Encoder is the push-style contract a concrete format implements. One method
// per primitive shape; compound shapes open via an EncodeX call that returns
// a single-use state handle whose End must be called exactly once after the
// declared number of element calls.
//
// Fields a policy skips (e.g. omit-if-default) must not be written and must
// not count toward the declared length.
type Encoder interface {
	EncodeBool(v bool) error
	EncodeInt8(v int8) error
	EncodeInt16(v int16) error
	EncodeInt32(v int32) error
	EncodeInt64(v int64) error
	EncodeUint8(v uint8) error
	EncodeUint16(v uint16) error
	EncodeUint32(v uint32) error
	EncodeUint64(v uint64) error
	EncodeFloat32(v float32) error
	EncodeFloat64(v float64) error
	EncodeChar(v rune) error
	EncodeString(v string) error
	EncodeBytes(v []byte) error

	EncodeNone() error
	EncodeSome(v Encodable) error
	EncodeUnit() error
	EncodeUnitStruct(name string) error
	EncodeNewtypeStruct(name string, v Encodable) error
	EncodeUnitVariant(name, variant string, index uint32) error
	EncodeNewtypeVariant(name, variant string, index uint32, v Encodable) error

	// EncodeSeq opens a sequence of n elements; n is -1 when the count is not
	// known up front (terminator-delimited).
	EncodeSeq(n int) (SeqEncoder, error)
	EncodeTupleStruct(name string, n int) (SeqEncoder, error)
	EncodeTupleVariant(name, variant string, index uint32, n int) (SeqEncoder, error)
	// EncodeMap opens a map of n ordered key/value pairs; n is -1 when unknown.
	EncodeMap(n int) (MapEncoder, error)
	EncodeStruct(name string, n int) (StructEncoder, error)
	EncodeStructVariant(name, variant string, index uint32, n int) (StructEncoder, error)

	// IsHumanReadable reports whether the format targets people rather than
	// machines. This is the one place format identity may leak into otherwise
	// format-agnostic value code: a value may pick a richer textual encoding
	// of itself when true.
	IsHumanReadable() bool
}

// SeqEncoder is the state handle of an open sequence, tuple struct, or tuple
// variant. Not reusable after End.
type SeqEncoder interface {
	EncodeElement(v Encodable) error
	End() error
}

// MapEncoder is the state handle of an open map. Keys and values alternate:
// each EncodeKey must be followed by exactly one EncodeValue.
type MapEncoder interface {
	EncodeKey(k Encodable) error
	EncodeValue(v Encodable) error
	End() error
}

// StructEncoder is the state handle of an open named record or struct
// variant.
type StructEncoder interface {
	EncodeField(name string, v Encodable) error
	End() error
}
