package wireform

// Decodable reconstructs a value of some type from a Decoder. Implementations
// may carry state, which makes the same interface serve as a decode seed.
type Decodable interface {
	Decode(dec Decoder) (any, error)
}

// DecodeFunc adapts a function to Decodable.
type DecodeFunc func(Decoder) (any, error)

func (f DecodeFunc) Decode(dec Decoder) (any, error) { return f(dec) }

// Decoder is the pull-style contract a concrete format implements. A
// self-describing format dispatches DecodeAny to the one VisitX matching what
// the input actually holds; a non-self-describing format relies on the
// per-shape entry points the target type calls based on its own static shape.
// Either way, exactly one VisitX fires per decode call.
type Decoder interface {
	// DecodeAny inspects the input and dispatches to the matching VisitX.
	// Formats that cannot self-describe return an error here.
	DecodeAny(v Visitor) (any, error)

	DecodeBool(v Visitor) (any, error)
	DecodeInt8(v Visitor) (any, error)
	DecodeInt16(v Visitor) (any, error)
	DecodeInt32(v Visitor) (any, error)
	DecodeInt64(v Visitor) (any, error)
	DecodeUint8(v Visitor) (any, error)
	DecodeUint16(v Visitor) (any, error)
	DecodeUint32(v Visitor) (any, error)
	DecodeUint64(v Visitor) (any, error)
	DecodeFloat32(v Visitor) (any, error)
	DecodeFloat64(v Visitor) (any, error)
	DecodeChar(v Visitor) (any, error)
	DecodeString(v Visitor) (any, error)
	DecodeBytes(v Visitor) (any, error)

	// DecodeOption fires VisitNone or VisitSome depending on input.
	DecodeOption(v Visitor) (any, error)
	DecodeUnit(v Visitor) (any, error)
	DecodeUnitStruct(name string, v Visitor) (any, error)
	DecodeNewtypeStruct(name string, v Visitor) (any, error)
	DecodeSeq(v Visitor) (any, error)
	DecodeTupleStruct(name string, n int, v Visitor) (any, error)
	DecodeMap(v Visitor) (any, error)
	// DecodeStruct decodes a named record with the declared field set.
	DecodeStruct(name string, fields []string, v Visitor) (any, error)
	// DecodeEnum decodes one variant of the named sum type.
	DecodeEnum(name string, variants []string, v Visitor) (any, error)
	// DecodeIgnored consumes exactly one value of any shape and discards it.
	DecodeIgnored(v Visitor) (any, error)

	IsHumanReadable() bool
}

// SeqAccess is a short-lived, single-use, forward-only cursor over the
// elements of a sequence, handed to a Visitor inside VisitSeq. The Visitor
// must drain it and confirm exhaustion via End before returning.
type SeqAccess interface {
	// NextElement decodes the next element into target. ok is false once the
	// sequence is exhausted; further calls keep reporting ok == false rather
	// than failing.
	NextElement(target Decodable) (v any, ok bool, err error)
	// Size returns the remaining element count when known, -1 otherwise.
	Size() int
	// End confirms exhaustion. Mandatory terminal call; the cursor is not
	// reusable afterwards.
	End() error
}

// MapAccess is the cursor over ordered key/value pairs of a map or the fields
// of a named record. Each NextKey returning ok must be followed by exactly
// one NextValue.
type MapAccess interface {
	NextKey(target Decodable) (k any, ok bool, err error)
	NextValue(target Decodable) (v any, err error)
	Size() int
	End() error
}

// EnumAccess hands a Visitor the discriminant of a sum type.
type EnumAccess interface {
	// Variant reads the chosen variant's name and returns the cursor for its
	// payload. Call exactly one VariantAccess method afterwards; the choice is
	// dictated by the target type's declared variant shape.
	Variant() (name string, va VariantAccess, err error)
}

// VariantAccess consumes the payload of the chosen variant. Exactly one
// method may be called, matching the variant's declared shape.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(target Decodable) (any, error)
	TupleVariant(n int, v Visitor) (any, error)
	StructVariant(fields []string, v Visitor) (any, error)
}
