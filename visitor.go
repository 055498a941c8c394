package wireform

// Visitor receives exactly one VisitX call per decode operation, matching the
// shape the Decoder produced. Embed UnimplementedVisitor to inherit defaults
// that fail closed with invalid_type.
type Visitor interface {
	// Expecting describes what the visitor accepts, for invalid_type
	// diagnostics ("a point expressed as two integers").
	Expecting() string

	VisitBool(v bool) (any, error)
	VisitInt8(v int8) (any, error)
	VisitInt16(v int16) (any, error)
	VisitInt32(v int32) (any, error)
	VisitInt64(v int64) (any, error)
	VisitUint8(v uint8) (any, error)
	VisitUint16(v uint16) (any, error)
	VisitUint32(v uint32) (any, error)
	VisitUint64(v uint64) (any, error)
	VisitFloat32(v float32) (any, error)
	VisitFloat64(v float64) (any, error)
	VisitChar(v rune) (any, error)
	VisitString(v string) (any, error)
	VisitBytes(v []byte) (any, error)

	VisitNone() (any, error)
	// VisitSome receives a Decoder positioned on the option's payload.
	VisitSome(dec Decoder) (any, error)
	VisitUnit() (any, error)
	// VisitNewtype receives a Decoder positioned on a newtype's inner value.
	VisitNewtype(dec Decoder) (any, error)
	VisitSeq(sa SeqAccess) (any, error)
	VisitMap(ma MapAccess) (any, error)
	VisitEnum(ea EnumAccess) (any, error)
}

// UnimplementedVisitor fails every VisitX with invalid_type carrying the
// shape that arrived. Embed it and override the methods the target accepts.
type UnimplementedVisitor struct {
	// Desc is returned from Expecting when set.
	Desc string
}

// Expecting seeds the fail-closed defaults with a description of what the
// embedding visitor accepts. Set it at construction; rejects read it through
// the embedded value.
func Expecting(desc string) UnimplementedVisitor {
	return UnimplementedVisitor{Desc: desc}
}

func (u UnimplementedVisitor) Expecting() string {
	if u.Desc != "" {
		return u.Desc
	}
	return "a value"
}

func (u UnimplementedVisitor) reject(got Shape) (any, error) {
	return nil, ErrInvalidType(got, u.Expecting())
}

func (u UnimplementedVisitor) VisitBool(bool) (any, error)       { return u.reject(ShapeBool) }
func (u UnimplementedVisitor) VisitInt8(int8) (any, error)       { return u.reject(ShapeI8) }
func (u UnimplementedVisitor) VisitInt16(int16) (any, error)     { return u.reject(ShapeI16) }
func (u UnimplementedVisitor) VisitInt32(int32) (any, error)     { return u.reject(ShapeI32) }
func (u UnimplementedVisitor) VisitInt64(int64) (any, error)     { return u.reject(ShapeI64) }
func (u UnimplementedVisitor) VisitUint8(uint8) (any, error)     { return u.reject(ShapeU8) }
func (u UnimplementedVisitor) VisitUint16(uint16) (any, error)   { return u.reject(ShapeU16) }
func (u UnimplementedVisitor) VisitUint32(uint32) (any, error)   { return u.reject(ShapeU32) }
func (u UnimplementedVisitor) VisitUint64(uint64) (any, error)   { return u.reject(ShapeU64) }
func (u UnimplementedVisitor) VisitFloat32(float32) (any, error) { return u.reject(ShapeF32) }
func (u UnimplementedVisitor) VisitFloat64(float64) (any, error) { return u.reject(ShapeF64) }
func (u UnimplementedVisitor) VisitChar(rune) (any, error)       { return u.reject(ShapeChar) }
func (u UnimplementedVisitor) VisitString(string) (any, error)   { return u.reject(ShapeStr) }
func (u UnimplementedVisitor) VisitBytes([]byte) (any, error)    { return u.reject(ShapeBytes) }
func (u UnimplementedVisitor) VisitNone() (any, error)           { return u.reject(ShapeOption) }
func (u UnimplementedVisitor) VisitSome(Decoder) (any, error)    { return u.reject(ShapeOption) }
func (u UnimplementedVisitor) VisitUnit() (any, error)           { return u.reject(ShapeUnit) }
func (u UnimplementedVisitor) VisitNewtype(Decoder) (any, error) {
	return u.reject(ShapeNewtypeStruct)
}
func (u UnimplementedVisitor) VisitSeq(SeqAccess) (any, error)   { return u.reject(ShapeSeq) }
func (u UnimplementedVisitor) VisitMap(MapAccess) (any, error)   { return u.reject(ShapeMap) }
func (u UnimplementedVisitor) VisitEnum(EnumAccess) (any, error) { return u.reject(ShapeUnitVariant) }
