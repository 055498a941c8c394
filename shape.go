package wireform

// Shape identifies one case of the closed grammar every value decomposes
// into. A value has exactly one Shape; a compound shape's sub-calls must
// match its declared arity exactly.
type Shape int

const (
	ShapeUnit Shape = iota
	ShapeBool
	ShapeI8
	ShapeI16
	ShapeI32
	ShapeI64
	ShapeU8
	ShapeU16
	ShapeU32
	ShapeU64
	ShapeF32
	ShapeF64
	ShapeChar
	ShapeStr
	ShapeBytes
	ShapeOption
	ShapeSeq
	ShapeMap
	ShapeUnitStruct
	ShapeNewtypeStruct
	ShapeTupleStruct
	ShapeStruct
	ShapeUnitVariant
	ShapeNewtypeVariant
	ShapeTupleVariant
	ShapeStructVariant
)

var shapeNames = [...]string{
	ShapeUnit:           "unit",
	ShapeBool:           "bool",
	ShapeI8:             "i8",
	ShapeI16:            "i16",
	ShapeI32:            "i32",
	ShapeI64:            "i64",
	ShapeU8:             "u8",
	ShapeU16:            "u16",
	ShapeU32:            "u32",
	ShapeU64:            "u64",
	ShapeF32:            "f32",
	ShapeF64:            "f64",
	ShapeChar:           "char",
	ShapeStr:            "str",
	ShapeBytes:          "bytes",
	ShapeOption:         "option",
	ShapeSeq:            "seq",
	ShapeMap:            "map",
	ShapeUnitStruct:     "unit struct",
	ShapeNewtypeStruct:  "newtype struct",
	ShapeTupleStruct:    "tuple struct",
	ShapeStruct:         "struct",
	ShapeUnitVariant:    "unit variant",
	ShapeNewtypeVariant: "newtype variant",
	ShapeTupleVariant:   "tuple variant",
	ShapeStructVariant:  "struct variant",
}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown shape"
}

// IsVariant reports whether s is one of the four variant shapes of a sum type.
func (s Shape) IsVariant() bool {
	switch s {
	case ShapeUnitVariant, ShapeNewtypeVariant, ShapeTupleVariant, ShapeStructVariant:
		return true
	}
	return false
}
