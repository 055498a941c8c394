package bind

import (
	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/content"
)

// Tagging selects where the variant discriminant of a sum type lives on the
// wire.
type Tagging int

const (
	// External wraps the payload under the variant name (the protocol's
	// native variant calls).
	External Tagging = iota
	// Internal embeds the tag among the payload's own fields.
	Internal
	// Adjacent puts tag and payload in sibling fields of a two-field record.
	Adjacent
	// Untagged writes the bare payload; decoding tries each variant in
	// declaration order against a buffered copy of the input.
	Untagged
)

// Variant is one declared variant of a sum type. Exactly the members
// matching Shape are consulted: Payload for a newtype variant, Elems for a
// tuple variant, Struct for a struct variant.
type Variant struct {
	Name    string
	Index   uint32
	Shape   wireform.Shape
	Payload wireform.DecodeFunc
	Elems   []wireform.DecodeFunc
	Struct  *Struct
}

// Enum is a declared sum type.
type Enum struct {
	Name     string
	Variants []Variant
	Tagging  Tagging
	// TagField names the discriminant field for Internal and Adjacent tagging.
	TagField string
	// PayloadField names the payload field for Adjacent tagging.
	PayloadField string
}

// VariantNames returns the declared variant names in order.
func (e Enum) VariantNames() []string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Name
	}
	return names
}

func (e Enum) variant(name string) *Variant {
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i]
		}
	}
	return nil
}

// Decode resolves which variant the input holds and decodes its payload,
// returning the variant name and the payload value (nil for unit variants).
func (e Enum) Decode(dec wireform.Decoder) (string, any, error) {
	switch e.Tagging {
	case Internal:
		return content.DecodeInternallyTagged(dec, e.Name, e.TagField, e.candidates(true))
	case Adjacent:
		return content.DecodeAdjacentlyTagged(dec, e.Name, e.TagField, e.PayloadField, e.candidates(true))
	case Untagged:
		return content.DecodeUntagged(dec, e.Name, e.candidates(false))
	default:
		out, err := dec.DecodeEnum(e.Name, e.VariantNames(), &enumVisitor{
			UnimplementedVisitor: wireform.Expecting("variant of " + e.Name),
			e:                    e,
		})
		if err != nil {
			return "", nil, err
		}
		r := out.(variantResult)
		return r.name, r.payload, nil
	}
}

// Target adapts Decode to the cursor/seed argument position, returning the
// variant name and payload as a two-element slice.
func (e Enum) Target() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) {
		name, payload, err := e.Decode(d)
		if err != nil {
			return nil, err
		}
		return []any{name, payload}, nil
	}
}

type variantResult struct {
	name    string
	payload any
}

type enumVisitor struct {
	wireform.UnimplementedVisitor
	e Enum
}

func (v *enumVisitor) VisitEnum(ea wireform.EnumAccess) (any, error) {
	name, va, err := ea.Variant()
	if err != nil {
		return nil, err
	}
	decl := v.e.variant(name)
	if decl == nil {
		return nil, wireform.ErrUnknownVariant(name, v.e.VariantNames())
	}
	switch decl.Shape {
	case wireform.ShapeUnitVariant:
		if err := va.UnitVariant(); err != nil {
			return nil, err
		}
		return variantResult{name: name}, nil
	case wireform.ShapeNewtypeVariant:
		payload, err := va.NewtypeVariant(decl.Payload)
		if err != nil {
			return nil, err
		}
		return variantResult{name: name, payload: payload}, nil
	case wireform.ShapeTupleVariant:
		payload, err := va.TupleVariant(len(decl.Elems), newTupleVisitor(name, decl.Elems))
		if err != nil {
			return nil, err
		}
		return variantResult{name: name, payload: payload}, nil
	default:
		payload, err := va.StructVariant(decl.Struct.FieldNames(), decl.Struct.Visitor())
		if err != nil {
			return nil, err
		}
		return variantResult{name: name, payload: payload}, nil
	}
}

// candidates projects the declared variants into buffered-resolution
// candidates. lenientUnit relaxes unit variants to accept (and discard) any
// leftover payload, which tagged resolutions need: an internally tagged unit
// variant legitimately leaves an empty field map behind. Untagged resolution
// keeps unit variants strict, otherwise a trailing unit candidate would
// swallow every input.
func (e Enum) candidates(lenientUnit bool) []content.Candidate {
	out := make([]content.Candidate, len(e.Variants))
	for i := range e.Variants {
		decl := e.Variants[i]
		var decode wireform.DecodeFunc
		switch decl.Shape {
		case wireform.ShapeUnitVariant:
			if lenientUnit {
				decode = func(d wireform.Decoder) (any, error) {
					return d.DecodeIgnored(unitResultVisitor{wireform.Expecting("unit")})
				}
			} else {
				decode = func(d wireform.Decoder) (any, error) {
					return d.DecodeUnit(unitResultVisitor{wireform.Expecting("unit")})
				}
			}
		case wireform.ShapeNewtypeVariant:
			decode = decl.Payload
		case wireform.ShapeTupleVariant:
			elems := decl.Elems
			name := decl.Name
			decode = func(d wireform.Decoder) (any, error) {
				return d.DecodeSeq(newTupleVisitor(name, elems))
			}
		default:
			st := decl.Struct
			decode = func(d wireform.Decoder) (any, error) {
				v, err := st.Decode(d)
				if err != nil {
					return nil, err
				}
				return v, nil
			}
		}
		out[i] = content.Candidate{Name: decl.Name, Decode: decode}
	}
	return out
}

type unitResultVisitor struct{ wireform.UnimplementedVisitor }

func (unitResultVisitor) VisitUnit() (any, error) { return nil, nil }

// ---- encode side ----

// VariantValue is one variant instance being encoded. Exactly the member
// matching the declared shape is consulted.
type VariantValue struct {
	Name   string
	Value  wireform.Encodable // newtype payload
	Elems  []wireform.Encodable
	Fields []FieldValue
}

// Encode writes the variant under the declared tagging.
func (e Enum) Encode(enc wireform.Encoder, vv VariantValue) error {
	decl := e.variant(vv.Name)
	if decl == nil {
		return wireform.ErrUnknownVariant(vv.Name, e.VariantNames())
	}
	switch e.Tagging {
	case Internal:
		return e.encodeInternal(enc, decl, vv)
	case Adjacent:
		return e.encodeAdjacent(enc, decl, vv)
	case Untagged:
		return e.encodeUntagged(enc, decl, vv)
	default:
		return e.encodeExternal(enc, decl, vv)
	}
}

func (e Enum) encodeExternal(enc wireform.Encoder, decl *Variant, vv VariantValue) error {
	switch decl.Shape {
	case wireform.ShapeUnitVariant:
		return enc.EncodeUnitVariant(e.Name, decl.Name, decl.Index)
	case wireform.ShapeNewtypeVariant:
		return enc.EncodeNewtypeVariant(e.Name, decl.Name, decl.Index, vv.Value)
	case wireform.ShapeTupleVariant:
		se, err := enc.EncodeTupleVariant(e.Name, decl.Name, decl.Index, len(vv.Elems))
		if err != nil {
			return err
		}
		for _, el := range vv.Elems {
			if err := se.EncodeElement(el); err != nil {
				return err
			}
		}
		return se.End()
	default:
		n := 0
		for _, f := range vv.Fields {
			if !f.Omit {
				n++
			}
		}
		se, err := enc.EncodeStructVariant(e.Name, decl.Name, decl.Index, n)
		if err != nil {
			return err
		}
		for _, f := range vv.Fields {
			if f.Omit {
				continue
			}
			if err := se.EncodeField(f.Name, f.Value); err != nil {
				return err
			}
		}
		return se.End()
	}
}

// encodeInternal flattens the tag into the payload's own record: the result
// is a single record whose first field is the tag.
func (e Enum) encodeInternal(enc wireform.Encoder, decl *Variant, vv VariantValue) error {
	switch decl.Shape {
	case wireform.ShapeUnitVariant:
		return EncodeStruct(enc, e.Name, FieldValue{Name: e.TagField, Value: wireform.Str(decl.Name)})
	case wireform.ShapeStructVariant:
		fields := append([]FieldValue{{Name: e.TagField, Value: wireform.Str(decl.Name)}}, vv.Fields...)
		return EncodeStruct(enc, e.Name, fields...)
	default:
		return wireform.ErrCustomf("cannot encode %s variant %s of %s with an internal tag", decl.Shape, decl.Name, e.Name)
	}
}

func (e Enum) encodeAdjacent(enc wireform.Encoder, decl *Variant, vv VariantValue) error {
	fields := []FieldValue{{Name: e.TagField, Value: wireform.Str(decl.Name)}}
	switch decl.Shape {
	case wireform.ShapeUnitVariant:
		// Tag only; the payload field is omitted for unit variants.
	case wireform.ShapeNewtypeVariant:
		fields = append(fields, FieldValue{Name: e.PayloadField, Value: vv.Value})
	case wireform.ShapeTupleVariant:
		fields = append(fields, FieldValue{Name: e.PayloadField, Value: wireform.Seq(vv.Elems...)})
	default:
		fields = append(fields, FieldValue{Name: e.PayloadField, Value: StructValue(decl.Name, vv.Fields...)})
	}
	return EncodeStruct(enc, e.Name, fields...)
}

func (e Enum) encodeUntagged(enc wireform.Encoder, decl *Variant, vv VariantValue) error {
	switch decl.Shape {
	case wireform.ShapeUnitVariant:
		return enc.EncodeUnit()
	case wireform.ShapeNewtypeVariant:
		return vv.Value.Encode(enc)
	case wireform.ShapeTupleVariant:
		return wireform.Seq(vv.Elems...).Encode(enc)
	default:
		return EncodeStruct(enc, decl.Name, vv.Fields...)
	}
}
