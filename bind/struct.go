// Package bind declares record and sum-type shapes at runtime and drives the
// wireform protocol on their behalf. It stands in for whatever code
// generation or hand-written boilerplate normally sits at the value-type
// boundary, and centralizes field policies: unknown-field handling,
// defaults, and duplicate/missing enforcement.
package bind

import (
	"fmt"

	wireform "github.com/reoring/wireform"
)

// UnknownPolicy controls how fields absent from the declaration are handled.
type UnknownPolicy int

const (
	UnknownSkip UnknownPolicy = iota // Consume and discard unknown fields.
	UnknownDeny                      // Reject unknown fields with an error.
)

// Field is one declared field of a named record.
type Field struct {
	Name string
	// Decode produces the field value from its sub-decoder.
	Decode wireform.DecodeFunc
	// Default supplies the value when the field is absent; nil means the
	// field is required and its absence is a missing_field error.
	Default func() any
}

// Struct is a declared named record.
type Struct struct {
	Name    string
	Fields  []Field
	Unknown UnknownPolicy
}

// FieldNames returns the declared field names in order.
func (s Struct) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Decode drives dec.DecodeStruct and returns the field values keyed by name.
// Missing non-defaulted fields fail with missing_field; duplicates fail with
// duplicate_field; unknown fields follow the declared policy.
func (s Struct) Decode(dec wireform.Decoder) (map[string]any, error) {
	out, err := dec.DecodeStruct(s.Name, s.FieldNames(), s.Visitor())
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// Target adapts Decode to the cursor/seed argument position.
func (s Struct) Target() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) { return s.Decode(d) }
}

// Visitor exposes the record's field-draining visitor, for use inside
// VariantAccess.StructVariant.
func (s Struct) Visitor() wireform.Visitor {
	return &structVisitor{
		UnimplementedVisitor: wireform.Expecting("struct " + s.Name),
		s:                    s,
	}
}

type structVisitor struct {
	wireform.UnimplementedVisitor
	s Struct
}

func (v *structVisitor) VisitMap(ma wireform.MapAccess) (any, error) {
	s := v.s
	values := make(map[string]any, len(s.Fields))
	keyTarget := wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsString(d)
	})
	for {
		k, ok, err := ma.NextKey(keyTarget)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name := k.(string)
		f := s.field(name)
		if f == nil {
			if s.Unknown == UnknownDeny {
				return nil, wireform.ErrUnknownField(name)
			}
			if _, err := ma.NextValue(wireform.Ignore()); err != nil {
				return nil, err
			}
			continue
		}
		if _, dup := values[name]; dup {
			return nil, wireform.ErrDuplicateField(name)
		}
		fv, err := ma.NextValue(f.Decode)
		if err != nil {
			return nil, err
		}
		values[name] = fv
	}
	if err := ma.End(); err != nil {
		return nil, err
	}
	return s.finish(values)
}

// VisitSeq accepts the record as a bare tuple of its fields in declaration
// order, the form compact formats use.
func (v *structVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	s := v.s
	values := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		fv, ok, err := sa.NextElement(f.Decode)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		values[f.Name] = fv
	}
	if err := sa.End(); err != nil {
		return nil, err
	}
	return s.finish(values)
}

func (s Struct) field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

func (s Struct) finish(values map[string]any) (map[string]any, error) {
	for _, f := range s.Fields {
		if _, ok := values[f.Name]; ok {
			continue
		}
		if f.Default != nil {
			values[f.Name] = f.Default()
			continue
		}
		return nil, wireform.ErrMissingField(f.Name)
	}
	return values, nil
}

// ---- encode side ----

// FieldValue is one field of a record being encoded. Omit marks a
// policy-skipped field: it is neither written nor counted in the declared
// length.
type FieldValue struct {
	Name  string
	Value wireform.Encodable
	Omit  bool
}

// EncodeStruct writes a named record, honoring Omit.
func EncodeStruct(enc wireform.Encoder, name string, fields ...FieldValue) error {
	n := 0
	for _, f := range fields {
		if !f.Omit {
			n++
		}
	}
	se, err := enc.EncodeStruct(name, n)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if f.Omit {
			continue
		}
		if err := se.EncodeField(f.Name, f.Value); err != nil {
			return err
		}
	}
	return se.End()
}

// StructValue wraps EncodeStruct as an Encodable.
func StructValue(name string, fields ...FieldValue) wireform.Encodable {
	return wireform.EncodableFunc(func(enc wireform.Encoder) error {
		return EncodeStruct(enc, name, fields...)
	})
}

// ---- tuple payloads ----

// tupleVisitor drains a fixed-arity sequence with one target per position.
type tupleVisitor struct {
	wireform.UnimplementedVisitor
	name  string
	elems []wireform.DecodeFunc
}

func newTupleVisitor(name string, elems []wireform.DecodeFunc) *tupleVisitor {
	return &tupleVisitor{
		UnimplementedVisitor: wireform.Expecting(fmt.Sprintf("a tuple of %d elements", len(elems))),
		name:                 name,
		elems:                elems,
	}
}

func (v *tupleVisitor) VisitSeq(sa wireform.SeqAccess) (any, error) {
	out := make([]any, 0, len(v.elems))
	for i, target := range v.elems {
		ev, ok, err := sa.NextElement(target)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, wireform.ErrInvalidLength(i, fmt.Sprintf("%d elements", len(v.elems)))
		}
		out = append(out, ev)
	}
	if err := sa.End(); err != nil {
		return nil, err
	}
	return out, nil
}
