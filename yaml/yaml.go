// Package yaml adapts gopkg.in/yaml.v3 node trees to the wireform protocol:
// a second self-describing text format sharing the json package's
// conventions (externally tagged variants, null for unit and absent
// options).
package yaml

import (
	"encoding/base64"
	"strconv"

	goyaml "gopkg.in/yaml.v3"

	wireform "github.com/reoring/wireform"
)

// Unmarshal decodes one YAML document into target.
func Unmarshal(data []byte, target wireform.Decodable) (any, error) {
	var doc goyaml.Node
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return nil, wireform.Issue{Code: wireform.CodeCustom, Message: "yaml: malformed input", Cause: err}
	}
	n := &doc
	if doc.Kind == goyaml.DocumentNode {
		if len(doc.Content) == 0 {
			n = &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!null", Value: "null"}
		} else {
			n = doc.Content[0]
		}
	}
	return target.Decode(&Decoder{n: deref(n)})
}

func deref(n *goyaml.Node) *goyaml.Node {
	for n.Kind == goyaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Decoder implements wireform.Decoder over a resolved YAML node.
type Decoder struct {
	n *goyaml.Node
}

func (d *Decoder) sub(n *goyaml.Node) *Decoder { return &Decoder{n: deref(n)} }

func (d *Decoder) IsHumanReadable() bool { return true }

func (d *Decoder) isNull() bool {
	return d.n.Kind == goyaml.ScalarNode && d.n.Tag == "!!null"
}

func (d *Decoder) DecodeAny(vis wireform.Visitor) (any, error) {
	switch d.n.Kind {
	case goyaml.SequenceNode:
		return vis.VisitSeq(&seqAccess{d: d, items: d.n.Content})
	case goyaml.MappingNode:
		return vis.VisitMap(&mapAccess{d: d, items: d.n.Content})
	case goyaml.ScalarNode:
		return d.dispatchScalar(vis)
	default:
		return nil, wireform.ErrCustomf("yaml: unsupported node kind %d", d.n.Kind)
	}
}

func (d *Decoder) dispatchScalar(vis wireform.Visitor) (any, error) {
	switch d.n.Tag {
	case "!!null":
		return vis.VisitUnit()
	case "!!bool":
		b, err := strconv.ParseBool(d.n.Value)
		if err != nil {
			return nil, wireform.ErrInvalidValue("malformed YAML bool " + d.n.Value)
		}
		return vis.VisitBool(b)
	case "!!int":
		if i, err := strconv.ParseInt(d.n.Value, 0, 64); err == nil {
			return vis.VisitInt64(i)
		}
		if u, err := strconv.ParseUint(d.n.Value, 0, 64); err == nil {
			return vis.VisitUint64(u)
		}
		return nil, wireform.ErrInvalidValue("malformed YAML integer " + d.n.Value)
	case "!!float":
		f, err := strconv.ParseFloat(d.n.Value, 64)
		if err != nil {
			return nil, wireform.ErrInvalidValue("malformed YAML float " + d.n.Value)
		}
		return vis.VisitFloat64(f)
	case "!!binary":
		raw, err := base64.StdEncoding.DecodeString(d.n.Value)
		if err != nil {
			return nil, wireform.ErrInvalidValue("invalid base64 in !!binary scalar")
		}
		return vis.VisitBytes(raw)
	default:
		return vis.VisitString(d.n.Value)
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

func (d *Decoder) DecodeOption(v wireform.Visitor) (any, error) {
	if d.isNull() {
		return v.VisitNone()
	}
	return v.VisitSome(d)
}

func (d *Decoder) DecodeUnit(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }

func (d *Decoder) DecodeUnitStruct(name string, v wireform.Visitor) (any, error) {
	return d.DecodeAny(v)
}

func (d *Decoder) DecodeNewtypeStruct(name string, v wireform.Visitor) (any, error) {
	return v.VisitNewtype(d)
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
	switch d.n.Kind {
	case goyaml.ScalarNode:
		if d.n.Tag == "!!str" || d.n.Tag == "" {
			return v.VisitEnum(&enumAccess{d: d, variant: d.n.Value})
		}
		return nil, wireform.ErrInvalidType(wireform.ShapeStr, "variant of "+name)
	case goyaml.MappingNode:
		if len(d.n.Content) != 2 {
			return nil, wireform.ErrInvalidValue("mapping must have a single entry to name a variant")
		}
		key := deref(d.n.Content[0])
		if key.Kind != goyaml.ScalarNode {
			return nil, wireform.ErrInvalidType(wireform.ShapeMap, "a variant name")
		}
		return v.VisitEnum(&enumAccess{d: d, variant: key.Value, payload: d.n.Content[1]})
	default:
		return nil, wireform.ErrInvalidType(wireform.ShapeSeq, "variant of "+name)
	}
}

func (d *Decoder) DecodeIgnored(v wireform.Visitor) (any, error) { return v.VisitUnit() }

// ---- cursors ----

type seqAccess struct {
	d     *Decoder
	items []*goyaml.Node
	pos   int
}

func (s *seqAccess) NextElement(target wireform.Decodable) (any, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	v, err := target.Decode(s.d.sub(s.items[s.pos]))
	if err != nil {
		return nil, false, err
	}
	s.pos++
	return v, true, nil
}

func (s *seqAccess) Size() int { return len(s.items) - s.pos }

func (s *seqAccess) End() error {
	if rest := len(s.items) - s.pos; rest > 0 {
		return wireform.ErrInvalidLength(s.pos, strconv.Itoa(len(s.items))+" elements")
	}
	return nil
}

// mapAccess walks the flat [key, value, key, value, ...] layout of a
// yaml.v3 mapping node.
type mapAccess struct {
	d            *Decoder
	items        []*goyaml.Node
	pos          int
	valuePending bool
}

func (m *mapAccess) NextKey(target wireform.Decodable) (any, bool, error) {
	if m.pos >= len(m.items) {
		return nil, false, nil
	}
	if m.valuePending {
		return nil, false, wireform.ErrCustom("NextKey called with a value pending")
	}
	k, err := target.Decode(m.d.sub(m.items[m.pos]))
	if err != nil {
		return nil, false, err
	}
	m.valuePending = true
	return k, true, nil
}

func (m *mapAccess) NextValue(target wireform.Decodable) (any, error) {
	if !m.valuePending {
		return nil, wireform.ErrCustom("NextValue called before NextKey")
	}
	v, err := target.Decode(m.d.sub(m.items[m.pos+1]))
	if err != nil {
		return nil, err
	}
	m.pos += 2
	m.valuePending = false
	return v, nil
}

func (m *mapAccess) Size() int { return (len(m.items) - m.pos) / 2 }

func (m *mapAccess) End() error {
	if rest := len(m.items) - m.pos; rest > 0 {
		return wireform.ErrInvalidLength(m.pos/2, strconv.Itoa(len(m.items)/2)+" entries")
	}
	return nil
}

type enumAccess struct {
	d       *Decoder
	variant string
	payload *goyaml.Node
}

func (e *enumAccess) Variant() (string, wireform.VariantAccess, error) {
	return e.variant, &variantAccess{d: e.d, payload: e.payload}, nil
}

type variantAccess struct {
	d       *Decoder
	payload *goyaml.Node
}

func (va *variantAccess) UnitVariant() error {
	if va.payload == nil {
		return nil
	}
	sub := va.d.sub(va.payload)
	if sub.isNull() {
		return nil
	}
	return wireform.ErrInvalidType(wireform.ShapeNewtypeVariant, "unit variant")
}

func (va *variantAccess) NewtypeVariant(target wireform.Decodable) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "newtype variant")
	}
	return target.Decode(va.d.sub(va.payload))
}

func (va *variantAccess) TupleVariant(n int, v wireform.Visitor) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "tuple variant")
	}
	sub := va.d.sub(va.payload)
	if sub.n.Kind != goyaml.SequenceNode {
		return nil, wireform.ErrInvalidType(wireform.ShapeMap, "tuple variant")
	}
	return v.VisitSeq(&seqAccess{d: sub, items: sub.n.Content})
}

func (va *variantAccess) StructVariant(fields []string, v wireform.Visitor) (any, error) {
	if va.payload == nil {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "struct variant")
	}
	sub := va.d.sub(va.payload)
	if sub.n.Kind != goyaml.MappingNode {
		return nil, wireform.ErrInvalidType(wireform.ShapeSeq, "struct variant")
	}
	return v.VisitMap(&mapAccess{d: sub, items: sub.n.Content})
}
