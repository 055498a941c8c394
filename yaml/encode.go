package yaml

import (
	"encoding/base64"
	"strconv"

	goyaml "gopkg.in/yaml.v3"

	wireform "github.com/reoring/wireform"
)

// Marshal renders v as a YAML document.
func Marshal(v wireform.Encodable) ([]byte, error) {
	e := NewEncoder()
	if err := v.Encode(e); err != nil {
		return nil, err
	}
	out, err := goyaml.Marshal(e.Node())
	if err != nil {
		return nil, wireform.Issue{Code: wireform.CodeCustom, Message: "yaml: cannot render node tree", Cause: err}
	}
	return out, nil
}

// Encoder implements wireform.Encoder by building a yaml.v3 node tree.
// Single-use.
type Encoder struct {
	node *goyaml.Node
}

func NewEncoder() *Encoder { return &Encoder{} }

// Node returns the built tree.
func (e *Encoder) Node() *goyaml.Node { return e.node }

func (e *Encoder) IsHumanReadable() bool { return true }

func scalar(tag, value string) *goyaml.Node {
	return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: tag, Value: value}
}

func (e *Encoder) set(n *goyaml.Node) error {
	e.node = n
	return nil
}

func (e *Encoder) EncodeBool(v bool) error {
	return e.set(scalar("!!bool", strconv.FormatBool(v)))
}

func (e *Encoder) encodeInt(v int64) error {
	return e.set(scalar("!!int", strconv.FormatInt(v, 10)))
}

func (e *Encoder) encodeUint(v uint64) error {
	return e.set(scalar("!!int", strconv.FormatUint(v, 10)))
}

func (e *Encoder) EncodeInt8(v int8) error     { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt16(v int16) error   { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt32(v int32) error   { return e.encodeInt(int64(v)) }
func (e *Encoder) EncodeInt64(v int64) error   { return e.encodeInt(v) }
func (e *Encoder) EncodeUint8(v uint8) error   { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint16(v uint16) error { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint32(v uint32) error { return e.encodeUint(uint64(v)) }
func (e *Encoder) EncodeUint64(v uint64) error { return e.encodeUint(v) }

func (e *Encoder) EncodeFloat32(v float32) error {
	return e.set(scalar("!!float", strconv.FormatFloat(float64(v), 'g', -1, 32)))
}

func (e *Encoder) EncodeFloat64(v float64) error {
	return e.set(scalar("!!float", strconv.FormatFloat(v, 'g', -1, 64)))
}

func (e *Encoder) EncodeChar(v rune) error     { return e.set(scalar("!!str", string(v))) }
func (e *Encoder) EncodeString(v string) error { return e.set(scalar("!!str", v)) }

func (e *Encoder) EncodeBytes(v []byte) error {
	return e.set(scalar("!!binary", base64.StdEncoding.EncodeToString(v)))
}

func nullNode() *goyaml.Node { return scalar("!!null", "null") }

func (e *Encoder) EncodeNone() error { return e.set(nullNode()) }

func (e *Encoder) EncodeSome(v wireform.Encodable) error { return v.Encode(e) }

func (e *Encoder) EncodeUnit() error { return e.set(nullNode()) }

func (e *Encoder) EncodeUnitStruct(name string) error { return e.EncodeUnit() }

func (e *Encoder) EncodeNewtypeStruct(name string, v wireform.Encodable) error {
	return v.Encode(e)
}

func (e *Encoder) EncodeUnitVariant(name, variant string, index uint32) error {
	return e.EncodeString(variant)
}

func (e *Encoder) EncodeNewtypeVariant(name, variant string, index uint32, v wireform.Encodable) error {
	inner := NewEncoder()
	if err := v.Encode(inner); err != nil {
		return err
	}
	return e.set(wrapVariant(variant, inner.node))
}

func wrapVariant(variant string, payload *goyaml.Node) *goyaml.Node {
	return &goyaml.Node{
		Kind:    goyaml.MappingNode,
		Tag:     "!!map",
		Content: []*goyaml.Node{scalar("!!str", variant), payload},
	}
}

func (e *Encoder) seqNode() (*goyaml.Node, error) {
	n := &goyaml.Node{Kind: goyaml.SequenceNode, Tag: "!!seq"}
	return n, e.set(n)
}

func (e *Encoder) EncodeSeq(n int) (wireform.SeqEncoder, error) {
	node, err := e.seqNode()
	if err != nil {
		return nil, err
	}
	return &seqEncoder{node: node}, nil
}

func (e *Encoder) EncodeTupleStruct(name string, n int) (wireform.SeqEncoder, error) {
	return e.EncodeSeq(n)
}

func (e *Encoder) EncodeTupleVariant(name, variant string, index uint32, n int) (wireform.SeqEncoder, error) {
	inner := &goyaml.Node{Kind: goyaml.SequenceNode, Tag: "!!seq"}
	if err := e.set(wrapVariant(variant, inner)); err != nil {
		return nil, err
	}
	return &seqEncoder{node: inner}, nil
}

func (e *Encoder) mapNode() (*goyaml.Node, error) {
	n := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
	return n, e.set(n)
}

func (e *Encoder) EncodeMap(n int) (wireform.MapEncoder, error) {
	node, err := e.mapNode()
	if err != nil {
		return nil, err
	}
	return &mapEncoder{node: node}, nil
}

func (e *Encoder) EncodeStruct(name string, n int) (wireform.StructEncoder, error) {
	node, err := e.mapNode()
	if err != nil {
		return nil, err
	}
	return &structEncoder{node: node}, nil
}

func (e *Encoder) EncodeStructVariant(name, variant string, index uint32, n int) (wireform.StructEncoder, error) {
	inner := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
	if err := e.set(wrapVariant(variant, inner)); err != nil {
		return nil, err
	}
	return &structEncoder{node: inner}, nil
}

type seqEncoder struct {
	node *goyaml.Node
}

func (s *seqEncoder) EncodeElement(v wireform.Encodable) error {
	el := NewEncoder()
	if err := v.Encode(el); err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, el.node)
	return nil
}

func (s *seqEncoder) End() error { return nil }

type mapEncoder struct {
	node *goyaml.Node
}

func (m *mapEncoder) EncodeKey(k wireform.Encodable) error {
	ke := NewEncoder()
	if err := k.Encode(ke); err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, ke.node)
	return nil
}

func (m *mapEncoder) EncodeValue(v wireform.Encodable) error {
	ve := NewEncoder()
	if err := v.Encode(ve); err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, ve.node)
	return nil
}

func (m *mapEncoder) End() error { return nil }

type structEncoder struct {
	node *goyaml.Node
}

func (s *structEncoder) EncodeField(name string, v wireform.Encodable) error {
	ve := NewEncoder()
	if err := v.Encode(ve); err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, scalar("!!str", name), ve.node)
	return nil
}

func (s *structEncoder) End() error { return nil }
