// Package seed encodes and decodes shared-structure graphs through the
// wireform protocol. Both directions thread an identity table through the
// recursion: the first visit to a node writes it in full and assigns it an
// ordinal, later visits write a back-reference to that ordinal. Cycles are
// rejected; only directed acyclic graphs have a finite wire form.
package seed

import (
	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/bind"
)

// Node is one vertex of a graph. Edges are arena indexes into the owning
// Graph.
type Node struct {
	Label string
	Edges []int
}

// Graph is an index-addressed node arena. Shared substructure is expressed
// by multiple edges naming the same index.
type Graph struct {
	Nodes []Node
}

// Add appends a node and returns its index.
func (g *Graph) Add(label string, edges ...int) int {
	g.Nodes = append(g.Nodes, Node{Label: label, Edges: edges})
	return len(g.Nodes) - 1
}

const (
	enumName    = "Node"
	variantRef  = "Ref"
	variantNode = "Node"
)

// EncodeNode writes the subgraph reachable from g.Nodes[root]. A node is
// written as the struct variant Node{label, edges}; a node already written
// earlier in this call becomes the newtype variant Ref(ordinal). Ordinals
// count first visits in pre-order.
func EncodeNode(enc wireform.Encoder, g *Graph, root int) error {
	t := &encodeTable{
		g:          g,
		ordinals:   make(map[int]uint64),
		inProgress: make(map[int]bool),
	}
	return t.encode(enc, root)
}

// NodeValue wraps EncodeNode as an Encodable.
func NodeValue(g *Graph, root int) wireform.Encodable {
	return wireform.EncodableFunc(func(enc wireform.Encoder) error {
		return EncodeNode(enc, g, root)
	})
}

type encodeTable struct {
	g          *Graph
	ordinals   map[int]uint64
	inProgress map[int]bool
	next       uint64
}

func (t *encodeTable) encode(enc wireform.Encoder, idx int) error {
	if idx < 0 || idx >= len(t.g.Nodes) {
		return wireform.ErrCustomf("seed: edge to node %d is out of range", idx)
	}
	if t.inProgress[idx] {
		return wireform.ErrCustomf("seed: cycle through node %d", idx)
	}
	if ord, seen := t.ordinals[idx]; seen {
		return enc.EncodeNewtypeVariant(enumName, variantRef, 0, wireform.U64(ord))
	}
	t.ordinals[idx] = t.next
	t.next++
	t.inProgress[idx] = true
	defer delete(t.inProgress, idx)

	n := t.g.Nodes[idx]
	se, err := enc.EncodeStructVariant(enumName, variantNode, 1, 2)
	if err != nil {
		return err
	}
	if err := se.EncodeField("label", wireform.Str(n.Label)); err != nil {
		return err
	}
	edges := wireform.EncodableFunc(func(sub wireform.Encoder) error {
		sq, err := sub.EncodeSeq(len(n.Edges))
		if err != nil {
			return err
		}
		for _, e := range n.Edges {
			edge := e
			el := wireform.EncodableFunc(func(ee wireform.Encoder) error {
				return t.encode(ee, edge)
			})
			if err := sq.EncodeElement(el); err != nil {
				return err
			}
		}
		return sq.End()
	})
	if err := se.EncodeField("edges", edges); err != nil {
		return err
	}
	return se.End()
}

// DecodeNode reads a graph written by EncodeNode, returning the rebuilt
// arena and the root's index. Back-references resolve through the same
// pre-order ordinal assignment the encoder used.
func DecodeNode(dec wireform.Decoder) (*Graph, int, error) {
	t := &decodeTable{g: &Graph{}}
	v, err := t.target()(dec)
	if err != nil {
		return nil, 0, err
	}
	return t.g, v.(int), nil
}

type decodeTable struct {
	g        *Graph
	indexes  []int // ordinal -> arena index
	complete []bool
}

// target is the stateful decode seed: every recursive edge position closes
// over the same table.
func (t *decodeTable) target() wireform.DecodeFunc {
	return func(d wireform.Decoder) (any, error) {
		return d.DecodeEnum(enumName, []string{variantRef, variantNode}, &nodeVisitor{
			UnimplementedVisitor: wireform.Expecting("a graph node or back-reference"),
			t:                    t,
		})
	}
}

type nodeVisitor struct {
	wireform.UnimplementedVisitor
	t *decodeTable
}

func (v *nodeVisitor) VisitEnum(ea wireform.EnumAccess) (any, error) {
	name, va, err := ea.Variant()
	if err != nil {
		return nil, err
	}
	switch name {
	case variantRef:
		return v.t.ref(va)
	case variantNode:
		return v.t.node(va)
	default:
		return nil, wireform.ErrUnknownVariant(name, []string{variantRef, variantNode})
	}
}

func (t *decodeTable) ref(va wireform.VariantAccess) (any, error) {
	raw, err := va.NewtypeVariant(wireform.DecodeFunc(func(d wireform.Decoder) (any, error) {
		return wireform.AsUint64(d)
	}))
	if err != nil {
		return nil, err
	}
	ord := raw.(uint64)
	if ord >= uint64(len(t.indexes)) {
		return nil, wireform.ErrInvalidValue("back-reference to a node not yet written")
	}
	if !t.complete[ord] {
		return nil, wireform.ErrInvalidValue("back-reference closes a cycle")
	}
	return t.indexes[ord], nil
}

func (t *decodeTable) node(va wireform.VariantAccess) (any, error) {
	// Reserve the arena slot and ordinal before the edges decode, matching
	// the encoder's pre-order assignment.
	idx := len(t.g.Nodes)
	t.g.Nodes = append(t.g.Nodes, Node{})
	ord := len(t.indexes)
	t.indexes = append(t.indexes, idx)
	t.complete = append(t.complete, false)

	shape := bind.Struct{
		Name: variantNode,
		Fields: []bind.Field{
			{Name: "label", Decode: func(d wireform.Decoder) (any, error) {
				return wireform.AsString(d)
			}},
			{Name: "edges", Decode: func(d wireform.Decoder) (any, error) {
				return wireform.SliceOf(d, t.target())
			}},
		},
	}
	out, err := va.StructVariant(shape.FieldNames(), shape.Visitor())
	if err != nil {
		return nil, err
	}
	fields := out.(map[string]any)
	rawEdges := fields["edges"].([]any)
	edges := make([]int, len(rawEdges))
	for i, e := range rawEdges {
		edges[i] = e.(int)
	}
	t.g.Nodes[idx] = Node{Label: fields["label"].(string), Edges: edges}
	t.complete[ord] = true
	return idx, nil
}
