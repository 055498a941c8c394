package content

import (
	"strings"

	wireform "github.com/reoring/wireform"
)

// Candidate is one declared variant of a sum type whose tag is not externally
// visible. Decode receives the (possibly buffered) payload as a Decoder.
type Candidate struct {
	Name   string
	Decode wireform.DecodeFunc
}

func candidateNames(cands []Candidate) []string {
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.Name
	}
	return names
}

// UntaggedError aggregates the failure of every candidate of a tag-free sum
// type, in declaration order.
type UntaggedError struct {
	Enum     string
	Failures []VariantFailure
}

// VariantFailure records why one candidate's replay was rejected.
type VariantFailure struct {
	Variant string
	Err     error
}

func (e *UntaggedError) Error() string {
	b := &strings.Builder{}
	b.WriteString("data did not match any variant of untagged enum ")
	b.WriteString(e.Enum)
	for _, f := range e.Failures {
		b.WriteString("; ")
		b.WriteString(f.Variant)
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

// DecodeUntagged resolves a tag-free sum type: the input is buffered exactly
// once, then each candidate is attempted in declaration order against a fresh
// replay. The first success wins; if every candidate fails, the per-variant
// reasons surface as an UntaggedError. No default is ever picked silently.
func DecodeUntagged(dec wireform.Decoder, name string, candidates []Candidate) (string, any, error) {
	buf, err := FromDecoder(dec)
	if err != nil {
		return "", nil, err
	}
	human := dec.IsHumanReadable()
	failures := make([]VariantFailure, 0, len(candidates))
	for _, c := range candidates {
		replay := NewDecoder(buf)
		replay.HumanReadable = human
		v, err := c.Decode(replay)
		if err == nil {
			return c.Name, v, nil
		}
		failures = append(failures, VariantFailure{Variant: c.Name, Err: err})
	}
	return "", nil, &UntaggedError{Enum: name, Failures: failures}
}

// DecodeInternallyTagged resolves a sum type whose tag is embedded among the
// payload fields: buffer, scan the top-level mapping for tagField, then
// re-present the remaining fields (tag excluded) to the chosen variant.
func DecodeInternallyTagged(dec wireform.Decoder, name, tagField string, candidates []Candidate) (string, any, error) {
	buf, err := FromDecoder(dec)
	if err != nil {
		return "", nil, err
	}
	if buf.kind != KindMap {
		return "", nil, wireform.ErrInvalidType(buf.Shape(), "internally tagged variant of "+name)
	}
	tag := ""
	found := false
	remainder := make([]Pair, 0, len(buf.pairs))
	for _, p := range buf.pairs {
		if p.Key.kind == KindStr && p.Key.s == tagField {
			if found {
				return "", nil, wireform.ErrDuplicateField(tagField)
			}
			if p.Value.kind != KindStr {
				return "", nil, wireform.ErrInvalidType(p.Value.Shape(), "a variant name in field "+tagField)
			}
			tag = p.Value.s
			found = true
			continue
		}
		remainder = append(remainder, p)
	}
	if !found {
		return "", nil, wireform.ErrMissingField(tagField)
	}
	for _, c := range candidates {
		if c.Name != tag {
			continue
		}
		replay := NewDecoder(Map(remainder...))
		replay.HumanReadable = dec.IsHumanReadable()
		v, err := c.Decode(replay)
		if err != nil {
			return "", nil, err
		}
		return c.Name, v, nil
	}
	return "", nil, wireform.ErrUnknownVariant(tag, candidateNames(candidates))
}

// DecodeAdjacentlyTagged resolves a sum type encoded as a two-field record
// holding the tag and the payload side by side. The payload decodes eagerly
// when the tag arrives first; it is buffered only when the input delivers the
// payload before the tag. A missing payload field resolves to the variant's
// unit payload.
func DecodeAdjacentlyTagged(dec wireform.Decoder, name, tagField, payloadField string, candidates []Candidate) (string, any, error) {
	vis := &adjacentVisitor{
		UnimplementedVisitor: wireform.Expecting("adjacently tagged variant of " + name),
		enum:                 name,
		tagField:             tagField,
		payloadField:         payloadField,
		candidates:           candidates,
		human:                dec.IsHumanReadable(),
	}
	out, err := dec.DecodeStruct(name, []string{tagField, payloadField}, vis)
	if err != nil {
		return "", nil, err
	}
	r := out.(adjacentResult)
	return r.variant, r.value, nil
}

type adjacentResult struct {
	variant string
	value   any
}

type adjacentVisitor struct {
	wireform.UnimplementedVisitor
	enum         string
	tagField     string
	payloadField string
	candidates   []Candidate
	human        bool
}

func (v *adjacentVisitor) VisitMap(ma wireform.MapAccess) (any, error) {
	var (
		cand        *Candidate
		buffered    *Value
		decoded     any
		hasDecoded  bool
		seenTag     bool
		seenPayload bool
	)
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
		switch k.(string) {
		case v.tagField:
			if seenTag {
				return nil, wireform.ErrDuplicateField(v.tagField)
			}
			seenTag = true
			tag, err := ma.NextValue(keyTarget)
			if err != nil {
				return nil, err
			}
			for i := range v.candidates {
				if v.candidates[i].Name == tag.(string) {
					cand = &v.candidates[i]
					break
				}
			}
			if cand == nil {
				return nil, wireform.ErrUnknownVariant(tag.(string), candidateNames(v.candidates))
			}
		case v.payloadField:
			if seenPayload {
				return nil, wireform.ErrDuplicateField(v.payloadField)
			}
			seenPayload = true
			if cand != nil {
				out, err := ma.NextValue(cand.Decode)
				if err != nil {
					return nil, err
				}
				decoded, hasDecoded = out, true
			} else {
				out, err := ma.NextValue(target())
				if err != nil {
					return nil, err
				}
				buf := out.(Value)
				buffered = &buf
			}
		default:
			return nil, wireform.ErrUnknownField(k.(string))
		}
	}
	if err := ma.End(); err != nil {
		return nil, err
	}
	if cand == nil {
		return nil, wireform.ErrMissingField(v.tagField)
	}
	if !hasDecoded {
		payload := Unit()
		if buffered != nil {
			payload = *buffered
		}
		replay := NewDecoder(payload)
		replay.HumanReadable = v.human
		out, err := cand.Decode(replay)
		if err != nil {
			return nil, err
		}
		decoded = out
	}
	return adjacentResult{variant: cand.Name, value: decoded}, nil
}
