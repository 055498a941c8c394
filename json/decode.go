package json

import (
	"bytes"
	"encoding/base64"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"

	wireform "github.com/reoring/wireform"
	"github.com/reoring/wireform/content"
)

// Unmarshal decodes one JSON value into target, rejecting trailing data.
func Unmarshal(data []byte, target wireform.Decodable) (any, error) {
	d := NewDecoder(bytes.NewReader(data))
	v, err := target.Decode(d)
	if err != nil {
		return nil, err
	}
	if _, err := d.next(); err == nil {
		return nil, wireform.ErrCustom("json: trailing data after top-level value")
	} else if !wireform.IsCode(err, wireform.CodeEndOfInput) {
		return nil, err
	}
	return v, nil
}

// Decoder implements wireform.Decoder over goccy's streaming JSON tokens.
// JSON is self-describing, so every hint entry point can fall back to
// DecodeAny.
type Decoder struct {
	dec     *gojson.Decoder
	peeked  gojson.Token
	hasPeek bool
}

func NewDecoder(r io.Reader) *Decoder {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

func (d *Decoder) IsHumanReadable() bool { return true }

func (d *Decoder) next() (gojson.Token, error) {
	if d.hasPeek {
		d.hasPeek = false
		return d.peeked, nil
	}
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, wireform.ErrEndOfInput()
		}
		return nil, wireform.Issue{Code: wireform.CodeCustom, Message: "json: malformed input", Cause: err}
	}
	return tok, nil
}

func (d *Decoder) peek() (gojson.Token, error) {
	if !d.hasPeek {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		d.peeked = tok
		d.hasPeek = true
	}
	return d.peeked, nil
}

// more reports whether the enclosing container has elements left.
func (d *Decoder) more() bool {
	if d.hasPeek {
		if delim, ok := d.peeked.(gojson.Delim); ok {
			return delim != ']' && delim != '}'
		}
		return true
	}
	return d.dec.More()
}

func (d *Decoder) expectDelim(want gojson.Delim, pending string) error {
	tok, err := d.next()
	if err != nil {
		return err
	}
	if delim, ok := tok.(gojson.Delim); ok && delim == want {
		return nil
	}
	return wireform.ErrCustomf("json: expected %q, %s", want, pending)
}

func (d *Decoder) DecodeAny(vis wireform.Visitor) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	return d.dispatch(tok, vis)
}

func (d *Decoder) dispatch(tok gojson.Token, vis wireform.Visitor) (any, error) {
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			return vis.VisitMap(&objAccess{d: d})
		case '[':
			return vis.VisitSeq(&arrAccess{d: d})
		default:
			return nil, wireform.ErrCustomf("json: unexpected %q where a value was required", v)
		}
	case string:
		return vis.VisitString(v)
	case bool:
		return vis.VisitBool(v)
	case gojson.Number:
		return d.dispatchNumber(string(v), vis)
	case float64:
		return vis.VisitFloat64(v)
	case nil:
		return vis.VisitUnit()
	default:
		return nil, wireform.ErrCustomf("json: unsupported token %v", tok)
	}
}

// dispatchNumber follows the usual self-describing convention: integral
// numbers visit as i64 (u64 when they do not fit), everything else as f64.
func (d *Decoder) dispatchNumber(s string, vis wireform.Visitor) (any, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, wireform.ErrInvalidValue("malformed JSON number " + s)
		}
		return vis.VisitFloat64(f)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return vis.VisitInt64(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return vis.VisitUint64(u)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, wireform.ErrInvalidValue("malformed JSON number " + s)
	}
	return vis.VisitFloat64(f)
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
func (d *Decoder) DecodeString(v wireform.Visitor) (any, error)  { return d.DecodeAny(v) }

func (d *Decoder) DecodeChar(v wireform.Visitor) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	if s, ok := tok.(string); ok {
		r, size := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError && size == len(s) {
			return v.VisitChar(r)
		}
		return v.VisitString(s)
	}
	return d.dispatch(tok, v)
}

func (d *Decoder) DecodeBytes(v wireform.Visitor) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	if s, ok := tok.(string); ok {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, wireform.ErrInvalidValue("invalid base64 in bytes value")
		}
		return v.VisitBytes(raw)
	}
	return d.dispatch(tok, v)
}

func (d *Decoder) DecodeOption(v wireform.Visitor) (any, error) {
	tok, err := d.peek()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		d.hasPeek = false
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

// DecodeEnum reads the externally tagged conventions: a bare string is a
// unit variant; a single-key object wraps the payload of any other kind.
func (d *Decoder) DecodeEnum(name string, variants []string, v wireform.Visitor) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case string:
		return v.VisitEnum(&enumAccess{d: d, variant: t})
	case gojson.Delim:
		if t != '{' {
			return nil, wireform.ErrInvalidType(wireform.ShapeSeq, "variant of "+name)
		}
		key, err := d.next()
		if err != nil {
			return nil, err
		}
		ks, ok := key.(string)
		if !ok {
			return nil, wireform.ErrCustom("json: variant object must start with a string key")
		}
		return v.VisitEnum(&enumAccess{d: d, variant: ks, hasPayload: true})
	default:
		return nil, wireform.ErrCustomf("json: %v cannot name a variant of %s", tok, name)
	}
}

func (d *Decoder) DecodeIgnored(v wireform.Visitor) (any, error) { return d.DecodeAny(v) }

// ---- cursors ----

type arrAccess struct {
	d *Decoder
}

func (a *arrAccess) NextElement(target wireform.Decodable) (any, bool, error) {
	if !a.d.more() {
		return nil, false, nil
	}
	v, err := target.Decode(a.d)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (a *arrAccess) Size() int { return -1 }

func (a *arrAccess) End() error {
	return a.d.expectDelim(']', "sequence cursor terminated with elements pending")
}

type objAccess struct {
	d *Decoder
}

func (o *objAccess) NextKey(target wireform.Decodable) (any, bool, error) {
	if !o.d.more() {
		return nil, false, nil
	}
	tok, err := o.d.next()
	if err != nil {
		return nil, false, err
	}
	ks, ok := tok.(string)
	if !ok {
		return nil, false, wireform.ErrCustom("json: object key must be a string")
	}
	k, err := target.Decode(content.NewDecoder(content.Str(ks)))
	if err != nil {
		return nil, false, err
	}
	return k, true, nil
}

func (o *objAccess) NextValue(target wireform.Decodable) (any, error) {
	return target.Decode(o.d)
}

func (o *objAccess) Size() int { return -1 }

func (o *objAccess) End() error {
	return o.d.expectDelim('}', "map cursor terminated with entries pending")
}

type enumAccess struct {
	d          *Decoder
	variant    string
	hasPayload bool
}

func (e *enumAccess) Variant() (string, wireform.VariantAccess, error) {
	return e.variant, &variantAccess{d: e.d, hasPayload: e.hasPayload}, nil
}

type variantAccess struct {
	d          *Decoder
	hasPayload bool
}

func (va *variantAccess) close() error {
	return va.d.expectDelim('}', "variant object must hold exactly one entry")
}

func (va *variantAccess) UnitVariant() error {
	if !va.hasPayload {
		return nil
	}
	tok, err := va.d.next()
	if err != nil {
		return err
	}
	if tok != nil {
		return wireform.ErrInvalidType(wireform.ShapeNewtypeVariant, "unit variant")
	}
	return va.close()
}

func (va *variantAccess) NewtypeVariant(target wireform.Decodable) (any, error) {
	if !va.hasPayload {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "newtype variant")
	}
	v, err := target.Decode(va.d)
	if err != nil {
		return nil, err
	}
	return v, va.close()
}

func (va *variantAccess) TupleVariant(n int, v wireform.Visitor) (any, error) {
	if !va.hasPayload {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "tuple variant")
	}
	if err := va.d.expectDelim('[', "tuple variant payload must be an array"); err != nil {
		return nil, err
	}
	out, err := v.VisitSeq(&arrAccess{d: va.d})
	if err != nil {
		return nil, err
	}
	return out, va.close()
}

func (va *variantAccess) StructVariant(fields []string, v wireform.Visitor) (any, error) {
	if !va.hasPayload {
		return nil, wireform.ErrInvalidType(wireform.ShapeUnitVariant, "struct variant")
	}
	if err := va.d.expectDelim('{', "struct variant payload must be an object"); err != nil {
		return nil, err
	}
	out, err := v.VisitMap(&objAccess{d: va.d})
	if err != nil {
		return nil, err
	}
	return out, va.close()
}
