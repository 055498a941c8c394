// Package wireform is a format-agnostic data-interchange protocol:
//
// - A closed Shape grammar every structured value decomposes into
// - A push-style Encoder contract a value walks to produce output
// - A pull-style Decoder/Visitor contract a target type walks to consume input
// - Access cursors (SeqAccess/MapAccess/EnumAccess) for compound shapes
// - A structured error model via Issue/Issues (code, shape, field/variant name)
//
// Design policy:
// - Keep only the protocol contracts in the root package; formats and
//   extensions live in subpackages (json/, yaml/, content/, bind/, seed/).
// - tokentest/ provides a symbolic harness that pins down the exact call
//   sequence of an encode or decode independent of any byte-level format.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	out, err := json.Marshal(wireform.Some(wireform.I32(5)))
//	v, err := json.Unmarshal(data, wireform.DecodeFunc(decodePoint))
//
// Everything here is synchronous recursive descent. Nothing is safe for
// concurrent use; each operation owns its buffers and cursors exclusively.
package wireform
