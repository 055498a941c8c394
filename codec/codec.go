// Package codec provides bidirectional converters between domain types and
// the wireform protocol. A Codec picks its wire representation per encoder:
// human-readable formats get a text form, compact formats get a numeric one.
package codec

import (
	"context"

	wireform "github.com/reoring/wireform"
)

// Codec converts a domain value of type T to and from the protocol.
type Codec[T any] interface {
	Encode(ctx context.Context, enc wireform.Encoder, v T) error
	Decode(ctx context.Context, dec wireform.Decoder) (T, error)
}
