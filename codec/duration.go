package codec

import (
	"context"
	"time"

	wireform "github.com/reoring/wireform"
)

// Duration returns a Codec that writes Go duration strings ("1h30m") on
// human-readable encoders and nanoseconds (i64) on compact ones.
func Duration() Codec[time.Duration] {
	return durationCodec{}
}

type durationCodec struct{}

func (durationCodec) Encode(ctx context.Context, enc wireform.Encoder, v time.Duration) error {
	if enc.IsHumanReadable() {
		return enc.EncodeString(v.String())
	}
	return enc.EncodeInt64(int64(v))
}

func (durationCodec) Decode(ctx context.Context, dec wireform.Decoder) (time.Duration, error) {
	out, err := dec.DecodeAny(durationVisitor{wireform.Expecting("a duration string or nanoseconds")})
	if err != nil {
		return 0, err
	}
	return out.(time.Duration), nil
}

type durationVisitor struct{ wireform.UnimplementedVisitor }

func (durationVisitor) VisitString(v string) (any, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return nil, wireform.Issue{Code: wireform.CodeInvalidValue, Message: "invalid duration", Cause: err}
	}
	return d, nil
}

func (durationVisitor) VisitInt64(v int64) (any, error) {
	return time.Duration(v), nil
}

func (dv durationVisitor) VisitUint64(v uint64) (any, error) {
	if v > 1<<62 {
		return nil, wireform.ErrInvalidValue("duration out of range")
	}
	return dv.VisitInt64(int64(v))
}
