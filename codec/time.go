package codec

import (
	"context"
	"time"

	wireform "github.com/reoring/wireform"
)

// Time returns a Codec that writes an RFC3339 string on human-readable
// encoders and Unix seconds (i64) on compact ones. Decoding accepts either
// form regardless of the decoder's flavor.
func Time() Codec[time.Time] {
	return timeCodec{}
}

type timeCodec struct{}

func (timeCodec) Encode(ctx context.Context, enc wireform.Encoder, v time.Time) error {
	if enc.IsHumanReadable() {
		return enc.EncodeString(formatRFC3339Canonical(v))
	}
	return enc.EncodeInt64(v.Unix())
}

func (timeCodec) Decode(ctx context.Context, dec wireform.Decoder) (time.Time, error) {
	out, err := dec.DecodeAny(timeVisitor{wireform.Expecting("an RFC3339 string or Unix seconds")})
	if err != nil {
		return time.Time{}, err
	}
	return out.(time.Time), nil
}

type timeVisitor struct{ wireform.UnimplementedVisitor }

func (timeVisitor) VisitString(v string) (any, error) {
	t, err := parseRFC3339(v)
	if err != nil {
		return nil, wireform.Issue{Code: wireform.CodeInvalidValue, Message: "invalid RFC3339 time", Cause: err}
	}
	return t, nil
}

func (timeVisitor) VisitInt64(v int64) (any, error) {
	return time.Unix(v, 0).UTC(), nil
}

func (tv timeVisitor) VisitUint64(v uint64) (any, error) {
	if v > 1<<62 {
		return nil, wireform.ErrInvalidValue("Unix seconds out of range")
	}
	return tv.VisitInt64(int64(v))
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
