package tokentest

import (
	"reflect"
	"testing"

	wireform "github.com/reoring/wireform"
)

// AssertEncode fails the test unless encoding v produces exactly the expected
// calls, fully consuming the token list.
func AssertEncode(t *testing.T, v wireform.Encodable, expected ...Token) {
	t.Helper()
	enc := NewEncoder(expected)
	if err := v.Encode(enc); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n := enc.Remaining(); n != 0 {
		t.Fatalf("encode finished with %d expected tokens unconsumed (next: %s)", n, expected[len(expected)-n])
	}
}

// AssertEncodeErr fails the test unless encoding v against the expected
// tokens returns an error; the error is returned for further inspection.
func AssertEncodeErr(t *testing.T, v wireform.Encodable, expected ...Token) error {
	t.Helper()
	enc := NewEncoder(expected)
	err := v.Encode(enc)
	if err == nil {
		t.Fatalf("encode unexpectedly matched all %d tokens", len(expected))
	}
	return err
}

// AssertDecode replays tokens into target and fails the test unless the
// result deep-equals want and the stream is fully consumed.
func AssertDecode(t *testing.T, target wireform.Decodable, want any, tokens ...Token) {
	t.Helper()
	dec := NewDecoder(tokens)
	got, err := target.Decode(dec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n := dec.Remaining(); n != 0 {
		t.Fatalf("decode finished with %d tokens unconsumed (next: %s)", n, tokens[len(tokens)-n])
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decode result mismatch: got %#v, want %#v", got, want)
	}
}

// AssertDecodeErr replays tokens into target expecting a failure and returns
// the error.
func AssertDecodeErr(t *testing.T, target wireform.Decodable, tokens ...Token) error {
	t.Helper()
	dec := NewDecoder(tokens)
	if _, err := target.Decode(dec); err != nil {
		return err
	}
	t.Fatalf("decode unexpectedly succeeded")
	return nil
}
