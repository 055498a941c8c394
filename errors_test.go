package wireform_test

import (
	"errors"
	"strings"
	"testing"

	wireform "github.com/reoring/wireform"
)

func TestIssue_Error_Rendering(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{wireform.ErrInvalidType(wireform.ShapeStr, "an integer"), "invalid_type: got str, expected an integer"},
		{wireform.ErrInvalidValue("negative length"), "invalid_value: negative length"},
		{wireform.ErrInvalidLength(2, "3 elements"), "invalid_length: 2, expected 3 elements"},
		{wireform.ErrUnknownVariant("D", []string{"A", "B"}), `unknown_variant: "D", expected one of A, B`},
		{wireform.ErrUnknownField("extra"), `unknown_field: "extra"`},
		{wireform.ErrMissingField("id"), `missing_field: "id"`},
		{wireform.ErrDuplicateField("id"), `duplicate_field: "id"`},
		{wireform.ErrEndOfInput(), "end_of_input: unexpected end of input"},
		{wireform.ErrCustom("boom"), "custom: boom"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Fatalf("rendering mismatch: got %q, want %q", got, c.want)
		}
	}
}

func TestIssue_UnwrapsCause(t *testing.T) {
	cause := errors.New("broken pipe")
	it := wireform.Issue{Code: wireform.CodeCustom, Message: "read failed", Cause: cause}
	if !errors.Is(it, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
}

func TestIsCode(t *testing.T) {
	err := wireform.ErrMissingField("id")
	if !wireform.IsCode(err, wireform.CodeMissingField) {
		t.Fatalf("expected missing_field, got %v", err)
	}
	if wireform.IsCode(err, wireform.CodeUnknownField) {
		t.Fatalf("matched the wrong code")
	}
	if wireform.IsCode(nil, wireform.CodeCustom) {
		t.Fatalf("nil error must not match any code")
	}
}

func TestIssues_Error_Truncates(t *testing.T) {
	iss := wireform.Issues{
		wireform.ErrMissingField("a"),
		wireform.ErrMissingField("b"),
		wireform.ErrMissingField("c"),
		wireform.ErrMissingField("d"),
	}
	msg := iss.Error()
	if !strings.Contains(msg, `missing_field: "a"`) {
		t.Fatalf("first issue missing from %q", msg)
	}
	if !strings.Contains(msg, "(total 4)") {
		t.Fatalf("expected truncation marker in %q", msg)
	}
	if strings.Contains(msg, `"d"`) {
		t.Fatalf("fourth issue should be truncated: %q", msg)
	}
}

func TestShape_String(t *testing.T) {
	if got := wireform.ShapeNewtypeVariant.String(); got != "newtype variant" {
		t.Fatalf("unexpected shape name: %q", got)
	}
	if !wireform.ShapeStructVariant.IsVariant() || wireform.ShapeStruct.IsVariant() {
		t.Fatalf("variant classification wrong")
	}
}
