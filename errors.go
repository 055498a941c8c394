package wireform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeCustom         = "custom"
	CodeInvalidType    = "invalid_type"
	CodeInvalidValue   = "invalid_value"
	CodeInvalidLength  = "invalid_length"
	CodeUnknownVariant = "unknown_variant"
	CodeUnknownField   = "unknown_field"
	CodeMissingField   = "missing_field"
	CodeDuplicateField = "duplicate_field"
	CodeEndOfInput     = "end_of_input"
)

// Issue represents a single protocol error. It carries enough structure
// (shape, field/variant name, literal length) to render a precise diagnostic
// without format-specific context.
type Issue struct {
	Code     string
	Message  string   // Free text; primary content for custom/invalid_value.
	Got      Shape    // Shape that actually arrived (invalid_type).
	Expected string   // What the caller would have accepted (invalid_type).
	Name     string   // Field or variant name, when the code involves one.
	Len      int      // Literal length (invalid_length).
	Known    []string // Declared variants (unknown_variant), best-effort.
	Cause    error    // Optional underlying error.
}

func (it Issue) Error() string {
	switch it.Code {
	case CodeInvalidType:
		return fmt.Sprintf("invalid_type: got %s, expected %s", it.Got, it.Expected)
	case CodeInvalidValue:
		return "invalid_value: " + it.Message
	case CodeInvalidLength:
		if it.Expected != "" {
			return fmt.Sprintf("invalid_length: %d, expected %s", it.Len, it.Expected)
		}
		return fmt.Sprintf("invalid_length: %d", it.Len)
	case CodeUnknownVariant:
		if len(it.Known) > 0 {
			return fmt.Sprintf("unknown_variant: %q, expected one of %s", it.Name, strings.Join(it.Known, ", "))
		}
		return fmt.Sprintf("unknown_variant: %q", it.Name)
	case CodeUnknownField:
		return fmt.Sprintf("unknown_field: %q", it.Name)
	case CodeMissingField:
		return fmt.Sprintf("missing_field: %q", it.Name)
	case CodeDuplicateField:
		return fmt.Sprintf("duplicate_field: %q", it.Name)
	case CodeEndOfInput:
		return "end_of_input: unexpected end of input"
	default:
		return it.Code + ": " + it.Message
	}
}

func (it Issue) Unwrap() error { return it.Cause }

// Issues is a collection of protocol errors that implements error. It is
// used where several independent failures must surface together, e.g. the
// per-variant reasons of a failed untagged resolution.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ---- constructors ----

// ErrCustom wraps a free-form message into an Issue.
func ErrCustom(msg string) Issue { return Issue{Code: CodeCustom, Message: msg} }

// ErrCustomf formats a free-form message into an Issue.
func ErrCustomf(format string, args ...any) Issue {
	return Issue{Code: CodeCustom, Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidType reports that the input held got where the caller expected
// something else. expected is free text, typically a Visitor's Expecting().
func ErrInvalidType(got Shape, expected string) Issue {
	return Issue{Code: CodeInvalidType, Got: got, Expected: expected}
}

// ErrInvalidValue reports a value of the right shape but unacceptable content.
func ErrInvalidValue(desc string) Issue {
	return Issue{Code: CodeInvalidValue, Message: desc}
}

// ErrInvalidLength reports a compound whose element count violates its
// declared arity. expected describes the acceptable count.
func ErrInvalidLength(n int, expected string) Issue {
	return Issue{Code: CodeInvalidLength, Len: n, Expected: expected}
}

// ErrUnknownVariant reports a variant name absent from the declared set.
func ErrUnknownVariant(name string, known []string) Issue {
	return Issue{Code: CodeUnknownVariant, Name: name, Known: known}
}

// ErrUnknownField reports a field name the target type does not declare.
func ErrUnknownField(name string) Issue {
	return Issue{Code: CodeUnknownField, Name: name}
}

// ErrMissingField reports a declared, non-defaulted field absent from input.
func ErrMissingField(name string) Issue {
	return Issue{Code: CodeMissingField, Name: name}
}

// ErrDuplicateField reports a field that appeared more than once.
func ErrDuplicateField(name string) Issue {
	return Issue{Code: CodeDuplicateField, Name: name}
}

// ErrEndOfInput reports input exhausted mid-value.
func ErrEndOfInput() Issue { return Issue{Code: CodeEndOfInput} }

// ---- extraction helpers ----

// AsIssue extracts an Issue from an error using errors.As internally.
func AsIssue(err error) (Issue, bool) {
	var it Issue
	if errors.As(err, &it) {
		return it, true
	}
	return Issue{}, false
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsCode reports whether err carries an Issue with the given code.
func IsCode(err error, code string) bool {
	if it, ok := AsIssue(err); ok {
		return it.Code == code
	}
	return false
}
