package typedecl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedConstruct marks a declaration or field shape outside the
	// grammar subset the extractor understands.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrMalformedDeclarator marks a supported construct whose structure
	// does not match what the extractor expects.
	ErrMalformedDeclarator = errors.New("malformed declarator")
)

// ExtractError describes why a declaration could not be turned into a
// TypedefInfo. Reason is one of the sentinel errors above.
type ExtractError struct {
	Reason   error
	NodeType string // Grammar type of the offending node
	Text     string // Source text of the offending node
	Message  string // Extra detail (optional)
}

// Error returns a formatted error message
func (e *ExtractError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Reason, e.NodeType, snippet(e.Text))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ExtractError) Unwrap() error {
	return e.Reason
}

func unsupported(nodeType, text string) error {
	return &ExtractError{Reason: ErrUnsupportedConstruct, NodeType: nodeType, Text: text}
}

func malformed(nodeType, text, format string, args ...any) error {
	return &ExtractError{
		Reason:   ErrMalformedDeclarator,
		NodeType: nodeType,
		Text:     text,
		Message:  fmt.Sprintf(format, args...),
	}
}

// snippet keeps error messages to one short line.
func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return s
}
