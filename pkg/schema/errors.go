package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Document sections addressed by a FieldError.
const (
	SectionArray = "array"
	SectionNodes = "nodes"
	SectionEdges = "edges"
)

// FieldError is one rejected element of an input document, addressed by section,
// element index and field so editors can highlight the exact edge or node.
type FieldError struct {
	Section string
	Index   int
	Field   string // empty for scalar sections such as array
	Reason  string
	Value   any
}

// Key renders the address, e.g. edges[2].u or array[0].
func (e *FieldError) Key() string {
	key := fmt.Sprintf("%s[%d]", e.Section, e.Index)
	if e.Field != "" {
		key += "." + e.Field
	}
	return key
}

func (e *FieldError) Error() string {
	switch v := e.Value.(type) {
	case nil:
		return fmt.Sprintf("%s: %s", e.Key(), e.Reason)
	case string:
		return fmt.Sprintf("%s: %s %q", e.Key(), e.Reason, v)
	default:
		return fmt.Sprintf("%s: %s (got %v)", e.Key(), e.Reason, v)
	}
}

func edgeError(i int, field, reason string, value any) *FieldError {
	return &FieldError{Section: SectionEdges, Index: i, Field: field, Reason: reason, Value: value}
}

// DanglingEdges addresses each edge issue at the endpoint that names the unknown node.
func DanglingEdges(issues []domain.EdgeIssue) []*FieldError {
	out := make([]*FieldError, 0, len(issues))
	for _, issue := range issues {
		field := "v"
		if issue.Edge.U == issue.Missing {
			field = "u"
		}
		out = append(out, edgeError(issue.Index, field, "unknown node", issue.Missing))
	}
	return out
}

// InputError collects every field error of one document.
type InputError struct {
	Fields []*FieldError
}

func (e *InputError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Fields))
	for i, f := range e.Fields {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, f)
	}
	return b.String()
}

// Unwrap exposes the field errors to errors.Is and errors.As.
func (e *InputError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Fields returns the field errors carried by err, or nil.
func Fields(err error) []*FieldError {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Fields
	}
	return nil
}
