package derive

import (
	"fmt"
	"strings"
)

// Annotation is a single declarative marker found on a type, field, or enum
// variant. Tokens[0] is the annotation's name and the remaining tokens are its
// positional arguments. For example, the attribute
//
//    #[nserde(rename = "id")]
//
// is represented as an Annotation with tokens ["rename", "id"], and
//
//    #[nserde(skip)]
//
// is represented as an Annotation with the single token "skip".
//
// An annotation with no tokens is malformed and is rejected by Validate.
type Annotation struct {
	Tokens []string
}

// NewAnnotation returns an annotation with the given name and arguments.
func NewAnnotation(name string, args ...string) Annotation {
	tokens := make([]string, 0, len(args)+1)
	tokens = append(tokens, name)
	tokens = append(tokens, args...)
	return Annotation{Tokens: tokens}
}

// Name returns the annotation's name or the empty string if the annotation has
// no tokens.
func (a Annotation) Name() string {
	if len(a.Tokens) == 0 {
		return ""
	}
	return a.Tokens[0]
}

// Args returns the annotation's positional arguments.
func (a Annotation) Args() []string {
	if len(a.Tokens) == 0 {
		return nil
	}
	return a.Tokens[1:]
}

func (a Annotation) String() string {
	switch len(a.Tokens) {
	case 0:
		return "<empty>"
	case 1:
		return a.Tokens[0]
	default:
		return fmt.Sprintf("%s(%s)", a.Tokens[0], strings.Join(a.Tokens[1:], ", "))
	}
}

// Context identifies the kind of declaration site that an annotation set is
// attached to. Each context has its own schema of recognized annotations.
type Context int

const (
	// TypeLevel annotations are attached to a struct or enum declaration.
	TypeLevel Context = iota

	// FieldLevel annotations are attached to a struct field or to an enum
	// variant (and the fields of a variant).
	FieldLevel
)

func (c Context) String() string {
	switch c {
	case TypeLevel:
		return "type-level"
	case FieldLevel:
		return "field-level"
	default:
		return fmt.Sprintf("?%d?", int(c))
	}
}

// ErrorCause enumerates the reasons an annotation can fail validation.
type ErrorCause int

const (
	// MissingName means the annotation had no tokens at all (or an empty
	// name token).
	MissingName ErrorCause = iota
	// Unrecognized means the annotation's name is not in the schema for the
	// context in which it was used.
	Unrecognized
	// ArityMismatch means the annotation is recognized but was given a number
	// of arguments that its schema does not allow.
	ArityMismatch
)

func (c ErrorCause) String() string {
	switch c {
	case MissingName:
		return "missing name"
	case Unrecognized:
		return "unrecognized annotation"
	case ArityMismatch:
		return "wrong number of arguments"
	default:
		return fmt.Sprintf("?%d?", int(c))
	}
}

// AnnotationError describes an annotation that failed validation. Its message
// is phrased for the end user and is meant to be reported verbatim.
type AnnotationError struct {
	Context Context
	Cause   ErrorCause
	// Name is the offending annotation's name. It is empty when Cause is
	// MissingName.
	Name string
	// Expected is the set of argument counts the schema allows. It is only
	// set when Cause is ArityMismatch.
	Expected []int
	// Found is the actual argument count. It is only meaningful when Cause is
	// ArityMismatch.
	Found int
}

func (e *AnnotationError) Error() string {
	switch e.Cause {
	case MissingName:
		return fmt.Sprintf("%s annotation is missing a name", e.Context)
	case Unrecognized:
		return fmt.Sprintf("unrecognized %s annotation %q", e.Context, e.Name)
	default:
		noun := "arguments"
		if len(e.Expected) == 1 && e.Expected[0] == 1 {
			noun = "argument"
		}
		return fmt.Sprintf("%s annotation %q expects %s %s but found %d",
			e.Context, e.Name, formatCounts(e.Expected), noun, e.Found)
	}
}

// formatCounts renders counts as "N", "N1 or N2", or "N1, N2 or N3".
func formatCounts(counts []int) string {
	var sb strings.Builder
	for i, c := range counts {
		if i > 0 {
			if i == len(counts)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	return sb.String()
}

// Validate checks every annotation in annos against the schema for the given
// context. It returns an *AnnotationError describing the first annotation that
// is malformed, unrecognized, or supplied with the wrong number of arguments.
// Annotations after the first failure are not examined.
//
// Repeating an annotation is not an error. When an annotation is repeated,
// the fact extraction functions use the first occurrence.
func Validate(annos []Annotation, ctx Context) error {
	for _, a := range annos {
		name := a.Name()
		if name == "" {
			return &AnnotationError{Context: ctx, Cause: MissingName}
		}
		allowed, ok := AllowedArities(ctx, name)
		if !ok {
			return &AnnotationError{Context: ctx, Cause: Unrecognized, Name: name}
		}
		found := len(a.Tokens) - 1
		if !containsInt(allowed, found) {
			return &AnnotationError{
				Context:  ctx,
				Cause:    ArityMismatch,
				Name:     name,
				Expected: allowed,
				Found:    found,
			}
		}
	}
	return nil
}

// ValidateTypeLevel validates annotations found on a struct or enum.
func ValidateTypeLevel(annos []Annotation) error {
	return Validate(annos, TypeLevel)
}

// ValidateFieldLevel validates annotations found on a field or enum variant.
func ValidateFieldLevel(annos []Annotation) error {
	return Validate(annos, FieldLevel)
}

func containsInt(s []int, v int) bool {
	for _, i := range s {
		if i == v {
			return true
		}
	}
	return false
}
