package derive

// The functions in this file answer point queries about an annotation set.
// Each scans the whole set and uses the first annotation with the expected
// name and argument count; later duplicates are ignored. They do not validate:
// an annotation with the right name but the wrong number of arguments simply
// does not match.

// DefaultKind distinguishes the three possible outcomes of a "default" query.
type DefaultKind int

const (
	// NoDefault indicates there is no "default" annotation.
	NoDefault DefaultKind = iota
	// ImplicitDefault indicates a "default" annotation with no value, which
	// means the type's own default value is used.
	ImplicitDefault
	// ExplicitDefault indicates a "default" annotation that supplies the
	// default expression as its argument.
	ExplicitDefault
)

// DefaultValue is the result of the Default query.
type DefaultValue struct {
	Kind DefaultKind
	// Expr is the literal default expression text. It is only set when Kind
	// is ExplicitDefault.
	Expr string
}

// Present returns true if a default was requested, with or without a value.
func (d DefaultValue) Present() bool {
	return d.Kind != NoDefault
}

// Value returns the explicit default expression, if there is one.
func (d DefaultValue) Value() (string, bool) {
	return d.Expr, d.Kind == ExplicitDefault
}

func findArgs(annos []Annotation, name string, nargs int) ([]string, bool) {
	for _, a := range annos {
		if len(a.Tokens) == nargs+1 && a.Tokens[0] == name {
			return a.Tokens[1:], true
		}
	}
	return nil, false
}

func findArg(annos []Annotation, name string) (string, bool) {
	args, ok := findArgs(annos, name, 1)
	if !ok {
		return "", false
	}
	return args[0], true
}

// Proxy returns the name of the intermediate type used to serialize the
// annotated element, from a "proxy" annotation.
func Proxy(annos []Annotation) (string, bool) {
	return findArg(annos, "proxy")
}

// Rename returns the name to use on the wire in place of the declared name,
// from a "rename" annotation.
func Rename(annos []Annotation) (string, bool) {
	return findArg(annos, "rename")
}

// Default reports whether a "default" annotation is present and, if so,
// whether it carries an explicit default expression.
func Default(annos []Annotation) DefaultValue {
	for _, a := range annos {
		if a.Name() != "default" {
			continue
		}
		switch len(a.Tokens) {
		case 1:
			return DefaultValue{Kind: ImplicitDefault}
		case 2:
			return DefaultValue{Kind: ExplicitDefault, Expr: a.Tokens[1]}
		}
	}
	return DefaultValue{}
}

// DefaultWith returns the function or expression that supplies a default
// value, from a "default_with" annotation.
func DefaultWith(annos []Annotation) (string, bool) {
	return findArg(annos, "default_with")
}

// Transparent returns true if a "transparent" annotation is present. It marks
// a single-field wrapper type that serializes exactly as its inner field.
func Transparent(annos []Annotation) bool {
	_, ok := findArgs(annos, "transparent", 0)
	return ok
}

// Skip returns true if a "skip" annotation is present.
func Skip(annos []Annotation) bool {
	_, ok := findArgs(annos, "skip", 0)
	return ok
}

// SerializeNoneAsNull returns true if a "serialize_none_as_null" annotation is
// present. Absent optional values of such a field are written as an explicit
// null instead of being omitted.
func SerializeNoneAsNull(annos []Annotation) bool {
	_, ok := findArgs(annos, "serialize_none_as_null", 0)
	return ok
}
