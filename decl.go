package derive

// Declaration is a parsed struct or enum declaration for which serialization
// code is derived. Declarations are produced by an upstream parser (such as
// the parser package) and are only read by this package.
type Declaration interface {
	// TypeName returns the declared name of the type.
	TypeName() string
	// GenericParams returns the declaration's generic parameters, in
	// declaration order.
	GenericParams() []Parameter
	// TypeAnnotations returns the annotations attached to the declaration
	// itself.
	TypeAnnotations() []Annotation
}

// Field is a named or positional field of a struct or enum variant. Positional
// fields are named by their index ("0", "1", ...).
type Field struct {
	Name        string
	Type        string
	Annotations []Annotation
}

// Struct is a record type declaration.
type Struct struct {
	Name        string
	Generics    []Parameter
	Annotations []Annotation
	Fields      []Field
}

func (s *Struct) TypeName() string              { return s.Name }
func (s *Struct) GenericParams() []Parameter    { return s.Generics }
func (s *Struct) TypeAnnotations() []Annotation { return s.Annotations }

// Variant is one alternative of an enum. Unit variants have no fields.
type Variant struct {
	Name        string
	Annotations []Annotation
	Fields      []Field
}

// Enum is a tagged-union type declaration.
type Enum struct {
	Name        string
	Generics    []Parameter
	Annotations []Annotation
	Variants    []Variant
}

func (e *Enum) TypeName() string              { return e.Name }
func (e *Enum) GenericParams() []Parameter    { return e.Generics }
func (e *Enum) TypeAnnotations() []Annotation { return e.Annotations }

// BoundsStrings returns the generic clauses for implementing the given
// contract (qualified with namespace) for the given declaration. Structs and
// enums with the same parameter list produce identical clauses.
func BoundsStrings(d Declaration, namespace, contract string) (withBounds, bare string) {
	return SynthesizeQualified(d.GenericParams(), namespace, contract)
}
