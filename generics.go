package derive

import (
	"fmt"
	"strings"
)

const (
	// SelfPlaceholder is the identifier that refers to the type being
	// implemented. A parameter with this name never appears in a generated
	// generic clause.
	SelfPlaceholder = "Self"

	// DefaultNamespace is the path that qualifies contract names in injected
	// bounds.
	DefaultNamespace = "nanoserde"
)

// ParamKind is the kind of a generic parameter.
type ParamKind int

const (
	// TypeParam is a type parameter such as T. Only type parameters receive
	// the injected contract bound.
	TypeParam ParamKind = iota
	// LifetimeParam is a lifetime parameter such as 'a.
	LifetimeParam
	// ConstParam is a const generic parameter such as const N: usize.
	ConstParam
)

func (k ParamKind) String() string {
	switch k {
	case TypeParam:
		return "type"
	case LifetimeParam:
		return "lifetime"
	case ConstParam:
		return "const"
	default:
		return fmt.Sprintf("?%d?", int(k))
	}
}

// Parameter is one entry in a declaration's generic parameter list.
type Parameter struct {
	Kind ParamKind
	// Name is the bare identifier. For lifetimes it excludes the leading
	// apostrophe.
	Name string
	// Bounds holds pre-existing bounds, each as written (e.g. "Clone",
	// "std::fmt::Debug", "'a"). Const parameters have no bounds.
	Bounds []string
	// Type is the type of a const parameter.
	Type string
	// Default is the default type or value as written, if any. Defaults are
	// not valid on impl blocks, so they never appear in generated clauses.
	Default string
}

// Ident returns the parameter as it appears in a type reference: the name,
// with a leading apostrophe for lifetimes.
func (p Parameter) Ident() string {
	if p.Kind == LifetimeParam {
		return "'" + p.Name
	}
	return p.Name
}

// Decl returns the parameter's declaration text with its pre-existing bounds.
// The given extra bounds are appended to the bounds of type parameters and are
// ignored for lifetime and const parameters.
func (p Parameter) Decl(extraBounds ...string) string {
	switch p.Kind {
	case ConstParam:
		if p.Type == "" {
			return "const " + p.Name
		}
		return fmt.Sprintf("const %s: %s", p.Name, p.Type)
	case LifetimeParam:
		return withBounds(p.Ident(), p.Bounds)
	default:
		bounds := make([]string, 0, len(p.Bounds)+len(extraBounds))
		bounds = append(bounds, p.Bounds...)
		bounds = append(bounds, extraBounds...)
		return withBounds(p.Name, bounds)
	}
}

func withBounds(ident string, bounds []string) string {
	if len(bounds) == 0 {
		return ident
	}
	return ident + ": " + strings.Join(bounds, " + ")
}

// QualifiedContract returns the contract name qualified by the given
// namespace path, e.g. "nanoserde::SerJson".
func QualifiedContract(namespace, contract string) string {
	if namespace == "" {
		return contract
	}
	return namespace + "::" + contract
}

// SynthesizeClauses returns the two generic clauses used when implementing the
// named contract (qualified with DefaultNamespace) for a type with the given
// parameters. See SynthesizeQualified.
func SynthesizeClauses(params []Parameter, contract string) (withBounds, bare string) {
	return SynthesizeQualified(params, DefaultNamespace, contract)
}

// SynthesizeQualified returns the two generic clauses used when implementing a
// contract for a type with the given parameters. The first has every type
// parameter additionally bounded by the contract and is used in the impl
// header; the second lists only the parameter identifiers and is used to
// refer to the type. Both list the parameters in declaration order, minus
// any SelfPlaceholder, so they line up positionally. Each entry is followed by
// ", ", so a clause looks like "<'a, T: nanoserde::SerBin, >".
//
// If params is empty, both clauses are empty and the caller must not emit
// angle brackets. A list holding only SelfPlaceholder yields "<>" for both.
func SynthesizeQualified(params []Parameter, namespace, contract string) (withBounds, bare string) {
	if len(params) == 0 {
		return "", ""
	}
	bound := QualifiedContract(namespace, contract)

	var w, b strings.Builder
	w.WriteString("<")
	b.WriteString("<")
	for _, p := range params {
		if p.Name == SelfPlaceholder {
			continue
		}
		w.WriteString(p.Decl(bound))
		w.WriteString(", ")
		b.WriteString(p.Ident())
		b.WriteString(", ")
	}
	w.WriteString(">")
	b.WriteString(">")
	return w.String(), b.String()
}
