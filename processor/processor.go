package processor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jhump/derive"
)

// ElementError is an error in the annotations of one element of a
// declaration. The element is named like "Pair", "Pair.left",
// "Shape::Circle", or "Shape::Circle.0".
type ElementError struct {
	Element string
	err     error
}

// Error implements the error interface. It includes the element name in the
// returned message.
func (e *ElementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Element, e.err.Error())
}

// Underlying returns the underlying error.
func (e *ElementError) Underlying() error {
	return e.err
}

func (e *ElementError) Unwrap() error {
	return e.err
}

// OutputFactory is a function that creates a writer for the output with the
// given name. Output factories typically use os.OpenFile to create files but
// this function allows the behavior to be customized.
type OutputFactory func(name string) (io.WriteCloser, error)

// DefaultOutputFactory returns an OutputFactory that creates files in the
// given directory, creating the directory if necessary. Existing files are
// truncated. If dir is blank, all outputs are written to os.Stdout.
func DefaultOutputFactory(dir string) OutputFactory {
	if dir == "" {
		return WriterOutputFactory(os.Stdout)
	}
	return func(name string) (io.WriteCloser, error) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("could not create output directory %s: %w", dir, err)
		}
		return os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
	}
}

// WriterOutputFactory returns an OutputFactory that sends every output to w.
// Closing an output does not close w.
func WriterOutputFactory(w io.Writer) OutputFactory {
	return func(string) (io.WriteCloser, error) {
		return nopCloser{w}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// Config represents the configuration for processing declarations. The zero
// value is usable: it implements all registered contracts, qualified with
// derive.DefaultNamespace, and writes output to os.Stdout.
type Config struct {
	// Namespace qualifies contract names in generated code. If blank,
	// derive.DefaultNamespace is used.
	Namespace string
	// Contracts are the names of the contracts to implement. If empty, the
	// result of AllRegisteredContracts is used.
	Contracts []string
	// OutputFactory is used by Execute to create outputs. If nil,
	// DefaultOutputFactory("") is used.
	OutputFactory OutputFactory
	// Logger receives debug logs about processing. If nil, nothing is logged.
	Logger *zerolog.Logger
}

func (cfg *Config) namespace() string {
	if cfg.Namespace == "" {
		return derive.DefaultNamespace
	}
	return cfg.Namespace
}

func (cfg *Config) contracts() []string {
	if len(cfg.Contracts) == 0 {
		return AllRegisteredContracts()
	}
	return cfg.Contracts
}

func (cfg *Config) logger() *zerolog.Logger {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return cfg.Logger
}

// TypeFacts are the facts extracted from a declaration's type-level
// annotations.
type TypeFacts struct {
	Proxy       string
	Rename      string
	Default     derive.DefaultValue
	DefaultWith string
	Transparent bool
	Skip        bool
}

// MemberFacts are the facts extracted from the field-level annotations of a
// struct field, enum variant, or variant field.
type MemberFacts struct {
	// Name is the declared name.
	Name string
	// WireName is the name used in serialized output: the argument of a
	// "rename" annotation or, if there is none, the declared name.
	WireName    string
	Proxy       string
	Default     derive.DefaultValue
	DefaultWith string
	Skip        bool
	NoneAsNull  bool
	// Fields holds the facts for the fields of an enum variant.
	Fields []MemberFacts
}

// Impl is a synthesized impl header for one contract.
type Impl struct {
	Contract string
	// Header is the impl header without a body, for example
	// "impl<T: nanoserde::SerBin, > nanoserde::SerBin for Pair<T, >".
	Header string
}

// Result is the outcome of processing one declaration.
type Result struct {
	Decl    derive.Declaration
	Type    TypeFacts
	Members []MemberFacts
	Impls   []Impl
}

// Process validates the given declaration's annotations, extracts their facts,
// and synthesizes impl headers for the configured contracts. It returns an
// *ElementError, wrapping a *derive.AnnotationError, for the first invalid
// annotation found.
func (cfg *Config) Process(decl derive.Declaration) (*Result, error) {
	log := cfg.logger()
	name := decl.TypeName()

	if err := derive.ValidateTypeLevel(decl.TypeAnnotations()); err != nil {
		return nil, &ElementError{Element: name, err: err}
	}
	res := &Result{Decl: decl, Type: typeFacts(decl.TypeAnnotations())}

	switch d := decl.(type) {
	case *derive.Struct:
		members, err := fieldFacts(name, d.Fields)
		if err != nil {
			return nil, err
		}
		res.Members = members
	case *derive.Enum:
		for _, v := range d.Variants {
			elem := name + "::" + v.Name
			if err := derive.ValidateFieldLevel(v.Annotations); err != nil {
				return nil, &ElementError{Element: elem, err: err}
			}
			m := memberFacts(v.Name, v.Annotations)
			fields, err := fieldFacts(elem, v.Fields)
			if err != nil {
				return nil, err
			}
			m.Fields = fields
			res.Members = append(res.Members, m)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported declaration type %T", name, decl)
	}
	log.Debug().Str("type", name).Int("members", len(res.Members)).Msg("validated annotations")

	ns := cfg.namespace()
	for _, c := range cfg.contracts() {
		withBounds, bare := derive.BoundsStrings(decl, ns, c)
		header := fmt.Sprintf("impl%s %s for %s%s", withBounds, derive.QualifiedContract(ns, c), name, bare)
		res.Impls = append(res.Impls, Impl{Contract: c, Header: header})
		log.Debug().Str("type", name).Str("contract", c).Msg("synthesized impl header")
	}
	return res, nil
}

// Execute processes every declaration and writes each result to an output
// named after the declared type with a ".rs" extension. It stops at the first
// error.
func (cfg *Config) Execute(decls []derive.Declaration) error {
	log := cfg.logger()
	factory := cfg.OutputFactory
	if factory == nil {
		factory = DefaultOutputFactory("")
	}
	for _, decl := range decls {
		res, err := cfg.Process(decl)
		if err != nil {
			return err
		}
		name := decl.TypeName() + ".rs"
		out, err := factory(name)
		if err != nil {
			return err
		}
		if err := WriteResult(out, res); err != nil {
			_ = out.Close()
			return fmt.Errorf("could not write %s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("could not write %s: %w", name, err)
		}
		log.Info().Str("type", decl.TypeName()).Int("impls", len(res.Impls)).Msg("generated")
	}
	return nil
}

func typeFacts(annos []derive.Annotation) TypeFacts {
	var t TypeFacts
	t.Proxy, _ = derive.Proxy(annos)
	t.Rename, _ = derive.Rename(annos)
	t.Default = derive.Default(annos)
	t.DefaultWith, _ = derive.DefaultWith(annos)
	t.Transparent = derive.Transparent(annos)
	t.Skip = derive.Skip(annos)
	return t
}

func memberFacts(name string, annos []derive.Annotation) MemberFacts {
	m := MemberFacts{Name: name, WireName: name}
	if r, ok := derive.Rename(annos); ok {
		m.WireName = r
	}
	m.Proxy, _ = derive.Proxy(annos)
	m.Default = derive.Default(annos)
	m.DefaultWith, _ = derive.DefaultWith(annos)
	m.Skip = derive.Skip(annos)
	m.NoneAsNull = derive.SerializeNoneAsNull(annos)
	return m
}

func fieldFacts(parent string, fields []derive.Field) ([]MemberFacts, error) {
	var members []MemberFacts
	for _, f := range fields {
		if err := derive.ValidateFieldLevel(f.Annotations); err != nil {
			return nil, &ElementError{Element: parent + "." + f.Name, err: err}
		}
		members = append(members, memberFacts(f.Name, f.Annotations))
	}
	return members, nil
}
