package processor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jhump/derive"
	"github.com/jhump/derive/parser"
)

type declFile struct {
	Structs []structDecl `toml:"struct"`
	Enums   []enumDecl   `toml:"enum"`
}

type structDecl struct {
	Name       string      `toml:"name"`
	Generics   string      `toml:"generics"`
	Attributes []string    `toml:"attributes"`
	Fields     []fieldDecl `toml:"field"`
}

type enumDecl struct {
	Name       string        `toml:"name"`
	Generics   string        `toml:"generics"`
	Attributes []string      `toml:"attributes"`
	Variants   []variantDecl `toml:"variant"`
}

type variantDecl struct {
	Name       string      `toml:"name"`
	Attributes []string    `toml:"attributes"`
	Fields     []fieldDecl `toml:"field"`
}

type fieldDecl struct {
	Name       string   `toml:"name"`
	Type       string   `toml:"type"`
	Attributes []string `toml:"attributes"`
}

// LoadDeclarationsFile loads the declarations in the TOML file at the given
// path. See LoadDeclarations.
func LoadDeclarationsFile(path string) ([]derive.Declaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadDeclarations(path, f)
}

// LoadDeclarations decodes the TOML declaration file read from r. The given
// filename is used in error messages. Structs are returned first, followed
// by enums, each in the order they appear in the file. Fields without a name
// are positional and are named by their index.
func LoadDeclarations(filename string, r io.Reader) ([]derive.Declaration, error) {
	var raw declFile
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}

	var decls []derive.Declaration
	for _, s := range raw.Structs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: struct is missing a name", filename)
		}
		d := &derive.Struct{Name: name}
		if d.Generics, err = loadGenerics(filename, name, s.Generics); err != nil {
			return nil, err
		}
		if d.Annotations, err = loadAttributes(filename, name, s.Attributes); err != nil {
			return nil, err
		}
		if d.Fields, err = loadFields(filename, name, s.Fields); err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	for _, e := range raw.Enums {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: enum is missing a name", filename)
		}
		d := &derive.Enum{Name: name}
		if d.Generics, err = loadGenerics(filename, name, e.Generics); err != nil {
			return nil, err
		}
		if d.Annotations, err = loadAttributes(filename, name, e.Attributes); err != nil {
			return nil, err
		}
		for _, v := range e.Variants {
			vname := strings.TrimSpace(v.Name)
			if vname == "" {
				return nil, fmt.Errorf("%s: %s: variant is missing a name", filename, name)
			}
			elem := name + "::" + vname
			variant := derive.Variant{Name: vname}
			if variant.Annotations, err = loadAttributes(filename, elem, v.Attributes); err != nil {
				return nil, err
			}
			if variant.Fields, err = loadFields(filename, elem, v.Fields); err != nil {
				return nil, err
			}
			d.Variants = append(d.Variants, variant)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func loadGenerics(filename, elem, text string) ([]derive.Parameter, error) {
	// positions in parse errors are relative to the text, not the file
	params, perr := parser.ParseGenerics("", text)
	if perr != nil {
		return nil, fmt.Errorf("%s: %s: generics: %w", filename, elem, perr)
	}
	return params, nil
}

func loadAttributes(filename, elem string, attrs []string) ([]derive.Annotation, error) {
	var annos []derive.Annotation
	for _, attr := range attrs {
		a, perr := parser.ParseAttributes("", attr)
		if perr != nil {
			return nil, fmt.Errorf("%s: %s: attribute: %w", filename, elem, perr)
		}
		annos = append(annos, a...)
	}
	return annos, nil
}

func loadFields(filename, parent string, raw []fieldDecl) ([]derive.Field, error) {
	var fields []derive.Field
	for i, f := range raw {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = strconv.Itoa(i)
		}
		annos, err := loadAttributes(filename, parent+"."+name, f.Attributes)
		if err != nil {
			return nil, err
		}
		fields = append(fields, derive.Field{Name: name, Type: strings.TrimSpace(f.Type), Annotations: annos})
	}
	return fields, nil
}
