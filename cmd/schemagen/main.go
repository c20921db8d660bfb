// Command schemagen generates the Go source that registers the recognized
// annotations and their allowed argument counts, from a TOML schema file. It
// is run via go:generate in the root package.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jhump/gopoet"
)

type schemaFile struct {
	Annotations []annotationSchema `toml:"annotation"`
}

type annotationSchema struct {
	Name     string   `toml:"name"`
	Contexts []string `toml:"contexts"`
	Arities  []int    `toml:"arities"`
}

// contextConsts maps the context names used in the schema file to the
// constants that represent them in the generated code.
var contextConsts = map[string]string{
	"type":  "TypeLevel",
	"field": "FieldLevel",
}

func main() {
	schemaPath := flag.String("schema", "schema.toml", "Path to the TOML schema file.")
	outPath := flag.String("out", "schema.gen.go", "Path of the Go file to generate.")
	pkgName := flag.String("package", "derive", "Name of the package for the generated file.")
	pkgPath := flag.String("import_path", "github.com/jhump/derive", "Import path of the package for the generated file.")
	flag.Parse()

	annos, err := loadSchema(*schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out, err := os.OpenFile(*outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := writeSchemaFile(out, annos, filepath.Base(*outPath), *pkgPath, *pkgName); err != nil {
		_ = out.Close()
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func loadSchema(path string) ([]annotationSchema, error) {
	var raw schemaFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load schema: unknown key %s", undecoded[0])
	}

	seen := map[string]struct{}{}
	for i := range raw.Annotations {
		a := &raw.Annotations[i]
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			return nil, fmt.Errorf("load schema: annotation #%d is missing a name", i+1)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("load schema: annotation %q is defined more than once", a.Name)
		}
		seen[a.Name] = struct{}{}
		if len(a.Contexts) == 0 {
			return nil, fmt.Errorf("load schema: annotation %q has no contexts", a.Name)
		}
		for _, c := range a.Contexts {
			if _, ok := contextConsts[c]; !ok {
				return nil, fmt.Errorf("load schema: annotation %q has unknown context %q", a.Name, c)
			}
		}
		if len(a.Arities) == 0 {
			return nil, fmt.Errorf("load schema: annotation %q has no arities", a.Name)
		}
		for _, n := range a.Arities {
			if n < 0 {
				return nil, fmt.Errorf("load schema: annotation %q has negative arity %d", a.Name, n)
			}
		}
		sort.Ints(a.Arities)
	}
	return raw.Annotations, nil
}

// writeSchemaFile writes the Go file that registers the given annotations.
func writeSchemaFile(w io.Writer, annos []annotationSchema, fileName, pkgPath, pkgName string) error {
	file := gopoet.NewGoFile(fileName, pkgPath, pkgName)
	file.AddElement(registerFunc(annos))
	return gopoet.WriteGoFile(w, file)
}

// registerFunc returns an init function that registers each annotation once
// per context, in schema order.
func registerFunc(annos []annotationSchema) *gopoet.FuncSpec {
	initFunc := gopoet.NewFunc("init")
	for i, a := range annos {
		if i != 0 {
			initFunc.Println("")
		}
		for _, c := range a.Contexts {
			initFunc.Printlnf("registerAnnotation(%s, %q, %s)", contextConsts[c], a.Name, arityList(a.Arities))
		}
	}
	return initFunc
}

func arityList(arities []int) string {
	strs := make([]string, len(arities))
	for i, n := range arities {
		strs[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(strs, ", ")
}
