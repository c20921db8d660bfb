package derive

import "sort"

//go:generate go run ./cmd/schemagen -schema schema.toml -out schema.gen.go -package derive

// schemas maps each context to its recognized annotation names and, for each
// name, the sorted set of argument counts it accepts. It is populated once,
// during package initialization, by the generated schema.gen.go and is
// read-only afterwards.
var schemas = map[Context]map[string][]int{}

func registerAnnotation(ctx Context, name string, arities ...int) {
	names := schemas[ctx]
	if names == nil {
		names = map[string][]int{}
		schemas[ctx] = names
	}
	counts := make([]int, 0, len(names[name])+len(arities))
	counts = append(counts, names[name]...)
	for _, a := range arities {
		if !containsInt(counts, a) {
			counts = append(counts, a)
		}
	}
	sort.Ints(counts)
	names[name] = counts
}

// AllowedArities returns the argument counts that the named annotation accepts
// in the given context. The second return value is false if the name is not
// recognized in that context.
func AllowedArities(ctx Context, name string) ([]int, bool) {
	counts, ok := schemas[ctx][name]
	if !ok {
		return nil, false
	}
	ret := make([]int, len(counts))
	copy(ret, counts)
	return ret, true
}

// RecognizedNames returns the sorted names of all annotations recognized in the
// given context.
func RecognizedNames(ctx Context) []string {
	names := make([]string, 0, len(schemas[ctx]))
	for n := range schemas[ctx] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
