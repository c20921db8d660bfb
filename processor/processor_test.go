package processor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhump/derive"
)

func pair() *derive.Struct {
	return &derive.Struct{
		Name: "Pair",
		Generics: []derive.Parameter{
			{Kind: derive.TypeParam, Name: "T"},
			{Kind: derive.TypeParam, Name: "U", Bounds: []string{"Copy"}},
		},
		Fields: []derive.Field{
			{Name: "left", Type: "T", Annotations: []derive.Annotation{derive.NewAnnotation("rename", "l")}},
			{Name: "right", Type: "U", Annotations: []derive.Annotation{derive.NewAnnotation("skip")}},
		},
	}
}

func TestProcess_Struct(t *testing.T) {
	cfg := Config{Contracts: []string{"SerBin"}}
	res, err := cfg.Process(pair())
	require.NoError(t, err)

	require.Len(t, res.Members, 2)
	assert.Equal(t, MemberFacts{Name: "left", WireName: "l"}, res.Members[0])
	assert.Equal(t, MemberFacts{Name: "right", WireName: "right", Skip: true}, res.Members[1])
	assert.Equal(t, []Impl{{
		Contract: "SerBin",
		Header:   "impl<T: nanoserde::SerBin, U: Copy + nanoserde::SerBin, > nanoserde::SerBin for Pair<T, U, >",
	}}, res.Impls)
}

func TestProcess_StructAndEnumHeadersAgree(t *testing.T) {
	s := pair()
	e := &derive.Enum{Name: "Pair", Generics: s.Generics}
	cfg := Config{}
	sres, err := cfg.Process(s)
	require.NoError(t, err)
	eres, err := cfg.Process(e)
	require.NoError(t, err)
	assert.Equal(t, sres.Impls, eres.Impls)
}

func TestProcess_DefaultsToRegisteredContracts(t *testing.T) {
	var cfg Config
	res, err := cfg.Process(&derive.Struct{Name: "Unit"})
	require.NoError(t, err)

	var contracts []string
	for _, impl := range res.Impls {
		contracts = append(contracts, impl.Contract)
	}
	assert.Equal(t, AllRegisteredContracts(), contracts)
	assert.Subset(t, contracts, []string{"SerBin", "DeBin", "SerJson", "DeJson", "SerRon", "DeRon"})
	assert.Equal(t, "impl nanoserde::SerBin for Unit", res.Impls[0].Header)
}

func TestProcess_Namespace(t *testing.T) {
	cfg := Config{Namespace: "crate::ser", Contracts: []string{"Encode"}}
	res, err := cfg.Process(&derive.Struct{Name: "Wrapper", Generics: []derive.Parameter{{Kind: derive.TypeParam, Name: "T"}}})
	require.NoError(t, err)
	assert.Equal(t, "impl<T: crate::ser::Encode, > crate::ser::Encode for Wrapper<T, >", res.Impls[0].Header)
}

func TestProcess_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		decl    derive.Declaration
		element string
		cause   derive.ErrorCause
	}{
		{
			name:    "type-level",
			decl:    &derive.Struct{Name: "S", Annotations: []derive.Annotation{derive.NewAnnotation("serialize_none_as_null")}},
			element: "S",
			cause:   derive.Unrecognized,
		},
		{
			name: "field",
			decl: &derive.Struct{Name: "S", Fields: []derive.Field{
				{Name: "ok"},
				{Name: "bad", Annotations: []derive.Annotation{derive.NewAnnotation("rename")}},
			}},
			element: "S.bad",
			cause:   derive.ArityMismatch,
		},
		{
			name: "variant",
			decl: &derive.Enum{Name: "E", Variants: []derive.Variant{
				{Name: "A", Annotations: []derive.Annotation{derive.NewAnnotation("transparent")}},
			}},
			element: "E::A",
			cause:   derive.Unrecognized,
		},
		{
			name: "variant field",
			decl: &derive.Enum{Name: "E", Variants: []derive.Variant{
				{Name: "A", Fields: []derive.Field{{Name: "0", Annotations: []derive.Annotation{{}}}}},
			}},
			element: "E::A.0",
			cause:   derive.MissingName,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			res, err := cfg.Process(tc.decl)
			require.Error(t, err)
			assert.Nil(t, res)

			var elemErr *ElementError
			require.True(t, errors.As(err, &elemErr))
			assert.Equal(t, tc.element, elemErr.Element)

			var annoErr *derive.AnnotationError
			require.True(t, errors.As(err, &annoErr))
			assert.Equal(t, tc.cause, annoErr.Cause)
			assert.True(t, strings.HasPrefix(err.Error(), tc.element+": "))
		})
	}
}

func TestProcess_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	cfg := Config{Contracts: []string{"SerJson"}, Logger: &logger}
	_, err := cfg.Process(pair())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"validated annotations"`)
	assert.Contains(t, buf.String(), `"contract":"SerJson"`)
}

func TestExecute_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := Config{Contracts: []string{"DeBin"}, OutputFactory: DefaultOutputFactory(dir)}
	require.NoError(t, cfg.Execute([]derive.Declaration{pair(), &derive.Enum{Name: "Empty"}}))

	data, err := os.ReadFile(filepath.Join(dir, "Pair.rs"))
	require.NoError(t, err)
	assert.Equal(t, `// Pair
//   left: wire="l"
//   right: wire="right" skip
impl<T: nanoserde::DeBin, U: Copy + nanoserde::DeBin, > nanoserde::DeBin for Pair<T, U, > {}
`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "Empty.rs"))
	require.NoError(t, err)
	assert.Equal(t, "// Empty\nimpl nanoserde::DeBin for Empty {}\n", string(data))
}

func TestExecute_WriterOutputFactory(t *testing.T) {
	var buf bytes.Buffer
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).Level(zerolog.InfoLevel)
	cfg := Config{Contracts: []string{"SerBin"}, OutputFactory: WriterOutputFactory(&buf), Logger: &logger}
	require.NoError(t, cfg.Execute([]derive.Declaration{&derive.Struct{Name: "A"}, &derive.Enum{Name: "B"}}))

	assert.Equal(t, "// A\nimpl nanoserde::SerBin for A {}\n// B\nimpl nanoserde::SerBin for B {}\n", buf.String())
	assert.Equal(t, 2, strings.Count(logBuf.String(), `"message":"generated"`))
	assert.Contains(t, logBuf.String(), `"type":"B"`)
}

func TestProcess_OnlySelfParameter(t *testing.T) {
	cfg := Config{Contracts: []string{"SerBin"}}
	res, err := cfg.Process(&derive.Struct{Name: "Node", Generics: []derive.Parameter{{Kind: derive.TypeParam, Name: "Self"}}})
	require.NoError(t, err)
	assert.Equal(t, "impl<> nanoserde::SerBin for Node<>", res.Impls[0].Header)
}

func TestExecute_StopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	bad := &derive.Struct{Name: "Bad", Annotations: []derive.Annotation{derive.NewAnnotation("flatten")}}
	cfg := Config{OutputFactory: DefaultOutputFactory(dir)}
	err := cfg.Execute([]derive.Declaration{bad, pair()})
	require.Error(t, err)
	assert.Equal(t, `Bad: unrecognized type-level annotation "flatten"`, err.Error())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegisterContract(t *testing.T) {
	before := AllRegisteredContracts()
	RegisterContract(before[0])
	assert.Equal(t, before, AllRegisteredContracts())
}
