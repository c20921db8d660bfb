package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProxyAndRename(t *testing.T) {
	annos := []Annotation{
		NewAnnotation("skip"),
		NewAnnotation("proxy"),
		NewAnnotation("proxy", "WireForm"),
		NewAnnotation("rename", "first"),
		NewAnnotation("proxy", "Other"),
		NewAnnotation("rename", "second"),
	}

	p, ok := Proxy(annos)
	assert.True(t, ok)
	assert.Equal(t, "WireForm", p)

	r, ok := Rename(annos)
	assert.True(t, ok)
	assert.Equal(t, "first", r)

	_, ok = Proxy(nil)
	assert.False(t, ok)
	_, ok = Rename([]Annotation{NewAnnotation("rename", "a", "b")})
	assert.False(t, ok)
}

func TestDefault_ThreeWay(t *testing.T) {
	d := Default(nil)
	assert.Equal(t, NoDefault, d.Kind)
	assert.False(t, d.Present())

	d = Default([]Annotation{NewAnnotation("default")})
	assert.Equal(t, ImplicitDefault, d.Kind)
	assert.True(t, d.Present())
	_, hasValue := d.Value()
	assert.False(t, hasValue)

	d = Default([]Annotation{NewAnnotation("default", "foo")})
	assert.Equal(t, ExplicitDefault, d.Kind)
	v, hasValue := d.Value()
	assert.True(t, hasValue)
	assert.Equal(t, "foo", v)
}

func TestDefault_FirstWins(t *testing.T) {
	d := Default([]Annotation{
		NewAnnotation("default", "a", "b"),
		NewAnnotation("default", "1"),
		NewAnnotation("default"),
	})
	assert.Equal(t, DefaultValue{Kind: ExplicitDefault, Expr: "1"}, d)

	d = Default([]Annotation{
		NewAnnotation("default"),
		NewAnnotation("default", "1"),
	})
	assert.Equal(t, DefaultValue{Kind: ImplicitDefault}, d)
}

func TestDefaultWith(t *testing.T) {
	f, ok := DefaultWith([]Annotation{NewAnnotation("default_with", "make"), NewAnnotation("default_with", "other")})
	assert.True(t, ok)
	assert.Equal(t, "make", f)

	_, ok = DefaultWith([]Annotation{NewAnnotation("default", "make")})
	assert.False(t, ok)
}

func TestFlags(t *testing.T) {
	annos := []Annotation{
		NewAnnotation("transparent"),
		NewAnnotation("skip"),
		NewAnnotation("serialize_none_as_null"),
	}
	assert.True(t, Transparent(annos))
	assert.True(t, Skip(annos))
	assert.True(t, SerializeNoneAsNull(annos))

	assert.False(t, Transparent(nil))
	assert.False(t, Skip([]Annotation{NewAnnotation("skip", "true")}))
	assert.False(t, SerializeNoneAsNull([]Annotation{NewAnnotation("rename", "serialize_none_as_null")}))
}
