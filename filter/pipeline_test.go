package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyjs/compiler/config"
	"github.com/rubyjs/compiler/walker"
)

func compileWith(t *testing.T, src string, filters []Processor) string {
	t.Helper()
	res, err := walker.Parse("test.rb", []byte(src))
	require.NoError(t, err)
	p := NewPipeline(filters, config.DefaultOptions())
	out, err := p.Run(res.Program, res.Comments, "test.rb")
	require.NoError(t, err)
	return out.Code
}

func TestIdentityFilterMatchesNoFilterStack(t *testing.T) {
	src := "x = 1 + 2"
	withIdentity := compileWith(t, src, []Processor{NewIdentityFilter()})
	withNone := compileWith(t, src, nil)
	assert.Equal(t, withNone, withIdentity, "identity filter must not change output")
}

func TestVisibilityFilterWrapsPrivateMethods(t *testing.T) {
	src := "class Foo\nprivate\ndef bar\n  1\nend\nend"
	code := compileWith(t, src, []Processor{NewVisibilityFilter()})
	assert.Contains(t, code, "class Foo")
	assert.Contains(t, code, "#bar")
}

func TestVisibilityFilterSetterMethod(t *testing.T) {
	src := "class Foo\ndef name=(value)\n  @name = value\nend\nend"
	code := compileWith(t, src, []Processor{NewVisibilityFilter()})
	assert.Contains(t, code, "set name(")
}
