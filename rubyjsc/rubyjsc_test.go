package rubyjsc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyjs/compiler/config"
)

func TestConvertSimpleAssignment(t *testing.T) {
	res, err := Convert([]byte("x = 1 + 2"), nil)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "x = 1 + 2")
	assert.NotNil(t, res.SourceMap)
}

func TestConvertAppliesDefaultVisibilityFilter(t *testing.T) {
	src := "class Greeter\nprivate\ndef greet\n  1\nend\nend"
	res, err := Convert([]byte(src), nil)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "#greet")
}

func TestConvertHonorsExplicitFilterNames(t *testing.T) {
	src := "class Greeter\nprivate\ndef greet\n  1\nend\nend"
	opts := config.New(config.WithFilters("identity"))
	res, err := Convert([]byte(src), opts)
	require.NoError(t, err)
	assert.NotContains(t, res.Code, "#greet", "identity-only filter stack should not lower visibility")
}

func TestConvertRejectsInvalidOptions(t *testing.T) {
	opts := config.New(config.WithWidth(0))
	_, err := Convert([]byte("x = 1"), opts)
	assert.Error(t, err)
}

func TestConvertSurfacesParseErrors(t *testing.T) {
	_, err := Convert([]byte("def foo("), nil)
	assert.Error(t, err)
}
