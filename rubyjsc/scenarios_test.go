package rubyjsc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyjs/compiler/config"
)

// TestScenarioPrivateFieldEncapsulation covers spec §8 scenario 1: ivars
// gathered by static analysis become ES2022 `#name` fields, a mutating
// method stays a method, and a pure reader is promoted to a getter.
func TestScenarioPrivateFieldEncapsulation(t *testing.T) {
	src := "class Counter\n" +
		"  def initialize; @n = 0; end\n" +
		"  def inc; @n += 1; end\n" +
		"  def value; @n; end\n" +
		"end\n"
	opts := config.New(config.WithESLevel(2022))
	res, err := Convert([]byte(src), opts)
	require.NoError(t, err)

	assert.Contains(t, res.Code, "class Counter {")
	assert.Contains(t, res.Code, "#n = 0;")
	assert.Contains(t, res.Code, "this.#n += 1")
	assert.Contains(t, res.Code, "get value() {")
	assert.Contains(t, res.Code, "return this.#n;")
	assert.NotContains(t, res.Code, "_n")
}

// TestScenarioRangeEachLowering covers spec §8 scenario 2: a block-form
// each over a literal range lowers to a counted for loop rather than
// materializing the range.
func TestScenarioRangeEachLowering(t *testing.T) {
	src := "n = 5\n(1..n).each { |i| puts i }\n"
	res, err := Convert([]byte(src), nil)
	require.NoError(t, err)

	assert.Contains(t, res.Code, "for (let i = 1; i <= n; i++) {")
	assert.Contains(t, res.Code, "puts(i)")
	assert.NotContains(t, res.Code, "$range")
}

// TestScenarioTruthyRubyOrAuto covers spec §8 scenario 3: under
// truthy=ruby, `||` routes through the $ror/$T helpers instead of JS's
// native falsy set.
func TestScenarioTruthyRubyOrAuto(t *testing.T) {
	src := "x = nil\nx || default()\n"
	opts := config.New(config.WithTruthy(config.TruthyRuby), config.WithOr(config.OrAuto))
	res, err := Convert([]byte(src), opts)
	require.NoError(t, err)

	assert.Contains(t, res.Code, "$ror(x, () => default())")
	assert.Contains(t, res.Code, "function $T(x)")
	assert.Contains(t, res.Code, "function $ror(a, b)")
}

// TestScenarioMasgnWithMiddleSplat covers spec §8 scenario 4: a middle
// splat target can't be expressed as JS array destructuring (rest must be
// last), so it lowers through a temp array instead.
func TestScenarioMasgnWithMiddleSplat(t *testing.T) {
	src := "arr = [1, 2, 3, 4]\na, *mid, b = arr\n"
	res, err := Convert([]byte(src), nil)
	require.NoError(t, err)

	tempRe := regexp.MustCompile(`\$masgn_temp_[0-9a-f]{8}`)
	tmp := tempRe.FindString(res.Code)
	require.NotEmpty(t, tmp, "expected a $masgn_temp_<uuid> binding, got: %s", res.Code)

	assert.Contains(t, res.Code, "let "+tmp+" = arr.slice();")
	assert.Contains(t, res.Code, "a = "+tmp+".shift();")
	assert.Contains(t, res.Code, "b = "+tmp+".pop();")
	assert.Contains(t, res.Code, "mid = "+tmp+";")
}

// TestScenarioCaseWithRanges covers spec §8 scenario 5: a case with any
// Range `when` arm can't dispatch by `===`, so the whole statement lowers
// to `switch (true)` with boolean range tests.
func TestScenarioCaseWithRanges(t *testing.T) {
	src := "x = 5\n" +
		"case x\n" +
		"when 1..10 then :low\n" +
		"when 11..100 then :mid\n" +
		"else :high\n" +
		"end\n"
	res, err := Convert([]byte(src), nil)
	require.NoError(t, err)

	assert.Contains(t, res.Code, "switch (true) {")
	assert.Contains(t, res.Code, "case x >= 1 && x <= 10:")
	assert.Contains(t, res.Code, "\"low\"")
	assert.Contains(t, res.Code, "case x >= 11 && x <= 100:")
	assert.Contains(t, res.Code, "\"mid\"")
	assert.Contains(t, res.Code, "default: {")
	assert.Contains(t, res.Code, "\"high\"")
	assert.NotContains(t, res.Code, "switch (x)")
}
