package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCoverageIsEmpty(t *testing.T) {
	assert.Empty(t, checkCoverage(), "every known tag must have a registered handler")
}
