package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL1(t *testing.T) {
	red := RGB{R: 255}
	assert.Equal(t, 0, red.L1(255, 0, 0))
	assert.Equal(t, 255+255+255, red.L1(0, 255, 255))
	assert.Equal(t, 59+75+129, red.L1(196, 75, 129))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 765, Sum(255, 255, 255))
	assert.Equal(t, 0, Sum(0, 0, 0))
}
