package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.01, Round2(0.005))
	assert.Equal(t, 100.0, Round2(99.999))
	assert.Equal(t, -450.25, Round2(-450.251))
	assert.Equal(t, 0.0, Round2(0))
}

func TestSum2(t *testing.T) {
	// naive float addition would give 0.30000000000000004
	assert.Equal(t, 0.3, Sum2(0.1, 0.2))
	assert.Equal(t, 2500.0, Sum2(2000, 500))
	assert.Equal(t, 9985.0, Sum2(8000, 2000, -15))
	assert.Equal(t, 0.0, Sum2())
}
