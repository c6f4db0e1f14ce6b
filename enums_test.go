package tinygo_stepper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "stopped", DirectionStopped.String())
	assert.Equal(t, "forward", DirectionForward.String())
	assert.Equal(t, "reverse", DirectionReverse.String())
	assert.Equal(t, "nil", DirectionNil.String())
}
