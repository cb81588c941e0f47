package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapDetection(t *testing.T) {
	c := &Consumer{}

	assert.False(t, c.gapDetected(5), "first event after startup is never a gap")
	assert.False(t, c.gapDetected(6))
	assert.False(t, c.gapDetected(7))
	assert.True(t, c.gapDetected(10), "jump from 7 to 10 skipped events")
	assert.False(t, c.gapDetected(11))
	assert.False(t, c.gapDetected(9), "redelivered older events are not gaps")
	assert.False(t, c.gapDetected(12))
}
