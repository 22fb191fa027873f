package gateway

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTrackingID(t *testing.T) {
	before := time.Now().Unix()
	id := defaultTrackingID()
	after := time.Now().Unix()

	parsed, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, parsed, before)
	assert.LessOrEqual(t, parsed, after)
}

func TestUUIDTrackingID(t *testing.T) {
	id := UUIDTrackingID()

	parsed, err := strconv.ParseUint(id, 10, 32)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(id), 10, "trackid stays within the gateway length limit")
	assert.Equal(t, strconv.FormatUint(parsed, 10), id, "no leading zeros")

	// Fresh UUIDs should essentially never collide.
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[UUIDTrackingID()] = true
	}
	assert.Greater(t, len(seen), 95)
}
