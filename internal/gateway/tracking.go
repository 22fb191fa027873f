package gateway

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// defaultTrackingID returns the current Unix timestamp as a decimal string.
// This matches the kit's convention but has second resolution, so two
// clients constructed within the same second get the same id. Callers that
// need stronger uniqueness should supply their own id or use
// UUIDTrackingID.
func defaultTrackingID() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// UUIDTrackingID derives a numeric tracking id from a fresh UUID using an
// FNV-1a 32-bit hash. The result is at most 10 decimal digits, which keeps
// it inside the gateway's trackid length limit.
func UUIDTrackingID() string {
	h := fnv.New32a()
	id := uuid.New()
	h.Write(id[:])
	return fmt.Sprintf("%d", h.Sum32())
}
