package checkout

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// UUIDFunc produces a random (version 4) UUID. uuid.NewRandom is the default.
type UUIDFunc func() (uuid.UUID, error)

// NewOrderID returns a v4 UUID string, or "order-<unix ms>-<n>" when gen cannot
// read secure randomness.
func NewOrderID(gen UUIDFunc) string {
	if gen != nil {
		if id, err := gen(); err == nil {
			return id.String()
		}
	}
	return fmt.Sprintf("order-%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000))
}
