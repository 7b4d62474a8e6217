package combus

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewIssuer allocates a reply channel name for one call of eventType, in the
// form <hex>.<eventType>. The hex part is a version 7 UUID: a millisecond
// timestamp followed by random bits.
//
// The event type suffix only helps when reading logs; correlation relies on
// the hex part alone.
func NewIssuer(eventType string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:]) + "." + eventType
}
