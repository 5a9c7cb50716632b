package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewInvoiceID mints an invoice identifier of the form INV-YYYYMMDD-######.
// The suffix is random; the invoice id is a display reference, not an
// identity, so collisions across days are acceptable and within a day
// vanishingly unlikely at this service's volume.
func NewInvoiceID(now time.Time) string {
	return fmt.Sprintf("INV-%s-%06d", now.Format("20060102"), rand.IntN(1_000_000))
}
