package reference

import (
	"fmt"
	"math/rand"
	"time"
	"tourizto/shared/timezone"
)

const (
	bookingPrefix = "TZ"
	receiptPrefix = "RCPT"

	randomSuffixBound = 1000
)

// Generator derives booking references and receipt numbers from the
// current timestamp. References are short and human readable rather
// than globally unique, so callers must handle collisions on insert.
type Generator struct {
	now  func() time.Time
	intn func(n int) int
}

func New() *Generator {
	return &Generator{
		now:  timezone.Now,
		intn: rand.Intn,
	}
}

// NewWithSource builds a generator with fixed time and randomness sources.
func NewWithSource(now func() time.Time, intn func(n int) int) *Generator {
	return &Generator{
		now:  now,
		intn: intn,
	}
}

// BookingReference returns "TZ-" followed by the last six digits of the
// current epoch millisecond timestamp.
func (g *Generator) BookingReference() string {
	return fmt.Sprintf("%s-%s", bookingPrefix, g.timestampDigits())
}

// RetryBookingReference returns a booking reference with an extra random
// suffix, used when the plain timestamp form collided.
func (g *Generator) RetryBookingReference() string {
	return fmt.Sprintf("%s-%s-%d", bookingPrefix, g.timestampDigits(), g.intn(randomSuffixBound))
}

// ReceiptNumber returns "RCPT-" followed by six timestamp digits and a
// random suffix.
func (g *Generator) ReceiptNumber() string {
	return fmt.Sprintf("%s-%s-%d", receiptPrefix, g.timestampDigits(), g.intn(randomSuffixBound))
}

func (g *Generator) timestampDigits() string {
	ms := g.now().UnixMilli()

	return fmt.Sprintf("%06d", ms%1_000_000)
}
