package reference_test

import (
	"regexp"
	"testing"
	"time"
	"tourizto/internal/domains/booking/reference"

	"github.com/stretchr/testify/assert"
)

func fixedSources(ms int64, random int) (func() time.Time, func(int) int) {
	now := func() time.Time {
		return time.UnixMilli(ms)
	}
	intn := func(_ int) int {
		return random
	}

	return now, intn
}

func TestGenerator_BookingReference(t *testing.T) {
	tests := []struct {
		name   string
		epoch  int64
		expect string
	}{
		{
			name:   "uses last six digits of epoch millis",
			epoch:  1735689600123,
			expect: "TZ-600123",
		},
		{
			name:   "pads short remainders with zeros",
			epoch:  1700000000042,
			expect: "TZ-000042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, intn := fixedSources(tt.epoch, 7)
			gen := reference.NewWithSource(now, intn)

			assert.Equal(t, tt.expect, gen.BookingReference())
		})
	}
}

func TestGenerator_RetryBookingReference(t *testing.T) {
	now, intn := fixedSources(1735689600123, 42)
	gen := reference.NewWithSource(now, intn)

	assert.Equal(t, "TZ-600123-42", gen.RetryBookingReference())
}

func TestGenerator_ReceiptNumber(t *testing.T) {
	now, intn := fixedSources(1735689600123, 999)
	gen := reference.NewWithSource(now, intn)

	assert.Equal(t, "RCPT-600123-999", gen.ReceiptNumber())
}

func TestGenerator_Formats(t *testing.T) {
	gen := reference.New()

	assert.Regexp(t, regexp.MustCompile(`^TZ-\d{6}$`), gen.BookingReference())
	assert.Regexp(t, regexp.MustCompile(`^TZ-\d{6}-\d{1,3}$`), gen.RetryBookingReference())
	assert.Regexp(t, regexp.MustCompile(`^RCPT-\d{6}-\d{1,3}$`), gen.ReceiptNumber())
}
