package service

import (
	"fmt"
	"html"
	"strings"
	"tourizto/internal/domains/booking/model"
)

const confirmationSubjectFormat = "Booking Confirmed - %s | Tourizto"

// buildConfirmationEmail renders the confirmation mail for a stored
// booking. The body is self-contained HTML so it survives strict mail
// clients without external assets.
func buildConfirmationEmail(booking model.Booking) (subject, body string) {
	subject = fmt.Sprintf(confirmationSubjectFormat, booking.Place)

	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #2c3e50;">Your booking is confirmed!</h2>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p>`, html.EscapeString(booking.Name))
	fmt.Fprintf(&b, `<p>Thank you for booking your visit to <strong>%s</strong> with Tourizto. Here are your booking details:</p>`, html.EscapeString(booking.Place))
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)

	rows := []struct {
		label string
		value string
	}{
		{"Booking Reference", booking.BookingReference},
		{"Receipt Number", booking.ReceiptNumber},
		{"Place", html.EscapeString(booking.Place)},
		{"Date", booking.VisitDate.Format("2006-01-02")},
		{"Time", booking.VisitTime},
		{"Adults", fmt.Sprintf("%d", booking.Adults)},
		{"Children", fmt.Sprintf("%d", booking.Children)},
		{"Total Amount", fmt.Sprintf("₹%.2f", booking.TotalAmount)},
	}

	for _, row := range rows {
		fmt.Fprintf(&b,
			`<tr><td style="padding: 8px; border: 1px solid #ddd;"><strong>%s</strong></td><td style="padding: 8px; border: 1px solid #ddd;">%s</td></tr>`,
			row.label, row.value,
		)
	}

	b.WriteString(`</table>`)

	if booking.SpecialRequests != "" {
		fmt.Fprintf(&b, `<p><strong>Special requests:</strong> %s</p>`, html.EscapeString(booking.SpecialRequests))
	}

	b.WriteString(`<p>Please keep your booking reference handy when you arrive. We look forward to seeing you in Indore!</p>`)
	b.WriteString(`<p style="color: #7f8c8d; font-size: 12px;">This is an automated message, please do not reply.</p>`)
	b.WriteString(`</div>`)

	return subject, b.String()
}
