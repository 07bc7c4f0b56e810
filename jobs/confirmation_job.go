package jobs

import (
	"fmt"

	"github.com/abdellah799/travel_booking/notifications"
)

// BookingConfirmationJob emails a guest that their booking is confirmed.
// PaymentAmount is set when the confirmation follows a verified payment and
// nil when it follows booking creation.
type BookingConfirmationJob struct {
	BookingID     uint
	UserName      string
	UserEmail     string
	ListingTitle  string
	CheckInDate   string
	CheckOutDate  string
	PaymentAmount *float64
}

func (j *BookingConfirmationJob) Name() string {
	return "booking_confirmation_email"
}

func (j *BookingConfirmationJob) Run() error {
	subject := fmt.Sprintf("Booking Confirmation - %s", j.ListingTitle)

	paymentInfo := ""
	if j.PaymentAmount != nil {
		paymentInfo = fmt.Sprintf("<li>Amount Paid: %.2f</li>", *j.PaymentAmount)
	}

	body := fmt.Sprintf(`<p>Dear Valued Customer,</p>
<p>Great news! Your payment has been successfully processed and your booking is confirmed.</p>
<p><b>Booking Details:</b></p>
<ul>
<li>Booking ID: %d</li>
<li>Property: %s</li>
<li>Check-in Date: %s</li>
<li>Check-out Date: %s</li>
%s
</ul>
<p>Your reservation is now secured. We've charged your payment method and you're all set for your stay.</p>
<p>If you have any questions or need to make changes to your booking, please don't hesitate to contact us.</p>
<p>We look forward to hosting you!</p>
<p>Best regards,<br>The Travel Booking Team</p>
<p><i>This is an automated confirmation email. Please keep it for your records.</i></p>`,
		j.BookingID, j.ListingTitle, j.CheckInDate, j.CheckOutDate, paymentInfo)

	return notifications.Send(j.UserName, j.UserEmail, subject, body)
}
