package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/abhi96256/Appoinment/internal/domain"
)

type kind string

const (
	kindConfirmation kind = "confirmation"
	kindCancellation kind = "cancellation"
	kindReminder     kind = "reminder"
)

type message struct {
	Subject string
	HTML    string
	SMS     string
}

type emailData struct {
	Heading  string
	Color    string
	Name     string
	Intro    string
	Service  string
	Date     string
	Time     string
	Duration int
	Price    string
	Code     string
	Footer   []string
}

var emailTemplate = template.Must(template.New("email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: {{.Color}};">{{.Heading}}</h2>
  <p>Dear {{.Name}},</p>
  <p>{{.Intro}}</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Service:</strong> {{.Service}}</p>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Time:</strong> {{.Time}}</p>
    {{- if .Duration}}
    <p><strong>Duration:</strong> {{.Duration}} minutes</p>
    {{- end}}
    {{- if .Price}}
    <p><strong>Price:</strong> {{.Price}}</p>
    {{- end}}
    <p><strong>Confirmation Code:</strong> {{.Code}}</p>
  </div>
  {{- range .Footer}}
  <p>{{.}}</p>
  {{- end}}
</div>`))

func serviceName(b *domain.Booking) string {
	if b.Service == nil {
		return fmt.Sprintf("service #%d", b.ServiceID)
	}
	return b.Service.Name
}

func timeRange(b *domain.Booking) string {
	return b.StartTime.Format12h() + " - " + b.EndTime.Format12h()
}

func buildMessage(k kind, b *domain.Booking, currency string) (message, error) {
	data := emailData{
		Name:    b.CustomerName,
		Service: serviceName(b),
		Date:    formatDate(b.BookingDate),
		Time:    timeRange(b),
		Code:    b.ConfirmationCode,
	}

	var msg message

	switch k {
	case kindConfirmation:
		msg.Subject = "Booking Confirmation - " + b.ConfirmationCode
		data.Heading, data.Color = "Booking Confirmation", "#333"
		data.Intro = "Your appointment has been confirmed with the following details:"
		if b.Service != nil {
			data.Duration = b.Service.DurationMinutes
			data.Price = fmt.Sprintf("%s%.2f", currency, b.Service.Price)
		}
		data.Footer = []string{
			"Please arrive 10 minutes before your scheduled time.",
			"If you need to cancel or reschedule, please contact us with your confirmation code.",
			"Thank you for choosing our services!",
		}
		msg.SMS = fmt.Sprintf("Booking Confirmed!\n\nHi %s,\n\nYour appointment for %s has been confirmed.\n\nDate: %s\nTime: %s\n",
			b.CustomerName, data.Service, data.Date, b.StartTime.Format12h())
		if data.Price != "" {
			msg.SMS += "Price: " + data.Price + "\n"
		}
		msg.SMS += "Confirmation Code: " + b.ConfirmationCode + "\n\nThank you for choosing our services!"

	case kindCancellation:
		msg.Subject = "Booking Cancelled - " + b.ConfirmationCode
		data.Heading, data.Color = "Booking Cancelled", "#d32f2f"
		data.Intro = "Your appointment has been cancelled:"
		data.Footer = []string{
			"If you would like to book a new appointment, please visit our website.",
			"Thank you for your understanding.",
		}
		msg.SMS = fmt.Sprintf("Booking Cancelled\n\nHi %s,\n\nYour appointment for %s has been cancelled.\n\nDate: %s\nTime: %s\n\nWe're sorry for any inconvenience. Please book again when convenient.",
			b.CustomerName, data.Service, data.Date, b.StartTime.Format12h())

	case kindReminder:
		msg.Subject = "Appointment Reminder - " + b.ConfirmationCode
		data.Heading, data.Color = "Appointment Reminder", "#333"
		data.Intro = "This is a friendly reminder about your upcoming appointment."
		data.Footer = []string{"Please arrive 10 minutes early.", "See you soon!"}
		msg.SMS = fmt.Sprintf("Appointment Reminder!\n\nHi %s,\n\nThis is a friendly reminder about your upcoming appointment.\n\nDate: %s\nTime: %s\nService: %s\n\nPlease arrive 10 minutes early.\n\nSee you soon!",
			b.CustomerName, data.Date, b.StartTime.Format12h(), data.Service)

	default:
		return message{}, fmt.Errorf("unknown notification kind %q", k)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return message{}, fmt.Errorf("render %s email: %w", k, err)
	}
	msg.HTML = buf.String()

	return msg, nil
}
