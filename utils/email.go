package utils

import (
	"bytes"
	"cinema_booking/config"
	"html/template"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type BookingEmailData struct {
	InvoiceCode   string
	MovieName     string
	Showtime      string
	Seats         string
	TotalAmount   float64
	PaymentMethod string
	AddScore      int
	DetailLink    string
}

type RefundEmailData struct {
	InvoiceCode   string
	RefundPercent float64
	VoucherCode   string
	VoucherValue  float64
	ExpiresAt     string
}

var (
	bookingTmpl = template.Must(template.New("booking").Parse(`<h2>Booking {{.InvoiceCode}} confirmed</h2>
<p>{{.MovieName}} at {{.Showtime}}</p>
<p>Seats: {{.Seats}}</p>
<p>Total: {{printf "%.0f" .TotalAmount}} VND ({{.PaymentMethod}})</p>
{{if .AddScore}}<p>You earned {{.AddScore}} points.</p>{{end}}
<p><a href="{{.DetailLink}}">View booking</a></p>`))

	refundTmpl = template.Must(template.New("refund").Parse(`<h2>Booking {{.InvoiceCode}} cancelled</h2>
{{if .VoucherCode}}<p>{{printf "%.0f" .RefundPercent}}% of your payment was refunded as voucher <b>{{.VoucherCode}}</b>
worth {{printf "%.0f" .VoucherValue}} VND, valid until {{.ExpiresAt}}.</p>{{else}}<p>No payment was taken.</p>{{end}}`))
)

// SendBookingConfirmationEmail sends in the background so the response is not delayed.
func SendBookingConfirmationEmail(to string, data BookingEmailData) {
	go func() {
		if err := sendTemplate(to, "Booking confirmation #"+data.InvoiceCode, bookingTmpl, data); err != nil {
			log.Error().Err(err).Str("to", to).Msg("send booking email")
		}
	}()
}

func SendRefundEmail(to string, data RefundEmailData) {
	go func() {
		if err := sendTemplate(to, "Booking cancelled #"+data.InvoiceCode, refundTmpl, data); err != nil {
			log.Error().Err(err).Str("to", to).Msg("send refund email")
		}
	}()
}

func sendTemplate(to, subject string, tmpl *template.Template, data any) error {
	if to == "" || config.Config("SMTP_HOST") == "" {
		return nil
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrap(err, "render email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.Config("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(config.Config("SMTP_HOST"), config.Int("SMTP_PORT", 587), config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
	return errors.Wrap(d.DialAndSend(m), "dial smtp")
}
