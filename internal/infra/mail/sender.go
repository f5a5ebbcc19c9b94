package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var leadAlertTmpl = template.Must(template.New("lead_alert").Parse(`
<h2>{{if .FirstSeen}}New ROI calculator lead{{else}}Returning lead{{end}}</h2>
<p><b>{{.LeadEmail}}</b> {{if .FirstSeen}}just ran the ROI calculator for the first time.{{else}}ran the ROI calculator again and their numbers were updated.{{end}}</p>
<p>Full inputs and results are in the leads dashboard.</p>
`))

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

func (s *EmailSender) SendLeadAlert(to, leadEmail string, firstSeen bool) error {
	data := LeadAlertData{
		LeadEmail: leadEmail,
		FirstSeen: firstSeen,
	}

	var body bytes.Buffer
	if err := leadAlertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render alert template: %w", err)
	}

	subject := fmt.Sprintf("New ROI calculator lead: %s", leadEmail)
	if !firstSeen {
		subject = fmt.Sprintf("Returning lead: %s", leadEmail)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@roicalculator.app")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
