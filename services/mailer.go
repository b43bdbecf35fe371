package services

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"sort"
	"strings"

	"hr-reminders/config"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	mail "gopkg.in/mail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates loads the embedded reminder templates.
func ParseTemplates() (*template.Template, error) {
	return template.New("reminders").Funcs(template.FuncMap{
		// messages carry a <br> between the greeting and the body
		"lines": func(s string) template.HTML {
			return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "&lt;br&gt;", "<br>"))
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// RenderMail executes the mail's template with its args plus header and subject.
func RenderMail(tmpl *template.Template, m Mail) (string, error) {
	data := make(map[string]any, len(m.Args)+2)
	for k, v := range m.Args {
		data[k] = v
	}
	data["header"] = m.Header
	data["subject"] = m.Subject

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, m.Template+".html", data); err != nil {
		return "", errors.Wrapf(err, "render template %s", m.Template)
	}
	return buf.String(), nil
}

// smtpDialer opens one SMTP session; *mail.Dialer satisfies it.
type smtpDialer interface {
	Dial() (mail.SendCloser, error)
}

// SMTPMailer sends each recipient their own copy of a reminder.
type SMTPMailer struct {
	dialer    smtpDialer
	from      string
	fromName  string
	templates *template.Template
	log       *logrus.Logger
}

func NewSMTPMailer(opts config.SMTPOptions, log *logrus.Logger) (*SMTPMailer, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "parse mail templates")
	}
	return &SMTPMailer{
		dialer:    mail.NewDialer(opts.Host, opts.Port, opts.Username, opts.Password),
		from:      opts.From,
		fromName:  opts.FromName,
		templates: tmpl,
		log:       log,
	}, nil
}

// Send delivers msg to each recipient in sorted order over one connection.
// When only some recipients fail it returns a *DeliveryError.
func (m *SMTPMailer) Send(ctx context.Context, msg Mail) error {
	if len(msg.Recipients) == 0 {
		return nil
	}
	body, err := RenderMail(m.templates, msg)
	if err != nil {
		return err
	}

	recipients := append([]string(nil), msg.Recipients...)
	sort.Strings(recipients)

	sc, err := m.dialer.Dial()
	if err != nil {
		return errors.Wrap(err, "dial smtp")
	}
	defer sc.Close()

	var firstErr error
	failed := 0
	message := mail.NewMessage()
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return err
		}
		message.SetAddressHeader("From", m.from, m.fromName)
		message.SetHeader("To", to)
		message.SetHeader("Subject", msg.Subject)
		message.SetBody("text/html", body)

		if err := mail.Send(sc, message); err != nil {
			m.log.WithError(err).WithField("to", to).Warn("smtp send failed")
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
		message.Reset()
	}

	if firstErr != nil {
		return &DeliveryError{Delivered: len(recipients) - failed, Failed: failed, Err: firstErr}
	}
	return nil
}
