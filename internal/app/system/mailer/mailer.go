// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Config holds the SMTP settings loaded at startup. An empty Host disables
// outbound mail entirely.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Email is one outbound message. HTMLBody is optional; when present the
// message is sent as multipart/alternative with the text body first.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends email over SMTP.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New builds a Mailer. It never fails; a misconfigured mailer reports
// Enabled() == false and drops messages.
func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Enabled reports whether outbound mail is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// Send delivers one message synchronously.
func (m *Mailer) Send(e Email) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer not configured")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, m.build(e))
}

// SendAsync delivers best-effort in the background. Failures are logged
// and never surfaced to the caller; sign-up must not fail because the
// welcome email could not be sent.
func (m *Mailer) SendAsync(e Email) {
	if !m.Enabled() {
		return
	}
	go func() {
		if err := m.Send(e); err != nil {
			m.log.Warn("email send failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
		}
	}()
}

const crlf = "\r\n"

func (m *Mailer) build(e Email) []byte {
	var b strings.Builder

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.cfg.FromName), m.cfg.From)
	}

	b.WriteString("From: " + from + crlf)
	b.WriteString("To: " + e.To + crlf)
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", e.Subject) + crlf)
	b.WriteString("MIME-Version: 1.0" + crlf)

	if e.HTMLBody == "" {
		b.WriteString(`Content-Type: text/plain; charset="utf-8"` + crlf + crlf)
		b.WriteString(e.TextBody)
		return []byte(b.String())
	}

	const boundary = "reelhub-alt-boundary"
	b.WriteString(`Content-Type: multipart/alternative; boundary="` + boundary + `"` + crlf + crlf)

	b.WriteString("--" + boundary + crlf)
	b.WriteString(`Content-Type: text/plain; charset="utf-8"` + crlf + crlf)
	b.WriteString(e.TextBody + crlf)

	b.WriteString("--" + boundary + crlf)
	b.WriteString(`Content-Type: text/html; charset="utf-8"` + crlf + crlf)
	b.WriteString(e.HTMLBody + crlf)

	b.WriteString("--" + boundary + "--" + crlf)
	return []byte(b.String())
}
