package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers outbound mail. Delivery failures are the caller's to log;
// registration and login never fail because of mail.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPSender(addr, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	// net/smtp has no context support; check for cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "\r\n%s\r\n", msg.Body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.To}, b.Bytes()); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

// NopSender is used when no SMTP server is configured.
type NopSender struct{}

func (NopSender) Send(context.Context, Message) error { return nil }
