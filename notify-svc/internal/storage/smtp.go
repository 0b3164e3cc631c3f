package storage

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

const mailSubject = "Overcooked POS"

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers plain text mail through a relay.
type SMTPSender struct {
	Addr string
	From string
	Auth smtp.Auth

	send sendFunc
}

// NewSMTPSender authenticates with PLAIN when user is set.
func NewSMTPSender(addr, from, user, password string) *SMTPSender {
	var auth smtp.Auth
	if user != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &SMTPSender{Addr: addr, From: from, Auth: auth, send: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(s.Addr, s.Auth, s.From, []string{to}, buildMessage(s.From, to, body, time.Now()))
}

func buildMessage(from, to, body string, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mailSubject)
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
