package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// ErrSend возвращается при ошибке отправки письма
var ErrSend = errors.New("mailer: failed to send email")

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer отправляет HTML письма через SMTP
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New создает SMTP mailer. Без имени пользователя отправляет без аутентификации
func New(cfg Config) *Mailer {
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "noreply@appointment.com"
	}

	m := &Mailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: from,
		send: smtp.SendMail,
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

// Send отправляет письмо; ctx ограничивает ожидание, но не прерывает SMTP сессию
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := buildMessage(m.from, to, subject, htmlBody, time.Now())

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(m.addr, m.auth, m.from, []string{to}, msg)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSend, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSend, ctx.Err())
	}
}

func buildMessage(from, to, subject, body string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
