package notifications

import "context"

// Mailer отправка email
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender отправка SMS
type SMSSender interface {
	Send(ctx context.Context, phone, text string) error
}

// Metrics счетчики отправленных уведомлений
type Metrics interface {
	IncNotification(channel, kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
