// Package smtp отправляет почтовые уведомления о сохранённых настройках.
// Транспорт скрыт за интерфейсами, чтобы сервис отправки можно было
// тестировать без реального SMTP-сервера.
package smtp

import "io"

// TransportInterface открывает соединения с почтовым сервером.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}

// Client покрывает ту часть smtp.Client, которая нужна для отправки одного письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
