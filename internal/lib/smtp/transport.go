package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/greenbowl/salad-storefront/internal/config"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
)

// Transport открывает соединения с SMTP-сервером для писем-подтверждений
// заказов. Сервер обязан поддерживать STARTTLS, открытым текстом учётные
// данные не передаются.
type Transport struct {
	cfg *config.Config
	log *slog.Logger
}

// NewTransport создает транспорт поверх настроек из секции smtp конфигурации.
func NewTransport(cfg *config.Config, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Connect открывает TCP-соединение, поднимает TLS и проходит аутентификацию.
// Возвращённый Client готов к отправке одного письма, после Quit соединение
// закрывается.
func (t *Transport) Connect() (Client, error) {
	addr := net.JoinHostPort(t.cfg.SMTPHost, t.cfg.SMTPPort)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("smtp dial failed", slog.String("addr", addr), sl.Err(err))
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.log.Error("smtp handshake failed", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close smtp connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if err := t.secure(client); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close smtp client", sl.Err(closeErr))
		}
		return nil, err
	}

	auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPass, t.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		t.log.Error("smtp auth rejected", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("failed to close smtp client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp auth: %w", err)
	}

	return &smtpClientWrapper{client: client}, nil
}

// secure переводит сессию в TLS. Сервер без STARTTLS считается ошибкой
// конфигурации, а не поводом отправлять письмо открытым текстом.
func (t *Transport) secure(client *smtp.Client) error {
	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.log.Error("smtp server does not advertise STARTTLS",
			slog.String("host", t.cfg.SMTPHost))
		return fmt.Errorf("smtp server %s does not support STARTTLS", t.cfg.SMTPHost)
	}

	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		t.log.Error("starttls failed", sl.Err(err))
		return fmt.Errorf("starttls: %w", err)
	}
	return nil
}

// GetSMTPUser возвращает адрес отправителя писем магазина.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}

// smtpClientWrapper приводит *smtp.Client к интерфейсу Client,
// чтобы сервис отправки можно было тестировать без живого сервера.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error { return w.client.Mail(from) }

func (w *smtpClientWrapper) Rcpt(to string) error { return w.client.Rcpt(to) }

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) { return w.client.Data() }

func (w *smtpClientWrapper) Quit() error { return w.client.Quit() }

func (w *smtpClientWrapper) Close() error { return w.client.Close() }
