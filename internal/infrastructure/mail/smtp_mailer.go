// Package mail implementa el envío de correo saliente por SMTP.
// Soporta SSL implícito (465, el modo del transporte original), STARTTLS
// (587) y texto plano para entornos locales. Construye el mensaje RFC 2822
// a mano; no se cachean credenciales.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	gomail "net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"github.com/mdelorenc/tienda-api/internal/application/recovery"
	"github.com/mdelorenc/tienda-api/pkg/config"
)

var _ recovery.Mailer = (*SMTPMailer)(nil)

// SMTPMailer adaptador del puerto recovery.Mailer sobre net/smtp.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer con la configuración de transporte.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send envía un correo HTML. Un fallo de transporte se propaga al caso de
// uso y termina como 500 para el caller; nunca se silencia.
func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	from := gomail.Address{Name: m.cfg.From, Address: m.cfg.User}
	if m.cfg.From == "" {
		from.Name = m.cfg.User
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	switch m.cfg.Encryption {
	case "starttls":
		return m.sendStartTLS(to, msg.String())
	case "none":
		return m.sendPlain(to, msg.String())
	default: // "ssl"
		return m.sendSSL(to, msg.String())
	}
}

// sendSSL envía con TLS implícito (puerto 465 típico, gmail).
func (m *SMTPMailer) sendSSL(to, msg string) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	conn, err := tls.Dial("tcp", m.cfg.Addr(), tlsConfig)
	if err != nil {
		return fmt.Errorf("conectar a %s: %w", m.cfg.Addr(), err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("crear cliente smtp: %w", err)
	}
	defer client.Close()

	return m.deliver(client, to, msg)
}

// sendStartTLS envía con STARTTLS (puerto 587 típico).
func (m *SMTPMailer) sendStartTLS(to, msg string) error {
	conn, err := net.DialTimeout("tcp", m.cfg.Addr(), 10*time.Second)
	if err != nil {
		return fmt.Errorf("conectar a %s: %w", m.cfg.Addr(), err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("crear cliente smtp: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	return m.deliver(client, to, msg)
}

// sendPlain envía sin cifrado (solo desarrollo local).
func (m *SMTPMailer) sendPlain(to, msg string) error {
	conn, err := net.DialTimeout("tcp", m.cfg.Addr(), 10*time.Second)
	if err != nil {
		return fmt.Errorf("conectar a %s: %w", m.cfg.Addr(), err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("crear cliente smtp: %w", err)
	}
	defer client.Close()
	return m.deliver(client, to, msg)
}

func (m *SMTPMailer) deliver(client *gosmtp.Client, to, msg string) error {
	if m.cfg.User != "" {
		auth := gosmtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("autenticar smtp: %w", err)
		}
	}
	if err := client.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("escribir mensaje: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cerrar mensaje: %w", err)
	}
	return client.Quit()
}
