// Package mailer envía las alertas de stock bajo por SMTP.
package mailer

import (
	"fmt"
	"html"

	gomail "gopkg.in/gomail.v2"

	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/pkg/config"
	"github.com/invorya/bodega-api/pkg/logger"
)

var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa notification.Mailer sobre gomail. Con SMTP_HOST vacío
// queda deshabilitado: registra el intento y no envía nada, para que los
// entornos de desarrollo no necesiten un servidor de correo.
type SMTPMailer struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// New construye el mailer.
func New(cfg config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// Enabled indica si hay transporte SMTP configurado.
func (m *SMTPMailer) Enabled() bool { return m.cfg.Host != "" }

// SendLowStockEmail envía la alerta de stock bajo a los destinatarios de la bodega.
func (m *SMTPMailer) SendLowStockEmail(to []string, itemName string, count, lowLimit int, warehouseName string) error {
	if !m.Enabled() {
		m.log.Info().Str("item", itemName).Str("warehouse", warehouseName).
			Msg("mailer deshabilitado, alerta de stock bajo no enviada")
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", fmt.Sprintf("Stock bajo: %s (%s)", itemName, warehouseName))
	msg.SetBody("text/html", lowStockBody(itemName, count, lowLimit, warehouseName))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}

func lowStockBody(itemName string, count, lowLimit int, warehouseName string) string {
	return fmt.Sprintf(`
		<h2>Alerta de stock bajo</h2>
		<p>El item <strong>%s</strong> de la bodega <strong>%s</strong> cruzó su umbral.</p>
		<table border="0" cellpadding="4">
			<tr><td>Cantidad actual</td><td><strong>%d</strong></td></tr>
			<tr><td>Umbral</td><td>%d</td></tr>
		</table>
		<p>Este aviso se envía una sola vez por cruce; se re-arma cuando el stock vuelve a superar el umbral.</p>`,
		html.EscapeString(itemName), html.EscapeString(warehouseName), count, lowLimit)
}
