package mailing

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"Go-Recipe-Hub/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
	NotifyEmail  string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
		NotifyEmail:  utils.GetConfig("REPORT_NOTIFY_EMAIL"),
	}
}

func BuildMessage(cfg MailConfig, toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", cfg.SMTPEmail, cfg.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(BuildMessage(emailConfig, toEmail, subject, body))
}

// ReportMailer tells moderators about reported recipes.
type ReportMailer struct {
	send func(toEmail, subject, body string) error
	to   string
}

func NewReportMailer() *ReportMailer {
	return &ReportMailer{send: SendMail, to: LoadMailConfig().NotifyEmail}
}

func (m *ReportMailer) NotifyReport(_ context.Context, recipeID, reporterID uint, reason string) error {
	if m.to == "" {
		return nil
	}
	subject := fmt.Sprintf("Recipe #%d was reported", recipeID)
	body := fmt.Sprintf(
		"<p>User #%d reported recipe #%d.</p><p>Reason: %s</p>",
		reporterID, recipeID, html.EscapeString(reason),
	)
	return m.send(m.to, subject, body)
}
