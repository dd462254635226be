package auth

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
	"lostfound.dev/device-finder-service/pkg/common"
)

// Mailer sends password-reset mail. It is an optional side channel; callers
// treat send failures as non-critical.
type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// MailerFromEnv returns nil when no SMTP host is configured, in which case
// reset tokens are only logged.
func MailerFromEnv() *Mailer {
	host := common.GetEnvOr(common.EnvKeyFinderSmtpHost, "")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(common.GetEnvOr(common.EnvKeyFinderSmtpPort, "587"))
	if err != nil {
		port = 587
	}
	return &Mailer{
		Host: host,
		Port: port,
		User: common.GetEnvOr(common.EnvKeyFinderSmtpUser, ""),
		Pass: common.GetEnvOr(common.EnvKeyFinderSmtpPass, ""),
		From: common.GetEnvOr(common.EnvKeyFinderSmtpFrom, "no-reply@device-finder.local"),
	}
}

func (m *Mailer) SendPasswordReset(email, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Reset your Device Finder password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for this address.\n\nReset token: %s\n\nIf you did not request this, you can ignore this mail.\n", token))

	dialer := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return dialer.DialAndSend(msg)
}
