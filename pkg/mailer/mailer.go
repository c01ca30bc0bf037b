package mailer

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
)

// Mailer delivers one-time codes out of band.
type Mailer interface {
	SendOTP(email, code string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromEnv builds a mailer from SMTP_* environment variables.
func NewFromEnv() *SMTPMailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (m *SMTPMailer) SendOTP(email, code string) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	message := []byte(fmt.Sprintf(`To: %s
Subject: Your verification code
MIME-version: 1.0
Content-Type: text/html; charset="UTF-8"

<html>
<body>
<p>Your verification code is <b>%s</b>.</p>
<p>It expires in 5 minutes.</p>
</body>
</html>
`, email, code))

	return smtp.SendMail(
		fmt.Sprintf("%s:%d", m.host, m.port),
		auth,
		m.from,
		[]string{email},
		message,
	)
}
