package utils

import "gopkg.in/gomail.v2"

func SendEmail(message *gomail.Message, sender string, password string, smtpServer string, smtpPort int) error {
	d := gomail.NewDialer(smtpServer, smtpPort, sender, password)

	if err := d.DialAndSend(message); err != nil {
		return err
	}

	return nil
}

// SMTPMailer sends through a fixed SMTP account.
type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func (m SMTPMailer) From() string {
	return m.Sender
}

func (m SMTPMailer) Send(message *gomail.Message) error {
	return SendEmail(message, m.Sender, m.Password, m.Host, m.Port)
}
