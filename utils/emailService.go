package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML mail through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping mail:", subject)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}

	return nil
}

// SendApprovalEmail notifies a user that an admin approved their account
func SendApprovalEmail(email, name string) {
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Account approved</h2>
		<p>Hi %s,</p>
		<p>Your account has been approved. You can now log in and start working with your courses.</p>
	</body>
	</html>`, name)

	if err := SendEmail([]string{email}, "Your account has been approved", body); err != nil {
		log.Printf("Error sending approval email to %s: %v", email, err)
	}
}
