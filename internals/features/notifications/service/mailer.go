// Thank-you mail for supported members. Delivery is best effort: a failed
// send is logged and dropped, it never blocks or fails a registration.
package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"dansebakken_backend/internals/configs"
)

type Member struct {
	Name          string
	Email         string
	PaymentAmount string
}

type Mailer struct {
	cfg  configs.MailConfig
	from string
	// send is swapped out in tests
	send func(m *gomail.Message) error
}

func NewMailer(cfg configs.MailConfig) *Mailer {
	host, port := cfg.Resolve()
	dialer := gomail.NewDialer(host, port, cfg.User, cfg.Password)
	return &Mailer{
		cfg:  cfg,
		from: cfg.User,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// SendThankYou delivers one HTML+text mail and returns its message id.
func (m *Mailer) SendThankYou(member Member) (string, error) {
	if member.Email == "" {
		return "", fmt.Errorf("mailer: member without email")
	}

	id := fmt.Sprintf("<%s@dansebakken.no>", uuid.NewString())

	msg := gomail.NewMessage()
	msg.SetHeader("Message-Id", id)
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", member.Email)
	msg.SetHeader("Subject", "Tusen takk for støtten!")
	msg.SetBody("text/plain", thankYouText(member))
	msg.AddAlternative("text/html", thankYouHTML(member))

	if err := m.send(msg); err != nil {
		return "", fmt.Errorf("mailer: send thank-you: %w", err)
	}
	return id, nil
}

// NotifyBestEffort dispatches the thank-you mail on its own goroutine,
// logs the outcome and discards it.
func (m *Mailer) NotifyBestEffort(name, email, paymentAmount string) {
	member := Member{Name: name, Email: email, PaymentAmount: paymentAmount}
	go func() {
		id, err := m.SendThankYou(member)
		if err != nil {
			log.Printf("[MAIL] thank-you to %s failed: %v", email, err)
			return
		}
		log.Printf("[MAIL] thank-you sent to %s (id=%s)", email, id)
	}()
}

func thankYouText(member Member) string {
	return fmt.Sprintf(
		"Hei %s!\n\n"+
			"Tusen takk for at du støtter Dansebakken med %s kr. "+
			"Bidraget ditt gjør det mulig for oss å holde kursene i gang.\n\n"+
			"Varm hilsen,\nDansebakken\n",
		member.Name, member.PaymentAmount)
}

func thankYouHTML(member Member) string {
	return fmt.Sprintf(
		`<div style="font-family:sans-serif;max-width:560px">`+
			`<h2>Hei %s!</h2>`+
			`<p>Tusen takk for at du støtter Dansebakken med <strong>%s kr</strong>. `+
			`Bidraget ditt gjør det mulig for oss å holde kursene i gang.</p>`+
			`<p>Varm hilsen,<br>Dansebakken</p>`+
			`</div>`,
		member.Name, member.PaymentAmount)
}
