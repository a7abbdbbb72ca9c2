package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SMTPSender delivers messages through one SMTP relay. A dial is made per message.
type SMTPSender struct {
	client *gomail.Client
	sender string
}

// NewSMTPSender authenticates with PLAIN only when a username is configured.
func NewSMTPSender(conf Config) (*SMTPSender, error) {
	options := []gomail.Option{
		gomail.WithPort(conf.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	if conf.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(conf.Username),
			gomail.WithPassword(conf.Password),
		)
	}

	client, err := gomail.NewClient(conf.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("could not create smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		sender: conf.Sender,
	}, nil
}

func (that *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := newMessage(that.sender, to, subject, body)
	if err != nil {
		return err
	}

	if err = that.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("could not deliver mail to %s: %w", to, err)
	}

	return nil
}

// LogSender only logs outgoing messages. It is used when no SMTP host is configured.
type LogSender struct {
	logger *slog.Logger
	sender string
}

func NewLogSender(logger *slog.Logger, sender string) *LogSender {
	return &LogSender{
		logger: logger.With("component", "mail"),
		sender: sender,
	}
}

func (that *LogSender) Send(_ context.Context, to, subject, body string) error {
	if _, err := newMessage(that.sender, to, subject, body); err != nil {
		return err
	}

	that.logger.Info("mail not delivered, smtp is not configured", "to", to, "subject", subject, "body", body)

	return nil
}

func newMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", to, err)
	}

	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	return msg, nil
}
