package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// DefaultFromName is the display name used when none is configured.
const DefaultFromName = "Contacts Systems"

// Message is one outgoing email with an HTML body.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config describes the SMTP relay.
type Config struct {
	Server   string `env:"MAIL_SERVER"`
	Port     int    `env:"MAIL_PORT"      envDefault:"465"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM"`
	FromName string `env:"MAIL_FROM_NAME" envDefault:"Contacts Systems"`
	SSL      bool   `env:"MAIL_SSL"       envDefault:"true"`
}

// Enabled reports whether an SMTP server is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Server) != ""
}

// SMTPSender sends messages through an SMTP relay.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender validates cfg and returns a sender.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if !cfg.Enabled() {
		return nil, errors.New("mail server is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid mail port %d", cfg.Port)
	}
	if strings.TrimSpace(cfg.From) == "" {
		cfg.From = cfg.Username
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("mail from address is required")
	}
	if strings.TrimSpace(cfg.FromName) == "" {
		cfg.FromName = DefaultFromName
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send dials the relay and delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	envelope, err := s.build(msg)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(s.cfg.Server, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("new smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, envelope); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	envelope := gomail.NewMsg()
	if err := envelope.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := envelope.To(msg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	envelope.Subject(msg.Subject)
	envelope.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return envelope, nil
}

func (s *SMTPSender) clientOptions() []gomail.Option {
	opts := []gomail.Option{gomail.WithPort(s.cfg.Port)}
	if s.cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
