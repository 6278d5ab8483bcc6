package mail

import (
	"crypto/tls"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/shreebharatraj/contact-mailer/pkg/config"
	"github.com/shreebharatraj/contact-mailer/pkg/metrics"
)

// Kind labels a message for logging and metrics.
type Kind string

const (
	KindNotification   Kind = "notification"
	KindAcknowledgment Kind = "acknowledgment"
	KindTest           Kind = "test"
)

var (
	// ErrNoRecipient is returned when Send is called without a recipient address.
	ErrNoRecipient = errors.New("no recipient address")
	// ErrNoCredentials is returned by Verify when no SMTP user is configured.
	ErrNoCredentials = errors.New("no SMTP credentials configured")
)

// Message is a rendered email ready for delivery. TextBody and ReplyTo are optional.
type Message struct {
	Kind     Kind
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

type Sender interface {
	// Send delivers msg to exactly one recipient over a fresh connection.
	Send(to string, msg Message) error
	// Verify connects and authenticates without sending anything.
	Verify() error
	GetHost() string
	GetPort() int
}

type sender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.SugaredLogger
}

// NewSender creates a Sender for the configured relay. gomail dials with
// implicit TLS on port 465 and upgrades with STARTTLS otherwise.
func NewSender(cfg config.SMTP, log *zap.SugaredLogger) Sender {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("mail")
	log.Infow("Initializing mail sender", "host", cfg.Host, "port", cfg.Port, "user", cfg.User)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warn("InsecureSkipVerify is enabled for mail TLS connection")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host} // #nosec G402 -- opt-in for internal relays
	}

	return &sender{
		dialer: d,
		from:   cfg.User,
		log:    log,
	}
}

func (s *sender) Send(to string, msg Message) error {
	if to == "" {
		return ErrNoRecipient
	}
	kind := string(msg.Kind)
	if kind == "" {
		kind = "unknown"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	s.log.Debugw("Sending mail", "kind", kind, "subject", msg.Subject)
	// DialAndSend closes the connection on every path.
	if err := s.dialer.DialAndSend(m); err != nil {
		metrics.MailSendFailure.WithLabelValues(s.GetHost(), kind).Inc()
		return fmt.Errorf("sending %s mail via %s:%d: %w", kind, s.GetHost(), s.GetPort(), err)
	}
	metrics.MailSendSuccess.WithLabelValues(s.GetHost(), kind).Inc()
	s.log.Infow("Mail sent", "kind", kind)
	return nil
}

// Verify fails with ErrNoCredentials without dialing when no user is set,
// since gomail would connect without logging in.
func (s *sender) Verify() error {
	if s.from == "" {
		return ErrNoCredentials
	}
	conn, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("connecting to %s:%d: %w", s.GetHost(), s.GetPort(), err)
	}
	return conn.Close()
}

func (s *sender) GetHost() string {
	return s.dialer.Host
}

func (s *sender) GetPort() int {
	return s.dialer.Port
}
