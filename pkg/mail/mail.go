package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"teacher-eval/backend/config"
)

const (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// Message a single outgoing e-mail
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string // plain-text alternative
}

// Sender delivers e-mail
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// Enabled false when delivery is switched off for lack of credentials
	Enabled() bool
}

// NewSender SendGrid when an API key is configured, otherwise a sender that only logs
func NewSender(cfg *config.MailConfig, logger *zap.Logger) Sender {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("mail.sendgrid_api_key not set, e-mail delivery disabled")
		return &noopSender{logger: logger}
	}
	return NewSendGridSender(cfg, defaultHost)
}

// ── SendGrid ──

type sendGridSender struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
}

// NewSendGridSender host is the API base URL, normally https://api.sendgrid.com
func NewSendGridSender(cfg *config.MailConfig, host string) Sender {
	return &sendGridSender{
		key:        cfg.SendGridAPIKey,
		host:       host,
		from:       sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		subjPrefix: cfg.SubjectPrefix,
	}
}

func (s *sendGridSender) Enabled() bool { return true }

func (s *sendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	m := sgmail.NewSingleEmail(
		s.from,
		s.subjPrefix+msg.Subject,
		sgmail.NewEmail(msg.ToName, msg.To),
		text,
		msg.HTML,
	)

	req := sendgrid.GetRequest(s.key, endpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ── disabled delivery ──

type noopSender struct {
	logger *zap.Logger
}

func (s *noopSender) Enabled() bool { return false }

func (s *noopSender) Send(_ context.Context, msg Message) error {
	s.logger.Warn("e-mail not sent, delivery disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
