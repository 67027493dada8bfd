package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"teacher-eval/backend/config"
	"teacher-eval/backend/internal/model"
	"teacher-eval/backend/pkg/mail"
)

//go:embed templates/*.html
var templateFS embed.FS

// FailurePolicy what Notify does with a delivery error
type FailurePolicy int

const (
	// FailureSuppress log the error and report it as cleared
	FailureSuppress FailurePolicy = iota
	// FailurePropagate keep the error in the DeliveryResult
	FailurePropagate
)

// ParseFailurePolicy maps mail.failure_policy; unknown values suppress
func ParseFailurePolicy(v string) FailurePolicy {
	if strings.EqualFold(v, config.MailPolicyPropagate) {
		return FailurePropagate
	}
	return FailureSuppress
}

func (p FailurePolicy) String() string {
	if p == FailurePropagate {
		return config.MailPolicyPropagate
	}
	return config.MailPolicySuppress
}

// DeliveryResult outcome of one notification.
// Skipped means nothing was attempted (delivery disabled or no address).
type DeliveryResult struct {
	Sent    bool
	Skipped bool
	Err     error
}

// Notifier e-mail notifications for submission and account events
type Notifier struct {
	sender  mail.Sender
	policy  FailurePolicy
	baseURL string
	pages   map[string]*template.Template
	logger  *zap.Logger
}

// NewNotifier parses the embedded templates; baseURL prefixes links in the mails
func NewNotifier(sender mail.Sender, policy FailurePolicy, baseURL string, logger *zap.Logger) *Notifier {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"submission_received", "submission_reviewed", "account_created"} {
		pages[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &Notifier{
		sender:  sender,
		policy:  policy,
		baseURL: strings.TrimRight(baseURL, "/"),
		pages:   pages,
		logger:  logger,
	}
}

// Policy the configured failure policy
func (n *Notifier) Policy() FailurePolicy { return n.policy }

// Notify sends msg and applies the failure policy. It never panics and never blocks on retries.
func (n *Notifier) Notify(ctx context.Context, msg mail.Message) DeliveryResult {
	if msg.To == "" {
		return DeliveryResult{Skipped: true}
	}
	if !n.sender.Enabled() {
		n.logger.Warn("e-mail skipped, delivery disabled",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return DeliveryResult{Skipped: true}
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Warn("e-mail delivery failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.String("policy", n.policy.String()),
			zap.Error(err),
		)
		if n.policy == FailurePropagate {
			return DeliveryResult{Err: err}
		}
		return DeliveryResult{}
	}

	return DeliveryResult{Sent: true}
}

// ── notifications ──

// SubmissionReceived tells every reviewer that a teacher handed in data
func (n *Notifier) SubmissionReceived(ctx context.Context, reviewers []model.User, teacher *model.User, cycle *model.AcademicCycle, note string) []DeliveryResult {
	results := make([]DeliveryResult, 0, len(reviewers))
	for _, r := range reviewers {
		data := map[string]interface{}{
			"Subject":       "تسليم جديد بانتظار المراجعة",
			"RecipientName": r.Name,
			"TeacherName":   teacher.Name,
			"CycleName":     cycle.Name,
			"Note":          note,
			"Link":          n.link("/reviews"),
		}
		results = append(results, n.render(ctx, "submission_received", r.Email, r.Name, data))
	}
	return results
}

// SubmissionReviewed tells the teacher about the reviewer's decision
func (n *Notifier) SubmissionReviewed(ctx context.Context, teacher *model.User, cycle *model.AcademicCycle, sub *model.Submission) DeliveryResult {
	approved := sub.Status == model.SubmissionApproved
	subject := "تمت إعادة بيانات الأداء"
	if approved {
		subject = "تم اعتماد بيانات الأداء"
	}
	data := map[string]interface{}{
		"Subject":       subject,
		"RecipientName": teacher.Name,
		"CycleName":     cycle.Name,
		"Approved":      approved,
		"Note":          sub.ReviewNote,
		"Link":          n.link("/"),
	}
	return n.render(ctx, "submission_reviewed", teacher.Email, teacher.Name, data)
}

// AccountCreated sends the temporary password of a new account
func (n *Notifier) AccountCreated(ctx context.Context, user *model.User, tempPassword string) DeliveryResult {
	data := map[string]interface{}{
		"Subject":       "تم إنشاء حسابك",
		"RecipientName": user.Name,
		"Email":         user.Email,
		"TempPassword":  tempPassword,
		"Link":          n.link("/login"),
	}
	return n.render(ctx, "account_created", user.Email, user.Name, data)
}

func (n *Notifier) render(ctx context.Context, page, to, toName string, data map[string]interface{}) DeliveryResult {
	var buf bytes.Buffer
	if err := n.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		n.logger.Error("failed to render e-mail", zap.String("template", page), zap.Error(err))
		err = fmt.Errorf("render %s: %w", page, err)
		if n.policy == FailurePropagate {
			return DeliveryResult{Err: err}
		}
		return DeliveryResult{}
	}

	return n.Notify(ctx, mail.Message{
		To:      to,
		ToName:  toName,
		Subject: data["Subject"].(string),
		HTML:    buf.String(),
	})
}

func (n *Notifier) link(path string) string {
	if n.baseURL == "" {
		return ""
	}
	return n.baseURL + path
}

// logDelivery callers record the result and carry on
func logDelivery(logger *zap.Logger, event string, res DeliveryResult) {
	switch {
	case res.Err != nil:
		logger.Warn("notification failed", zap.String("event", event), zap.Error(res.Err))
	case res.Skipped:
		logger.Debug("notification skipped", zap.String("event", event))
	case res.Sent:
		logger.Debug("notification sent", zap.String("event", event))
	}
}
