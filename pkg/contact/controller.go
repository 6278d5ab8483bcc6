package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shreebharatraj/contact-mailer/pkg/apiresponses"
	"github.com/shreebharatraj/contact-mailer/pkg/config"
	"github.com/shreebharatraj/contact-mailer/pkg/mail"
	"github.com/shreebharatraj/contact-mailer/pkg/metrics"
	"github.com/shreebharatraj/contact-mailer/pkg/system"
)

const (
	MessageValidationFailed = "Name, email, and message are required"
	MessageSent             = "Email sent successfully"
	MessageSendFailed       = "Failed to send email. Please try again later."
	MessageTestSent         = "Test email sent successfully"
	MessageTestFailed       = "Failed to send test email"
	MessageTestForbidden    = "Test endpoint not available in production"

	testEmailSubject = "🧪 Test Email - Template Preview"
)

// Controller serves the contact endpoints under the api group.
type Controller struct {
	log    *zap.SugaredLogger
	config config.Config
	sender mail.Sender
	now    func() time.Time
}

func NewController(log *zap.SugaredLogger, cfg config.Config, sender mail.Sender) *Controller {
	return &Controller{
		log:    log.Named("contact"),
		config: cfg,
		sender: sender,
		now:    time.Now,
	}
}

func (cc *Controller) BasePath() string {
	return ""
}

func (cc *Controller) Handlers() []gin.HandlerFunc {
	return nil
}

func (cc *Controller) Register(rg *gin.RouterGroup) error {
	rg.POST("send-email", metrics.InstrumentedHandler("send_email", cc.handleSendEmail))
	rg.POST("test-email", metrics.InstrumentedHandler("test_email", cc.handleTestEmail))
	return nil
}

func (cc *Controller) handleSendEmail(c *gin.Context) {
	reqLog := system.GetReqLogger(c, cc.log)

	sub, err := bindSubmission(c)
	if err == nil {
		err = cc.Submit(sub, reqLog)
	}

	var verr *ValidationError
	switch {
	case err == nil:
		metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
		apiresponses.RespondSuccess(c, MessageSent)
	case errors.As(err, &verr):
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		reqLog.Debugw("Rejected contact submission", "error", err)
		apiresponses.RespondBadRequest(c, MessageValidationFailed)
	default:
		metrics.ContactSubmissions.WithLabelValues("failed").Inc()
		apiresponses.RespondInternalError(c, MessageSendFailed, err, reqLog)
	}
}

func (cc *Controller) handleTestEmail(c *gin.Context) {
	reqLog := system.GetReqLogger(c, cc.log)

	sample, err := cc.SendTestEmail()
	switch {
	case errors.Is(err, ErrForbidden):
		apiresponses.RespondForbidden(c, MessageTestForbidden)
	case err != nil:
		reqLog.Errorw("Error sending test email", "error", err)
		apiresponses.RespondInternalErrorWithDetail(c, MessageTestFailed, err)
	default:
		apiresponses.RespondOK(c, TestEmailResponse{
			Success:  true,
			Message:  MessageTestSent,
			TestData: sample,
		})
	}
}

// bindSubmission decodes the request body. Any decoding problem is reported
// as a ValidationError, so a malformed body is treated like an empty one.
func bindSubmission(c *gin.Context) (Submission, error) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return sub, &ValidationError{Missing: missing}
		}
		return sub, &ValidationError{Cause: err}
	}
	return sub, nil
}

// Submit sends the notification for sub to the configured recipient and,
// only if that succeeded, a best-effort acknowledgment to the submitter.
// A failed acknowledgment is logged and never returned.
func (cc *Controller) Submit(sub Submission, log *zap.SugaredLogger) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if log == nil {
		log = cc.log
	}

	recipient := cc.config.Contact.RecipientEmail
	msg, err := mail.RenderNotification(cc.notificationParams(sub))
	if err != nil {
		return fmt.Errorf("rendering notification: %w", err)
	}
	if err := cc.sender.Send(recipient, msg); err != nil {
		return &DispatchError{Kind: mail.KindNotification, Recipient: recipient, Err: err}
	}
	log.Infow("Contact notification sent", "recipient", recipient)

	if ackErr := cc.sendAcknowledgment(sub); ackErr != nil {
		log.Errorw("Acknowledgement email failed", "error", ackErr)
	}
	return nil
}

func (cc *Controller) sendAcknowledgment(sub Submission) *AcknowledgmentError {
	msg, err := mail.RenderAcknowledgment(mail.AcknowledgmentParams{
		Name:     sub.Name,
		Message:  sub.Message,
		Branding: cc.branding(),
	})
	if err == nil {
		err = cc.sender.Send(sub.Email, msg)
	}
	if err != nil {
		return &AcknowledgmentError{Recipient: sub.Email, Err: err}
	}
	return nil
}

// SendTestEmail renders the notification for SampleSubmission and sends the
// HTML part to the relay account itself. It returns ErrForbidden in production.
func (cc *Controller) SendTestEmail() (Submission, error) {
	if cc.config.IsProduction() {
		return Submission{}, ErrForbidden
	}

	sample := SampleSubmission()
	rendered, err := mail.RenderNotification(cc.notificationParams(sample))
	if err != nil {
		return sample, fmt.Errorf("rendering test notification: %w", err)
	}
	preview := mail.Message{
		Kind:     mail.KindTest,
		Subject:  testEmailSubject,
		HTMLBody: rendered.HTMLBody,
	}
	if err := cc.sender.Send(cc.config.SMTP.User, preview); err != nil {
		return sample, &DispatchError{Kind: mail.KindTest, Recipient: cc.config.SMTP.User, Err: err}
	}
	return sample, nil
}

func (cc *Controller) notificationParams(sub Submission) mail.NotificationParams {
	return mail.NotificationParams{
		Name:       sub.Name,
		Email:      sub.Email,
		Company:    sub.Company,
		Phone:      sub.Phone,
		Message:    sub.Message,
		ReceivedAt: cc.now().Format(mail.ReceivedAtLayout),
		Branding:   cc.branding(),
	}
}

func (cc *Controller) branding() mail.Branding {
	return mail.Branding{Name: cc.config.Branding.Name, Tagline: cc.config.Branding.Tagline}
}
