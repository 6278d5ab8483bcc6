package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shreebharatraj/contact-mailer/pkg/contact"
	"github.com/shreebharatraj/contact-mailer/pkg/mail"
)

const (
	renderNotification   = "notification"
	renderAcknowledgment = "acknowledgment"
)

type renderOptions struct {
	text bool
	sub  contact.Submission
}

func newRenderCommand(rt *runtimeState) *cobra.Command {
	opts := renderOptions{sub: contact.SampleSubmission()}

	cmd := &cobra.Command{
		Use:       "render notification|acknowledgment",
		Short:     "Print a rendered email body for previewing templates",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{renderNotification, renderAcknowledgment},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			branding := mail.Branding{Name: cfg.Branding.Name, Tagline: cfg.Branding.Tagline}

			var msg mail.Message
			switch args[0] {
			case renderNotification:
				msg, err = mail.RenderNotification(mail.NotificationParams{
					Name:       opts.sub.Name,
					Email:      opts.sub.Email,
					Company:    opts.sub.Company,
					Phone:      opts.sub.Phone,
					Message:    opts.sub.Message,
					ReceivedAt: time.Now().Format(mail.ReceivedAtLayout),
					Branding:   branding,
				})
			case renderAcknowledgment:
				msg, err = mail.RenderAcknowledgment(mail.AcknowledgmentParams{
					Name:     opts.sub.Name,
					Message:  opts.sub.Message,
					Branding: branding,
				})
			}
			if err != nil {
				return err
			}

			body := msg.HTMLBody
			if opts.text {
				body = msg.TextBody
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Subject: %s\n\n%s\n", msg.Subject, body)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.text, "text", false, "Print the plain-text body instead of HTML")
	cmd.Flags().StringVar(&opts.sub.Name, "name", opts.sub.Name, "Submitter name")
	cmd.Flags().StringVar(&opts.sub.Email, "email", opts.sub.Email, "Submitter email")
	cmd.Flags().StringVar(&opts.sub.Company, "company", opts.sub.Company, "Submitter company")
	cmd.Flags().StringVar(&opts.sub.Phone, "phone", opts.sub.Phone, "Submitter phone")
	cmd.Flags().StringVar(&opts.sub.Message, "message", opts.sub.Message, "Message text")

	return cmd
}
