package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreebharatraj/contact-mailer/pkg/mail"
)

func newVerifySMTPCommand(rt *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-smtp",
		Short: "Connect and authenticate to the SMTP relay without sending mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			sender := mail.NewSender(cfg.SMTP, nil)
			if err := sender.Verify(); err != nil {
				return fmt.Errorf("smtp check failed: %w", err)
			}
			_, _ = fmt.Fprintf(rt.Writer(), "SMTP relay %s:%d is ready\n", sender.GetHost(), sender.GetPort())
			return nil
		},
	}
}
