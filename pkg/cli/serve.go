package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shreebharatraj/contact-mailer/pkg/api"
	"github.com/shreebharatraj/contact-mailer/pkg/config"
	"github.com/shreebharatraj/contact-mailer/pkg/contact"
	"github.com/shreebharatraj/contact-mailer/pkg/mail"
	"github.com/shreebharatraj/contact-mailer/pkg/system"
	"github.com/shreebharatraj/contact-mailer/pkg/version"
)

func newServeCommand(rt *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rt)
		},
	}
}

func runServe(ctx context.Context, rt *runtimeState) error {
	cfg, err := rt.Config()
	if err != nil {
		return err
	}

	zl, closeLog, err := system.NewLogger(rt.debug, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	log := zl.Sugar()
	log.With("version", version.Version).Info("Starting contact mailer")
	logStartupConfig(log, cfg)

	sender := mail.NewSender(cfg.SMTP, log)
	if !rt.skipSMTPCheck {
		verifyOnStartup(log, sender)
	}

	server := api.NewServer(zl, cfg, rt.debug)
	err = server.RegisterAll([]api.APIController{
		contact.NewController(log, cfg, sender),
	})
	if err != nil {
		return fmt.Errorf("registering controllers: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Errorw("Server stopped with error", "error", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}

// verifyOnStartup checks the relay once. Failure is logged and never fatal.
func verifyOnStartup(log *zap.SugaredLogger, sender mail.Sender) {
	if err := sender.Verify(); err != nil {
		log.Errorw("SMTP Error", "host", sender.GetHost(), "port", sender.GetPort(), "error", err)
		return
	}
	log.Infow("SMTP server is ready to take our messages", "host", sender.GetHost(), "port", sender.GetPort())
}

func logStartupConfig(log *zap.SugaredLogger, cfg config.Config) {
	log.Infow("Configuration",
		"listen_address", cfg.Server.ListenAddress,
		"environment", cfg.Environment,
		"smtp_host", cfg.SMTP.Host,
		"smtp_port", cfg.SMTP.Port,
		"smtp_user", cfg.SMTP.User,
		"smtp_configured", cfg.SMTPConfigured(),
		"recipient_email", cfg.Contact.RecipientEmail,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"log_file", cfg.Logging.File,
	)
	if !cfg.SMTPConfigured() {
		log.Warn("SMTP_USER is not set; mail delivery will fail")
	}
	if cfg.Contact.RecipientEmail == "" {
		log.Warn("RECIPIENT_EMAIL is not set; contact submissions will fail")
	}
}
