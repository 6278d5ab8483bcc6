package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreebharatraj/contact-mailer/pkg/config"
)

type Config struct {
	OutputWriter io.Writer
}

func DefaultConfig() Config {
	return Config{OutputWriter: os.Stdout}
}

type runtimeState struct {
	configPath    string
	envFiles      []string
	debug         bool
	skipSMTPCheck bool
	cfg           *config.Config
	writer        io.Writer
}

// NewRootCommand builds the command tree. Running the root command without a
// subcommand starts the server.
func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:           "contact-mailer",
		Short:         "Contact form mail relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			// Skip config loading for commands that don't need it
			if cmd.Name() == "version" {
				return nil
			}
			return rt.EnsureConfigLoaded()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rt)
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", getEnvString(config.ConfigPathEnv, ""),
		"Path to YAML config file (defaults to $"+config.ConfigPathEnv+")")
	root.PersistentFlags().StringSliceVar(&rt.envFiles, "env-file", nil,
		"Env files to load; ./.env is read when none are given")
	root.PersistentFlags().BoolVar(&rt.debug, "debug", getEnvBool("DEBUG", false),
		"Enable debug level logging and gin debug mode")
	root.PersistentFlags().BoolVar(&rt.skipSMTPCheck, "skip-smtp-check", getEnvBool("SKIP_SMTP_CHECK", false),
		"Do not connect to the SMTP relay on startup")

	root.AddCommand(
		newServeCommand(rt),
		newVerifySMTPCommand(rt),
		newRenderCommand(rt),
		newVersionCommand(rt),
	)

	return root
}

func (rt *runtimeState) EnsureConfigLoaded() error {
	if rt.cfg != nil {
		return nil
	}
	cfg, err := config.Load(rt.configPath, rt.envFiles...)
	if err != nil {
		return err
	}
	rt.cfg = &cfg
	return nil
}

func (rt *runtimeState) Config() (config.Config, error) {
	if rt.cfg == nil {
		return config.Config{}, errors.New("config not loaded")
	}
	return *rt.cfg, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}
