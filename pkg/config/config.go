package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// EnvironmentProduction disables the template preview endpoint.
	EnvironmentProduction = "production"

	// ConfigPathEnv names the environment variable holding the optional YAML config path.
	ConfigPathEnv = "CONTACT_MAILER_CONFIG"

	defaultEnvFile = ".env"
)

type Server struct {
	ListenAddress string `yaml:"listenAddress"`
	// AllowedOrigins lists CORS origins. A single "*" allows every origin.
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type SMTP struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
}

type Contact struct {
	// RecipientEmail receives every notification message.
	RecipientEmail string `yaml:"recipientEmail"`
}

type Branding struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// Logging configures the rotating error log. An empty File disables it.
type Logging struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

type Config struct {
	Environment string   `yaml:"environment"`
	Server      Server   `yaml:"server"`
	SMTP        SMTP     `yaml:"smtp"`
	Contact     Contact  `yaml:"contact"`
	Branding    Branding `yaml:"branding"`
	Logging     Logging  `yaml:"logging"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Environment: "development",
		Server: Server{
			ListenAddress:   "0.0.0.0:5000",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 15 * time.Second,
		},
		SMTP: SMTP{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Branding: Branding{
			Name:    "Shree Bharatraj Corporation",
			Tagline: "Excellence in Business Solutions",
		},
		Logging: Logging{
			File:       "app.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvironmentProduction)
}

// SMTPConfigured reports whether mail credentials are present.
func (c Config) SMTPConfigured() bool {
	return c.SMTP.User != ""
}

// Validate checks values that would otherwise fail much later at dial or listen time.
func (c Config) Validate() error {
	var errs []error
	if c.SMTP.Host == "" {
		errs = append(errs, errors.New("smtp host must not be empty"))
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("smtp port %d out of range", c.SMTP.Port))
	}
	if c.Server.ListenAddress == "" {
		errs = append(errs, errors.New("server listen address must not be empty"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout %s must not be negative", c.Server.ShutdownTimeout))
	}
	if c.Logging.File != "" && (c.Logging.MaxSizeMB <= 0 || c.Logging.MaxBackups < 0) {
		errs = append(errs, fmt.Errorf("invalid log rotation settings: maxSizeMB=%d maxBackups=%d",
			c.Logging.MaxSizeMB, c.Logging.MaxBackups))
	}
	return errors.Join(errs...)
}

// Load builds the configuration. Precedence from lowest to highest is
// defaults, the YAML file at configPath (or $CONTACT_MAILER_CONFIG), the
// .env files and finally the process environment. When no env files are
// given, ./.env is read if it exists.
func Load(configPath string, envFiles ...string) (Config, error) {
	cfg := Defaults()

	if configPath == "" {
		configPath = os.Getenv(ConfigPathEnv)
	}
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("trying to open config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("error unmarshaling YAML %s: %w", configPath, err)
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return cfg, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFromMap applies env-style keys on top of the defaults. It never touches
// the process environment.
func LoadFromMap(env map[string]string) (Config, error) {
	cfg := Defaults()
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func readEnvFiles(files []string) (map[string]string, error) {
	optional := false
	if len(files) == 0 {
		files = []string{defaultEnvFile}
		optional = true
	}

	merged := map[string]string{}
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading env file %s: %w", f, err)
		}
		// earlier files win, as with godotenv.Load
		for k, v := range values {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = b
		return nil
	}

	str("NODE_ENV", &cfg.Environment)
	str("SMTP_HOST", &cfg.SMTP.Host)
	str("SMTP_USER", &cfg.SMTP.User)
	str("SMTP_PASS", &cfg.SMTP.Password)
	str("RECIPIENT_EMAIL", &cfg.Contact.RecipientEmail)
	str("BRANDING_NAME", &cfg.Branding.Name)
	str("BRANDING_TAGLINE", &cfg.Branding.Tagline)

	if v, ok := lookup("LOG_FILE"); ok {
		// LOG_FILE="" explicitly disables the rotating error log
		cfg.Logging.File = v
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.ListenAddress = "0.0.0.0:" + strconv.Itoa(port)
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	for key, dst := range map[string]*int{
		"SMTP_PORT":       &cfg.SMTP.Port,
		"LOG_MAX_SIZE_MB": &cfg.Logging.MaxSizeMB,
		"LOG_MAX_BACKUPS": &cfg.Logging.MaxBackups,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return boolean("SMTP_INSECURE_SKIP_VERIFY", &cfg.SMTP.InsecureSkipVerify)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
