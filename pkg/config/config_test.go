package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.ListenAddress)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "app.log", cfg.Logging.File)
	assert.Equal(t, 5, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 3, cfg.Logging.MaxBackups)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.SMTPConfigured())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromMap(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{
		"SMTP_HOST":                 "mail.example.com",
		"SMTP_PORT":                 "465",
		"SMTP_USER":                 "bot@example.com",
		"SMTP_PASS":                 "secret",
		"SMTP_INSECURE_SKIP_VERIFY": "true",
		"RECIPIENT_EMAIL":           "sales@example.com",
		"NODE_ENV":                  "production",
		"PORT":                      "8080",
		"CORS_ALLOWED_ORIGINS":      "https://a.example.com, https://b.example.com",
		"SHUTDOWN_TIMEOUT":          "3s",
		"LOG_MAX_SIZE_MB":           "10",
		"LOG_MAX_BACKUPS":           "1",
		"BRANDING_NAME":             "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "bot@example.com", cfg.SMTP.User)
	assert.Equal(t, "secret", cfg.SMTP.Password)
	assert.True(t, cfg.SMTP.InsecureSkipVerify)
	assert.Equal(t, "sales@example.com", cfg.Contact.RecipientEmail)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.SMTPConfigured())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.ListenAddress)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 1, cfg.Logging.MaxBackups)
	assert.Equal(t, "Acme", cfg.Branding.Name)
	assert.Equal(t, "Excellence in Business Solutions", cfg.Branding.Tagline)
}

func TestLoadFromMap_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non numeric smtp port", env: map[string]string{"SMTP_PORT": "smtp"}},
		{name: "smtp port out of range", env: map[string]string{"SMTP_PORT": "70000"}},
		{name: "non numeric listen port", env: map[string]string{"PORT": "http"}},
		{name: "bad bool", env: map[string]string{"SMTP_INSECURE_SKIP_VERIFY": "maybe"}},
		{name: "bad duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "zero log size", env: map[string]string{"LOG_MAX_SIZE_MB": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromMap(tt.env)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromMap_EmptyLogFileDisablesRotation(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{"LOG_FILE": "", "LOG_MAX_SIZE_MB": "0"})
	require.NoError(t, err)
	assert.Empty(t, cfg.Logging.File)
}

func TestNodeEnvProductionIsCaseInsensitive(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{"NODE_ENV": "Production"})
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_YAMLFileAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, "test.env")

	require.NoError(t, os.WriteFile(yamlPath, []byte(`
environment: staging
server:
  listenAddress: 127.0.0.1:9000
  shutdownTimeout: 5s
smtp:
  host: yaml.example.com
  port: 2525
contact:
  recipientEmail: yaml@example.com
branding:
  name: YAML Corp
`), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("SMTP_HOST=dotenv.example.com\nSMTP_USER=dotenv-user\n"), 0o600))

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "dotenv.example.com", cfg.SMTP.Host, ".env overrides YAML")
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "dotenv-user", cfg.SMTP.User)
	assert.Equal(t, "yaml@example.com", cfg.Contact.RecipientEmail)
	assert.Equal(t, "YAML Corp", cfg.Branding.Name)
	assert.Equal(t, "Excellence in Business Solutions", cfg.Branding.Tagline, "unset YAML keys keep defaults")
}

func TestLoad_ProcessEnvWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("RECIPIENT_EMAIL=file@example.com\n"), 0o600))
	t.Setenv("RECIPIENT_EMAIL", "process@example.com")

	cfg, err := Load("", envPath)
	require.NoError(t, err)
	assert.Equal(t, "process@example.com", cfg.Contact.RecipientEmail)
}

func TestLoad_ConfigPathFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("environment: production\n"), 0o600))
	t.Setenv(ConfigPathEnv, yamlPath)
	t.Setenv("NODE_ENV", "")

	cfg, err := Load("", filepath.Join(dir, "missing-is-error.env"))
	assert.Error(t, err, "explicit env files must exist")

	emptyEnv := filepath.Join(dir, "empty.env")
	require.NoError(t, os.WriteFile(emptyEnv, nil, 0o600))
	cfg, err = Load("", emptyEnv)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("smtp: [unterminated"), 0o600))
	_, err = Load(broken)
	assert.Error(t, err)
}
