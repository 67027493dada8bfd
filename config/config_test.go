package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123"
server:
  port: 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes())
	assert.Equal(t, MailPolicySuppress, cfg.Mail.FailurePolicy)
	assert.Equal(t, DefaultCycleName, cfg.Cycle.DefaultName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123"
`)
	t.Setenv("EVAL_SERVER_PORT", "7000")
	t.Setenv("EVAL_MAIL_FAILURE_POLICY", "propagate")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, MailPolicyPropagate, cfg.Mail.FailurePolicy)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Auth:    AuthConfig{JWTSecret: "0123456789abcdef"},
			Storage: StorageConfig{Driver: StorageDriverLocal, LocalDir: "/tmp/w", MaxUploadMB: 5},
			Mail:    MailConfig{FailurePolicy: MailPolicySuppress},
			Cycle:   CycleConfig{DefaultName: DefaultCycleName},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Driver = StorageDriverS3 }, wantErr: true},
		{name: "s3 with bucket", mutate: func(c *Config) {
			c.Storage.Driver = StorageDriverS3
			c.Storage.S3.Bucket = "witnesses"
		}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "ftp" }, wantErr: true},
		{name: "unknown mail policy", mutate: func(c *Config) { c.Mail.FailurePolicy = "retry" }, wantErr: true},
		{name: "blank cycle name", mutate: func(c *Config) { c.Cycle.DefaultName = "  " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
