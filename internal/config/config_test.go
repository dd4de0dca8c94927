package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSMTPListsEveryMissingVar(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateSMTP()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_USER")
	assert.Contains(t, err.Error(), "SMTP_PASS")
	assert.Contains(t, err.Error(), "EMAIL_FROM")
}

func TestValidateSMTPPartiallyConfigured(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.example.com", SMTPUser: "mailer"}
	err := cfg.ValidateSMTP()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_PASS")
}

func TestValidateSMTPComplete(t *testing.T) {
	cfg := &Config{
		SMTPHost:  "smtp.example.com",
		SMTPUser:  "mailer",
		SMTPPass:  "hunter2",
		EmailFrom: "no-reply@drivana.com",
	}
	assert.NoError(t, cfg.ValidateSMTP())
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SMTP_PORT", "EMAIL_FROM_NAME", "BASE_URL", "EMAIL_REJECT_UNAUTHORIZED"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "8086", cfg.ServerPort)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "Drivana", cfg.EmailFromName)
	assert.Equal(t, "https://drivana.com", cfg.BaseURL)
	assert.True(t, cfg.EmailRejectUnauthorized)
}
