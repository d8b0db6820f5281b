package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithEnvCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, float32(0.1), cfg.OpenAI.Temperature)
	assert.Equal(t, 120*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, 4, cfg.OpenAI.MaxConcurrent)
	assert.Equal(t, "TechNova Solutions, Inc.", cfg.Company.Name)
	assert.Equal(t, "data/invoices", cfg.Report.InvoicesDir)
	assert.Equal(t, "data/invoices-report.xlsx", cfg.Report.OutputPath)
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("COMPANY_NAME", "Globex LLC")
	t.Setenv("INVOICES_DIR", "/tmp/in")
	t.Setenv("REPORT_FILEPATH", "/tmp/out.xlsx")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Globex LLC", cfg.Company.Name)
	assert.Equal(t, "/tmp/in", cfg.Report.InvoicesDir)
	assert.Equal(t, "/tmp/out.xlsx", cfg.Report.OutputPath)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("openai:\n  model: gpt-4o-mini\n  max_concurrent: 8\ncompany:\n  name: Initech\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 8, cfg.OpenAI.MaxConcurrent)
	assert.Equal(t, "Initech", cfg.Company.Name)
}
