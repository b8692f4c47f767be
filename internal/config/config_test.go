package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 16, cfg.Server.MaxUploadSizeMB)
	assert.Equal(t, "hiremind.db", cfg.SQLite.Path)
	assert.Equal(t, "local", cfg.FileStore.Backend)
	assert.Equal(t, "uploads", cfg.FileStore.LocalDir)
	assert.Equal(t, 1e-4, cfg.Matcher.FallbackEpsilon)
	assert.Equal(t, 2000, cfg.Matcher.ExcerptLength)
	assert.Equal(t, "eino", cfg.Matcher.PDFBackend)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server:
  address: ":9999"
sqlite:
  path: "/tmp/test.db"
file_store:
  backend: "MinIO"
matcher:
  skill_vocabulary: ["go", "sql"]
  pdf_backend: "Native"
logger:
  level: "debug"
  format: "json"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "/tmp/test.db", cfg.SQLite.Path)
	// 后端名大小写不敏感
	assert.Equal(t, "minio", cfg.FileStore.Backend)
	assert.Equal(t, "native", cfg.Matcher.PDFBackend)
	assert.Equal(t, []string{"go", "sql"}, cfg.Matcher.SkillVocabulary)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// 未设置的字段回填默认值
	assert.Equal(t, 16, cfg.Server.MaxUploadSizeMB)
	assert.Equal(t, 1e-4, cfg.Matcher.FallbackEpsilon)
}

func TestLoadConfigMinIOEnvOverride(t *testing.T) {
	content := `
file_store:
  backend: "minio"
  minio:
    accessKeyID: "from-file"
    secretAccessKey: "from-file"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("MINIO_ACCESS_KEY_ID", "from-env")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "secret-from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.FileStore.MinIO.AccessKeyID)
	assert.Equal(t, "secret-from-env", cfg.FileStore.MinIO.SecretAccessKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	assert.Error(t, err)
}
