package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644), "无法写入临时配置文件")
	return configPath
}

// TestLoadConfigMergesDefaults 文件中未出现的字段保留默认值
func TestLoadConfigMergesDefaults(t *testing.T) {
	configPath := writeConfig(t, `
server:
  address: ":9090"
upload:
  max_file_size_mb: 2
  allowed_extensions: [".txt"]
rate_limit:
  enabled: true
  qpm: 30
  backend: redis
`)

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载配置不应返回错误")
	require.NotNil(t, config)

	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 2, config.Upload.MaxFileSizeMB)
	assert.Equal(t, []string{".txt"}, config.Upload.AllowedExtensions)
	assert.Equal(t, int64(2*1024*1024), config.MaxFileSizeBytes())
	assert.True(t, config.RateLimit.Enabled)
	assert.Equal(t, 30, config.RateLimit.QPM)
	assert.Equal(t, RateLimitBackendRedis, config.RateLimit.Backend)

	// 默认值
	assert.Equal(t, 10, config.RateLimit.Burst)
	assert.Equal(t, PDFTypeEino, config.PDF.Type)
	assert.Equal(t, 30, config.PDF.Eino.Timeout)
	assert.Equal(t, 2, config.PDF.Eino.MaxConcurrency)
	assert.Equal(t, "localhost:6379", config.Redis.Address)
	assert.Equal(t, "info", config.Logger.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, "server:\n  address: \":9090\"\n")
	t.Setenv(EnvServerAddress, ":7070")
	t.Setenv(EnvVocabularyPath, "/etc/vocab.yaml")
	t.Setenv(EnvRedisAddress, "redis:6380")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, ":7070", config.Server.Address, "环境变量优先于配置文件")
	assert.Equal(t, "/etc/vocab.yaml", config.Vocabulary.Path)
	assert.Equal(t, "redis:6380", config.Redis.Address)

	// LoadConfigFromFileOnly 不读取环境变量
	fileOnly, err := LoadConfigFromFileOnly(configPath)
	require.NoError(t, err)
	assert.Equal(t, ":9090", fileOnly.Server.Address)
	assert.Empty(t, fileOnly.Vocabulary.Path)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "指定的配置文件不存在时应报错")

	_, err = LoadConfigFromFileOnly("")
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err, "YAML语法错误应报错")

	_, err = LoadConfig(writeConfig(t, "pdf:\n  type: pdfium\n"))
	assert.Error(t, err, "不支持的PDF解析器应无法通过校验")
}

// TestLoadConfigSearchPaths 未指定路径时找到当前目录下的 config.yaml
func TestLoadConfigSearchPaths(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, "prose", config.NLP.Engine)
	assert.ElementsMatch(t, []string{".txt", ".pdf", ".html", ".htm", ".docx"}, config.Upload.AllowedExtensions)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate(), "默认配置必须合法")

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"文件大小为0", func(c *Config) { c.Upload.MaxFileSizeMB = 0 }},
		{"扩展名为空", func(c *Config) { c.Upload.AllowedExtensions = nil }},
		{"扩展名缺少点", func(c *Config) { c.Upload.AllowedExtensions = []string{"pdf"} }},
		{"tika缺少地址", func(c *Config) { c.PDF.Type = PDFTypeTika; c.PDF.Tika.ServerURL = "" }},
		{"eino并发数为负", func(c *Config) { c.PDF.Eino.MaxConcurrency = -1 }},
		{"限流QPM非法", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.QPM = 0 }},
		{"限流后端未知", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Backend = "memcached" }},
		{"鉴权缺少key", func(c *Config) { c.Auth.Enabled = true }},
		{"采样率越界", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.SampleRatio = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestCreateSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, CreateSampleConfig(path))
	assert.Error(t, CreateSampleConfig(path), "已存在的文件不应被覆盖")

	loaded, err := LoadConfigFromFileOnly(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded, "示例配置应与默认配置一致")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, GetDuration("abc", 5*time.Second))
	assert.Equal(t, 2*time.Minute, GetDuration("2m", 5*time.Second))
}
