package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"resume-analyzer/internal/constants"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 上传限制
	Upload UploadConfig `yaml:"upload"`

	// PDF解析器配置
	PDF PDFConfig `yaml:"pdf"`

	// 分类词表配置
	Vocabulary VocabularyConfig `yaml:"vocabulary"`

	// 人名识别/分句引擎
	NLP NLPConfig `yaml:"nlp"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// Redis配置，仅在限流后端为 redis 时使用
	Redis RedisConfig `yaml:"redis"`

	// 限流配置
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// API Key 鉴权
	Auth AuthConfig `yaml:"auth"`

	// 链路追踪
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address          string `yaml:"address"`             // 例如 ":8080" or "0.0.0.0:8080"
	ReadTimeout      string `yaml:"read_timeout"`        // 例如 "30s"
	MaxRequestBodyMB int    `yaml:"max_request_body_mb"` // 请求体上限(MB)
}

// UploadConfig 上传文件限制
type UploadConfig struct {
	MaxFileSizeMB     int      `yaml:"max_file_size_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"` // 例如 [".txt", ".pdf"]
}

// PDFConfig PDF解析器配置
type PDFConfig struct {
	Type string     `yaml:"type"` // eino 或 tika
	Eino EinoConfig `yaml:"eino"`
	Tika TikaConfig `yaml:"tika"`
}

// EinoConfig 本地 eino PDF 解析配置
// 解析在进程内进行，面向公网的部署建议改用 tika
type EinoConfig struct {
	Timeout        int `yaml:"timeout_seconds"` // 单个文件解析超时(秒)
	MaxConcurrency int `yaml:"max_concurrency"` // 同时进行的解析数
}

// TikaConfig Tika服务器配置结构
type TikaConfig struct {
	ServerURL    string `yaml:"server_url"`      // Tika服务器URL
	Timeout      int    `yaml:"timeout_seconds"` // 超时时间(秒)
	MetadataMode string `yaml:"metadata_mode"`   // 元数据模式: "full", "minimal", "none"
}

// VocabularyConfig 分类词表
type VocabularyConfig struct {
	Path string `yaml:"path"` // 为空时使用内置词表
}

// NLPConfig 标注引擎
type NLPConfig struct {
	Engine string `yaml:"engine"` // prose 或 rule
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
	File         string `yaml:"file"`          // 额外写入的日志文件，为空则只输出到控制台
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`          // 最大重试次数
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"` // 最小重试间隔(毫秒)
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"` // 最大重试间隔(毫秒)
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`  // 连接最大生命周期(分钟)
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"` // 空闲连接最大生命周期(分钟)
}

// RateLimitConfig 分析接口限流
type RateLimitConfig struct {
	Enabled bool   `yaml:"enabled"`
	QPM     int    `yaml:"qpm"`     // 每个客户端每分钟请求数
	Burst   int    `yaml:"burst"`   // 本地令牌桶容量
	Backend string `yaml:"backend"` // local 或 redis
}

// AuthConfig API Key 鉴权
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"api_keys"`
}

// TracingConfig OpenTelemetry 配置
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP gRPC 地址，例如 "localhost:4317"
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"` // 0~1
}

// 支持的取值
const (
	PDFTypeEino = "eino"
	PDFTypeTika = "tika"

	RateLimitBackendLocal = "local"
	RateLimitBackendRedis = "redis"
)

// 环境变量
const (
	EnvServerAddress  = "RESUME_ANALYZER_ADDR"
	EnvVocabularyPath = "RESUME_ANALYZER_VOCAB"
	EnvRedisAddress   = "REDIS_ADDR"
)

// LoadConfig 从文件加载配置
// 未指定路径时在常见位置查找 config.yaml，找不到则使用默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
		if configPath == "" {
			config := DefaultConfig()
			applyEnvOverrides(config)
			return config, nil
		}
	}

	config, err := LoadConfigFromFileOnly(configPath)
	if err != nil {
		return nil, err
	}

	// 从环境变量覆盖配置（如果存在）
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// findConfigFile 在常见位置查找配置文件，找不到返回空字符串
func findConfigFile() string {
	searchPaths := []string{
		"config.yaml",
		"./internal/config/config.yaml",
		"../config.yaml",
		filepath.Join(os.Getenv("HOME"), ".resume-analyzer", "config.yaml"),
	}

	// 可执行文件所在目录
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, "config.yaml"),
			filepath.Join(execDir, "..", "config.yaml"),
		)
	}

	for _, path := range searchPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadConfigFromFileOnly 从文件加载配置，不尝试从环境变量覆盖
// 文件中缺省的字段使用默认值
func LoadConfigFromFileOnly(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("必须提供配置文件路径")
	}

	// 检查文件是否存在
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	// 读取配置文件
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 先填充默认值，再用文件内容覆盖
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if addr := os.Getenv(EnvServerAddress); addr != "" {
		config.Server.Address = addr
	}
	if path := os.Getenv(EnvVocabularyPath); path != "" {
		config.Vocabulary.Path = path
	}
	if addr := os.Getenv(EnvRedisAddress); addr != "" {
		config.Redis.Address = addr
	}
}

// DefaultConfig 创建默认配置
func DefaultConfig() *Config {
	config := &Config{}

	// 服务器默认配置
	config.Server.Address = constants.DefaultServerAddress
	config.Server.ReadTimeout = "30s"
	config.Server.MaxRequestBodyMB = constants.DefaultMaxFileSizeMB + 2

	// 上传默认配置
	config.Upload.MaxFileSizeMB = constants.DefaultMaxFileSizeMB
	config.Upload.AllowedExtensions = append([]string(nil), constants.DefaultAllowedExtensions...)

	// PDF默认使用eino本地解析，Tika作为可选后端
	config.PDF.Type = PDFTypeEino
	config.PDF.Eino.Timeout = 30
	config.PDF.Eino.MaxConcurrency = 2
	config.PDF.Tika.ServerURL = "http://localhost:9998"
	config.PDF.Tika.Timeout = 60
	config.PDF.Tika.MetadataMode = "minimal"

	config.NLP.Engine = "prose"

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	// Redis默认配置
	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.MinRetryBackoffMS = 8
	config.Redis.MaxRetryBackoffMS = 512
	config.Redis.ConnMaxLifetimeMinutes = 60
	config.Redis.ConnMaxIdleTimeMinutes = 30

	// 限流默认关闭
	config.RateLimit.QPM = 60
	config.RateLimit.Burst = 10
	config.RateLimit.Backend = RateLimitBackendLocal

	config.Auth.APIKeys = []string{}

	// 链路追踪默认关闭
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.Insecure = true
	config.Tracing.ServiceName = constants.ServiceName
	config.Tracing.SampleRatio = 1.0

	return config
}

// Validate 检查配置取值是否合法
func (c *Config) Validate() error {
	if c.Upload.MaxFileSizeMB <= 0 {
		return fmt.Errorf("upload.max_file_size_mb 必须大于0: %d", c.Upload.MaxFileSizeMB)
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("upload.allowed_extensions 不能为空")
	}
	for _, ext := range c.Upload.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("无效的文件扩展名 '%s'，必须以 '.' 开头", ext)
		}
	}

	switch strings.ToLower(c.PDF.Type) {
	case "", PDFTypeEino:
		if c.PDF.Eino.Timeout < 0 || c.PDF.Eino.MaxConcurrency < 0 {
			return fmt.Errorf("pdf.eino 的超时和并发数不能为负数")
		}
	case PDFTypeTika:
		if c.PDF.Tika.ServerURL == "" {
			return fmt.Errorf("pdf.type 为 tika 时必须配置 pdf.tika.server_url")
		}
	default:
		return fmt.Errorf("不支持的PDF解析器类型: %s", c.PDF.Type)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.QPM <= 0 {
			return fmt.Errorf("rate_limit.qpm 必须大于0: %d", c.RateLimit.QPM)
		}
		switch c.RateLimit.Backend {
		case "", RateLimitBackendLocal, RateLimitBackendRedis:
		default:
			return fmt.Errorf("不支持的限流后端: %s", c.RateLimit.Backend)
		}
	}

	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("auth.enabled 为 true 时必须配置 auth.api_keys")
	}

	if c.Tracing.Enabled && (c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1) {
		return fmt.Errorf("tracing.sample_ratio 必须在 [0,1] 之间: %v", c.Tracing.SampleRatio)
	}
	return nil
}

// MaxFileSizeBytes 上传文件大小上限(字节)
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Upload.MaxFileSizeMB) * 1024 * 1024
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	// 检查文件是否已存在
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	// 将配置序列化为YAML
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	// 写入文件
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}
	return nil
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
