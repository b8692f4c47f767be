package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// SQLite配置
	SQLite SQLiteConfig `yaml:"sqlite"`

	// 简历原件存储配置
	FileStore FileStoreConfig `yaml:"file_store"`

	// 匹配管线配置
	Matcher MatcherConfig `yaml:"matcher"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address         string `yaml:"address"`            // 例如 ":8080" or "0.0.0.0:8080"
	MaxUploadSizeMB int    `yaml:"max_upload_size_mb"` // 上传文件大小上限(MB)
}

// SQLiteConfig SQLite配置结构
type SQLiteConfig struct {
	Path string `yaml:"path"` // 数据库文件路径，例如 "hiremind.db"
	// 日志设置
	LogLevel int `yaml:"log_level"` // 日志级别(1-4)
	// 忙等待超时(毫秒)，写冲突时SQLite的重试窗口
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// FileStoreConfig 简历原件存储配置
// backend 为 "local" 时按文件名存放在本地目录，为 "minio" 时使用对象存储
type FileStoreConfig struct {
	Backend  string      `yaml:"backend"`    // "local" 或 "minio"
	LocalDir string      `yaml:"local_dir"`  // local后端的上传目录
	MinIO    MinIOConfig `yaml:"minio"`      // minio后端配置
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	BucketName      string `yaml:"bucketName"`
	Location        string `yaml:"location"` // 可选，存储桶区域
}

// MatcherConfig 匹配管线配置
type MatcherConfig struct {
	// 技能词表，按声明顺序输出命中的词条；为空时使用内置默认词表
	SkillVocabulary []string `yaml:"skill_vocabulary"`
	// TF-IDF主评分低于该值时启用词元重叠回退
	FallbackEpsilon float64 `yaml:"fallback_epsilon"`
	// 摘要截取长度(字符数)
	ExcerptLength int `yaml:"excerpt_length"`
	// PDF提取后端: "eino" 或 "native"
	PDFBackend string `yaml:"pdf_backend"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`      // 是否启用OTLP上报
	Endpoint    string `yaml:"endpoint"`     // OTLP gRPC端点，例如 "localhost:4317"
	ServiceName string `yaml:"service_name"` // 上报的服务名
}

// LoadConfig 从文件加载配置
// configPath 为空时在常见位置查找 config.yaml；找不到时返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".hiremind", "config.yaml"),
		}

		// 可执行文件所在目录也纳入查找范围
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖敏感配置（如果存在）
	if envKey := os.Getenv("MINIO_ACCESS_KEY_ID"); envKey != "" {
		config.FileStore.MinIO.AccessKeyID = envKey
	}
	if envSecret := os.Getenv("MINIO_SECRET_ACCESS_KEY"); envSecret != "" {
		config.FileStore.MinIO.SecretAccessKey = envSecret
	}

	config.applyDefaults()
	return &config, nil
}

// DefaultConfig 返回内置默认配置，未提供配置文件时使用
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 为未设置的字段填充默认值
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.MaxUploadSizeMB <= 0 {
		c.Server.MaxUploadSizeMB = 16 // 原型的16MB上限
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "hiremind.db"
	}
	if c.SQLite.BusyTimeoutMS <= 0 {
		c.SQLite.BusyTimeoutMS = 5000
	}
	if c.FileStore.Backend == "" {
		c.FileStore.Backend = "local"
	}
	if c.FileStore.LocalDir == "" {
		c.FileStore.LocalDir = "uploads"
	}
	if c.FileStore.MinIO.BucketName == "" {
		c.FileStore.MinIO.BucketName = "resumes"
	}
	if c.Matcher.FallbackEpsilon <= 0 {
		c.Matcher.FallbackEpsilon = 1e-4
	}
	if c.Matcher.ExcerptLength <= 0 {
		c.Matcher.ExcerptLength = 2000
	}
	if c.Matcher.PDFBackend == "" {
		c.Matcher.PDFBackend = "eino"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "hiremind"
	}
	c.FileStore.Backend = strings.ToLower(c.FileStore.Backend)
	c.Matcher.PDFBackend = strings.ToLower(c.Matcher.PDFBackend)
}
