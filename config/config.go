package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"NewsHunter/internal/account"
	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
	"NewsHunter/internal/platform/guardian"
	"NewsHunter/internal/platform/newsapi"
	"NewsHunter/internal/platform/nytimes"
	"NewsHunter/pkg/logger"
)

const envPrefix = "NHT"

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // DEBUG/INFO/WARN/ERROR
	File  string `mapstructure:"file" yaml:"file"`   // 为空时输出到 stderr
	Color bool   `mapstructure:"color" yaml:"color"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	RateLimit    float64       `mapstructure:"rate_limit" yaml:"rate_limit"` // 每个 IP 每秒请求数，0 表示不限流
	Burst        int           `mapstructure:"burst" yaml:"burst"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // 数据库文件路径
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
}

type AggregatorConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // 单个平台调用的上限
}

// AppConfig 应用总配置(全局 + 平台)
type AppConfig struct {
	Env        string           `mapstructure:"env" yaml:"env"` // 运行环境:dev/prod
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Auth       AuthConfig       `mapstructure:"auth" yaml:"auth"`
	Aggregator AggregatorConfig `mapstructure:"aggregator" yaml:"aggregator"`
	NewsAPI    newsapi.Config   `mapstructure:"newsapi" yaml:"newsapi"`   // newsapi.org
	Guardian   guardian.Config  `mapstructure:"guardian" yaml:"guardian"` // The Guardian
	NYTimes    nytimes.Config   `mapstructure:"nytimes" yaml:"nytimes"`   // New York Times
}

var (
	global     *AppConfig
	once       sync.Once
	globalErr  error
	configPath string // 存储当前使用的配置文件路径
)

// 沿用旧部署里的环境变量名
var legacyEnv = map[string][]string{
	"newsapi.search_url":  {"NEWSAPIORG_SEARCH_URL"},
	"newsapi.api_key":     {"NEWSAPIORG_API_KEY"},
	"guardian.search_url": {"GUARDIAN_NEWS_SEARCH_URL"},
	"guardian.api_key":    {"GUARDIAN_NEWS_API_KEY", "GUARDIAN_NEWS_API_kEY"},
	"nytimes.search_url":  {"NEWYORKTIMES_SEARCH_URL"},
	"nytimes.api_key":     {"NEWYORKTIMES_API_KEY"},
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, ".newshunter")
}

// DefaultConfigFile config init 默认写入的位置
func DefaultConfigFile() string {
	return filepath.Join(homeDir(), "config", "config.yaml")
}

func defaults() *AppConfig {
	return &AppConfig{
		Env: "prod",
		Log: LogConfig{Level: "INFO", Color: true},
		Server: ServerConfig{
			Addr:         ":8080",
			RateLimit:    5,
			Burst:        20,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 45 * time.Second,
		},
		Database:   DatabaseConfig{Path: filepath.Join(homeDir(), "data", "newshunter.db")},
		Auth:       AuthConfig{BcryptCost: account.DefaultBcryptCost},
		Aggregator: AggregatorConfig{Timeout: core.DefaultFetchTimeout},
		NewsAPI:    *newsapi.DefaultConfig(),
		Guardian:   *guardian.DefaultConfig(),
		NYTimes:    *nytimes.DefaultConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	d := defaults()
	v.SetDefault("env", d.Env)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.color", d.Log.Color)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.burst", d.Server.Burst)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("auth.bcrypt_cost", d.Auth.BcryptCost)
	v.SetDefault("aggregator.timeout", d.Aggregator.Timeout)

	providers := map[string]struct {
		url     string
		timeout time.Duration
		retries int
	}{
		"newsapi":  {d.NewsAPI.SearchURL, d.NewsAPI.Timeout, d.NewsAPI.Retries},
		"guardian": {d.Guardian.SearchURL, d.Guardian.Timeout, d.Guardian.Retries},
		"nytimes":  {d.NYTimes.SearchURL, d.NYTimes.Timeout, d.NYTimes.Retries},
	}
	for name, p := range providers {
		v.SetDefault(name+".search_url", p.url)
		v.SetDefault(name+".api_key", "")
		v.SetDefault(name+".proxy", "")
		v.SetDefault(name+".timeout", p.timeout)
		v.SetDefault(name+".retries", p.retries)
	}
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("读取 .env 失败: %v", err)
	}
}

// Load 读取配置，不影响全局实例；可额外传入目录或具体文件路径
func Load(configPaths ...string) (*AppConfig, string, error) {
	loadDotEnv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), "config"))

	for _, p := range configPaths {
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
			v.SetConfigFile(p)
		} else {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envName := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, envName}, names...)...); err != nil {
			return nil, "", fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	setDefaults(v)

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("读取配置文件失败: %w", err)
		}
		logger.Debug("未找到配置文件，使用默认值和环境变量")
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("配置解析失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}

// Init 初始化全局配置，只生效一次
func Init(configPaths ...string) (*AppConfig, error) {
	once.Do(func() {
		global, configPath, globalErr = Load(configPaths...)
	})
	return global, globalErr
}

func MustInit(configPaths ...string) *AppConfig {
	cfg, err := Init(configPaths...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Get() *AppConfig {
	if global == nil {
		_, _ = Init()
	}
	return global
}

func GetConfigPath() string {
	if configPath == "" {
		_, _ = Init()
	}
	return configPath
}

func (c *AppConfig) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server 配置不合法: addr required")
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("server 配置不合法: rate_limit and burst must not be negative")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database 配置不合法: path required")
	}
	if c.Aggregator.Timeout <= 0 {
		return fmt.Errorf("aggregator 配置不合法: invalid timeout %v", c.Aggregator.Timeout)
	}
	checks := []struct {
		name string
		cfg  platform.Config
	}{
		{"newsapi", &c.NewsAPI},
		{"guardian", &c.Guardian},
		{"nytimes", &c.NYTimes},
	}
	for _, ch := range checks {
		if err := ch.cfg.Validate(); err != nil {
			return fmt.Errorf("%s 配置不合法: %w", ch.name, err)
		}
	}
	return nil
}

// PlatformConfigs 交给 core.Build 的各平台配置
func (c *AppConfig) PlatformConfigs() map[models.ProviderID]platform.Config {
	return map[models.ProviderID]platform.Config{
		models.NewsAPI:      &c.NewsAPI,
		models.Guardian:     &c.Guardian,
		models.NewYorkTimes: &c.NYTimes,
	}
}

const exampleHeader = `# NewsHunter 配置文件
# api_key 也可以通过环境变量提供，例如 NEWSAPIORG_API_KEY、GUARDIAN_NEWS_API_KEY、NEWYORKTIMES_API_KEY
# 或者 NHT_<SECTION>_<KEY>，例如 NHT_SERVER_ADDR

`

// ErrConfigExists 目标位置已有配置文件
var ErrConfigExists = errors.New("config file already exists")

// WriteExampleConfig 按默认值生成示例配置；path 为空时写到 DefaultConfigFile
func WriteExampleConfig(path string, overwrite bool) (string, error) {
	if path == "" {
		path = DefaultConfigFile()
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return path, ErrConfigExists
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return path, fmt.Errorf("检查配置文件时出错: %w", err)
	}

	out, err := yaml.Marshal(defaults())
	if err != nil {
		return path, fmt.Errorf("生成示例配置失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("创建配置目录失败: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(exampleHeader), out...), 0644); err != nil {
		return path, fmt.Errorf("写入配置文件失败: %w", err)
	}
	logger.Info("已在 %s 中创建配置文件", path)
	return path, nil
}
