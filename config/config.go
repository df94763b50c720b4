package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Store     StoreConfig     `mapstructure:"store"`
	Features  FeatureConfig   `mapstructure:"features"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// RemoteConfig 远程表格接口配置
type RemoteConfig struct {
	URL            string        `mapstructure:"url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"-"`
}

// AuthConfig 本地登录配置
// 账号密码是固定值，登录只是界面门禁，不是访问控制
type AuthConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	FlagKey      string `mapstructure:"flag_key"`
	CookieSecret string `mapstructure:"cookie_secret"`
	CookieMaxAge int    `mapstructure:"cookie_max_age"`
}

// StoreConfig 本地存储配置（终端客户端使用）
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// FeatureConfig 功能开关
type FeatureConfig struct {
	// LoanLinks 支出/收入表单是否携带 prestamoId、tipoAbono
	LoanLinks bool `mapstructure:"loan_links"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig 登录限流配置
type RateLimitConfig struct {
	LoginAttempts int           `mapstructure:"login_attempts"`
	WindowSeconds int           `mapstructure:"window_seconds"`
	Window        time.Duration `mapstructure:"-"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/finanzas")
		externalViper.AddConfigPath("$HOME/.finanzas")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 FINANCE_REMOTE_URL
	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.normalize()

	GlobalConfig = &cfg
	initLogger(cfg.Log)

	return &cfg, nil
}

func (cfg *Config) normalize() {
	if cfg.Remote.TimeoutSeconds <= 0 {
		cfg.Remote.TimeoutSeconds = 30
	}
	cfg.Remote.Timeout = time.Duration(cfg.Remote.TimeoutSeconds) * time.Second

	if cfg.RateLimit.LoginAttempts <= 0 {
		cfg.RateLimit.LoginAttempts = 10
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	cfg.RateLimit.Window = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	if cfg.Auth.FlagKey == "" {
		cfg.Auth.FlagKey = "finanzas_logged_in"
	}
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	logger := GetLogger()
	logger.Infof("当前配置:")
	logger.Infof("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	logger.Infof("  远程接口: %s (超时: %s)", GlobalConfig.Remote.URL, GlobalConfig.Remote.Timeout)
	logger.Infof("  登录用户: %s", GlobalConfig.Auth.Username)
	logger.Infof("  Cookie 签名: %v", GlobalConfig.Auth.CookieSecret != "")
	logger.Infof("  借贷关联字段: %v", GlobalConfig.Features.LoanLinks)
}
