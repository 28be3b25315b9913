package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Feed     FeedConfig     `mapstructure:"feed"`
	HotScore HotScoreConfig `mapstructure:"hot_score"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"` // debug / release
	RateRPS   int    `mapstructure:"rate_rps"`
	RateBurst int    `mapstructure:"rate_burst"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres / sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // 为空时禁用缓存
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TopCommentTTL 热评快照缓存时长
	TopCommentTTL time.Duration `mapstructure:"top_comment_ttl"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type FeedConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

type HotScoreConfig struct {
	// Interval 重算周期；Window 只重算该时间窗内创建的 ACTIVE 帖子
	Interval time.Duration `mapstructure:"interval"`
	Window   time.Duration `mapstructure:"window"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	// Endpoint OTLP/HTTP collector 地址，为空时不启用
	Endpoint string `mapstructure:"endpoint"`
}

// Load 读取配置：默认值 < config.yaml < 环境变量（APP_ 前缀）
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_rps", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=social_feed port=5432 sslmode=disable")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.top_comment_ttl", time.Minute)
	v.SetDefault("jwt.secret", "dev-secret")
	v.SetDefault("feed.default_page_size", 10)
	v.SetDefault("feed.max_page_size", 50)
	v.SetDefault("hot_score.interval", 5*time.Minute)
	v.SetDefault("hot_score.window", 72*time.Hour)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选，读不到就用默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
