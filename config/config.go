package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config 进程级配置，全部来自环境变量（支持 .env 文件）
type Config struct {
	Env        string `mapstructure:"BLOG_ENV"`
	HTTPAddr   string `mapstructure:"BLOG_HTTP_ADDR"`
	SQLitePath string `mapstructure:"BLOG_SQLITE_PATH"`
	RedisAddr  string `mapstructure:"BLOG_REDIS_ADDR"` // 为空则不启用缓存
}

// Load 读取配置，未设置的键使用默认值
func Load() (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("BLOG_ENV", "development")
	v.SetDefault("BLOG_HTTP_ADDR", ":1234")
	v.SetDefault("BLOG_SQLITE_PATH", "blog.db")
	v.SetDefault("BLOG_REDIS_ADDR", "")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
