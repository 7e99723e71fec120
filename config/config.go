// Package config 负责加载并校验服务配置（YAML 文件 + 环境变量覆盖）。
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 是服务的完整配置。
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig 是 HTTP 服务配置。
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	CacheTTL     int      `yaml:"cache_ttl"` // 响应缓存秒数，0 表示不缓存
}

// DataConfig 指定商品/交互数据文件。
type DataConfig struct {
	ProductsCSV string `yaml:"products_csv"`
}

// EngineConfig 是推荐引擎参数。
type EngineConfig struct {
	MaxFeatures      int      `yaml:"max_features"`       // TF-IDF 词表上限
	SVDRank          int      `yaml:"svd_rank"`           // 隐因子数量上限
	TopKSimilarUsers int      `yaml:"top_k_similar_users"`
	ItemSimThreshold float64  `yaml:"item_sim_threshold"`
	FilterRules      []string `yaml:"filter_rules"` // CEL 表达式，返回 true 表示保留候选
	TopRatedKey      string   `yaml:"top_rated_key"`
}

// StoreConfig 选择缓存后端。
type StoreConfig struct {
	Backend  string `yaml:"backend"` // memory / redis
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 控制日志输出。
type LogConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Format string `yaml:"format"` // text / json
}

// Default 返回内置默认配置，YAML 中未出现的字段保持这些值。
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			AllowOrigins: []string{"*"},
			CacheTTL:     60,
		},
		Data: DataConfig{
			ProductsCSV: "data/products.csv",
		},
		Engine: EngineConfig{
			MaxFeatures:      5000,
			SVDRank:          50,
			TopKSimilarUsers: 50,
			ItemSimThreshold: 0.1,
			TopRatedKey:      "shoprec:top_rated",
		},
		Store: StoreConfig{
			Backend: "memory",
			Addr:    "127.0.0.1:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 从 YAML 文件加载配置。path 为空或文件不存在时使用默认配置，
// 之后应用环境变量覆盖并校验。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 用环境变量覆盖部署相关字段，便于容器化部署。
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("PRODUCTS_CSV"); v != "" {
		c.Data.ProductsCSV = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Store.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Store.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Store.DB = db
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate 检查配置的合法性，非法配置直接拒绝启动。
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("invalid cache ttl: %d", c.Server.CacheTTL)
	}
	if c.Engine.MaxFeatures < 0 {
		return fmt.Errorf("invalid max_features: %d", c.Engine.MaxFeatures)
	}
	if c.Engine.SVDRank < 0 {
		return fmt.Errorf("invalid svd_rank: %d", c.Engine.SVDRank)
	}
	if c.Engine.TopKSimilarUsers < 0 {
		return fmt.Errorf("invalid top_k_similar_users: %d", c.Engine.TopKSimilarUsers)
	}
	switch c.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported store backend: %q", c.Store.Backend)
	}
	return nil
}
