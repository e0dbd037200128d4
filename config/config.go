package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	ModelServer struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		Model      string `yaml:"model"`
		TimeoutSec int    `yaml:"timeout_sec"` // 单次推理请求超时，单位：秒
	} `yaml:"model_server"`
	JWT struct {
		Secret           string `yaml:"secret"`
		Issuer           string `yaml:"issuer"`
		AccessExpireMin  int    `yaml:"access_expire_min"`  // 访问令牌有效期（分钟）
		RefreshExpireHrs int    `yaml:"refresh_expire_hrs"` // 刷新令牌有效期（小时）
	} `yaml:"jwt"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Cron struct {
		LookbackDays int `yaml:"lookback_days"` // 预富化回溯天数
		EnrichHour   int `yaml:"enrich_hour"`   // 每天预富化的小时（0-23）
		EnrichMin    int `yaml:"enrich_min"`    // 每天预富化的分钟（0-59）
		Concurrency  int `yaml:"concurrency"`   // 日记富化并发数
	} `yaml:"cron"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
		DefaultHour      int `yaml:"default_hour"`       // 默认执行小时
		DefaultMinute    int `yaml:"default_minute"`     // 默认执行分钟
	} `yaml:"scheduler"`
}

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")

		// 计算 Server.Addr 字段
		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

		// 从环境变量中加载敏感信息
		applySecretOverrides(&cfg)

		// 计算 DB.DSN 字段
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = buildDSN(&cfg)
		}

		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

// applySecretOverrides 敏感配置允许用环境变量覆盖配置文件
func applySecretOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_USERNAME"); v != "" {
		cfg.DB.Username = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("MODEL_API_KEY"); v != "" {
		cfg.ModelServer.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
}

// buildDSN 根据数据库配置拼接MySQL DSN
func buildDSN(cfg *Config) string {
	if cfg.DB.Charset == "" {
		cfg.DB.Charset = "utf8mb4"
	}

	parseTime := ""
	if cfg.DB.ParseTime {
		parseTime = "&parseTime=true"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
		cfg.DB.Charset,
		parseTime)
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if url := os.Getenv("MODEL_BASE_URL"); url != "" {
		cfg.ModelServer.BaseURL = url
	}

	applySecretOverrides(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}
