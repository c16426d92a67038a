package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Grading   GradingConfig   `mapstructure:"grading"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Event     EventConfig     `mapstructure:"event"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// GradingConfig AI 判题服务（OpenAI 兼容接口）
type GradingConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
}

// WatchConfig 观看上报的阈值参数，需与客户端计时器常量保持一致
type WatchConfig struct {
	MinSessionSeconds  int `mapstructure:"min_session_seconds"`   // 会话总时长下限，低于不计分
	MinDeltaSeconds    int `mapstructure:"min_delta_seconds"`     // 两次上报的最小增量
	SegmentCacheTTLMin int `mapstructure:"segment_cache_ttl_min"` // 分段缓存过期时间（分钟）
}

// QuizConfig 测验批次参数
type QuizConfig struct {
	BatchSize            int `mapstructure:"batch_size"`              // 每批题目数
	MaxQuestionsPerVideo int `mapstructure:"max_questions_per_video"` // 单视频题目上限
}

type EventConfig struct {
	RabbitURL string `mapstructure:"rabbit_url"`
	Exchange  string `mapstructure:"exchange"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("SKILLREEL")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Grading
	viper.BindEnv("grading.base_url", "GRADING_BASE_URL")
	viper.BindEnv("grading.api_key", "GRADING_API_KEY")
	viper.BindEnv("grading.model", "GRADING_MODEL")

	// Event
	viper.BindEnv("event.rabbit_url", "RABBITMQ_URI")
	viper.BindEnv("event.exchange", "RABBITMQ_EXCHANGE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Grading.RequestTimeout = cfg.Grading.RequestTimeout * time.Second
	if cfg.Grading.RequestTimeout <= 0 {
		cfg.Grading.RequestTimeout = 20 * time.Second
	}

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	// 观看阈值缺省值
	if cfg.Watch.MinSessionSeconds <= 0 {
		cfg.Watch.MinSessionSeconds = 30
	}
	if cfg.Watch.MinDeltaSeconds <= 0 {
		cfg.Watch.MinDeltaSeconds = 5
	}
	if cfg.Watch.SegmentCacheTTLMin <= 0 {
		cfg.Watch.SegmentCacheTTLMin = 10
	}
	if cfg.Quiz.BatchSize <= 0 {
		cfg.Quiz.BatchSize = 3
	}
	if cfg.Quiz.MaxQuestionsPerVideo <= 0 {
		cfg.Quiz.MaxQuestionsPerVideo = 6
	}

	return &cfg, nil
}
