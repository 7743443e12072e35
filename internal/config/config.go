package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
		FullName string `env:"FULL_NAME" envDefault:"管理员"`
		Email    string `env:"EMAIL,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"336"` // 14 天，单位为小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Report struct {
		Queue      string   `env:"QUEUE" envDefault:"simulation_report_queue"`
		Recipients []string `env:"RECIPIENTS" envSeparator:","`
	} `envPrefix:"REPORT_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD,required"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"3"`
	} `envPrefix:"REDIS_"`
	Cache struct {
		SimulationRunTTL int `env:"SIMULATION_RUN_TTL" envDefault:"3600"` // 单位为秒
	} `envPrefix:"CACHE_"`
	Schedule struct {
		Enabled bool   `env:"ENABLED" envDefault:"false"`
		Spec    string `env:"SPEC" envDefault:"0 0 6 * * *"` // 带秒的 cron 表达式
		Timeout int    `env:"TIMEOUT" envDefault:"60"`
	} `envPrefix:"SCHEDULE_"`
	Simulation struct {
		DefaultAvailableDrivers int     `env:"DEFAULT_AVAILABLE_DRIVERS" envDefault:"5"`
		DefaultRouteStartTime   string  `env:"DEFAULT_ROUTE_START_TIME" envDefault:"09:00"`
		DefaultMaxHours         float64 `env:"DEFAULT_MAX_HOURS" envDefault:"8"`
		SaturationPolicy        string  `env:"SATURATION_POLICY" envDefault:"skip"`
		HistoryLimit            int     `env:"HISTORY_LIMIT" envDefault:"10"`
	} `envPrefix:"SIMULATION_"`
	Seed struct {
		Orders int `env:"ORDERS" envDefault:"50"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	// 本地开发时从 .env 读取，线上环境直接使用环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
