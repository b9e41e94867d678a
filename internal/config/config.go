package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// ErrInvalidConfig возвращается, когда значения конфигурации невозможны
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Logs          LogsConfig          `toml:"logs"`
	Database      DatabaseConfig      `toml:"database"`
	Metrics       MetricsConfig       `toml:"metrics"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Auth          AuthConfig          `toml:"auth"`
	CORS          CORSConfig          `toml:"cors"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Reminders     RemindersConfig     `toml:"reminders"`
	Notifications NotificationsConfig `toml:"notifications"`
	SMTP          SMTPConfig          `toml:"smtp"`
	SMS           SMSConfig           `toml:"sms"`
	Events        EventsConfig        `toml:"events"`
	Seed          SeedConfig          `toml:"seed"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Timezone        string `toml:"timezone"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessHoursConfig часы по умолчанию, если в БД нет ни глобальной, ни персональной записи
type BusinessHoursConfig struct {
	StartHour           int  `toml:"start_hour"`
	EndHour             int  `toml:"end_hour"`
	BreakStartHour      int  `toml:"break_start_hour"`
	BreakEndHour        int  `toml:"break_end_hour"`
	ExcludeBreakOverlap bool `toml:"exclude_break_overlap"`
}

// ToDomain конвертирует секцию в domain модель
func (c BusinessHoursConfig) ToDomain() domain.BusinessHours {
	return domain.BusinessHours{
		Start:               c.StartHour,
		End:                 c.EndHour,
		BreakStart:          c.BreakStartHour,
		BreakEnd:            c.BreakEndHour,
		ExcludeBreakOverlap: c.ExcludeBreakOverlap,
	}
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	AdminEmail        string `toml:"admin_email"`
	AdminPassword     string `toml:"admin_password"`
	AdminPasswordHash string `toml:"admin_password_hash"`
}

type CORSConfig struct {
	AllowedOrigins   []string `toml:"allowed_origins"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	KeyPrefix     string `toml:"key_prefix"`
}

// Window длительность окна
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// RemindersConfig напоминания через asynq. Требуют redis.enabled
type RemindersConfig struct {
	Enabled     bool   `toml:"enabled"`
	LeadMinutes int    `toml:"lead_minutes"`
	Queue       string `toml:"queue"`
	Concurrency int    `toml:"concurrency"`
}

type NotificationsConfig struct {
	EmailEnabled       bool   `toml:"email_enabled"`
	SMSEnabled         bool   `toml:"sms_enabled"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	DefaultCountryCode string `toml:"default_country_code"`
	Currency           string `toml:"currency"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type SMSConfig struct {
	URL            string `toml:"url"`
	APIToken       string `toml:"api_token"`
	From           string `toml:"from"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type SeedConfig struct {
	DefaultServices bool `toml:"default_services"`
}

// Load читает config.toml, подгружает .env (если есть) и применяет переменные окружения
func Load(path string) (*Config, error) {
	// Отсутствие .env не ошибка
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
			Timezone:        "Local",
		},
		Logs:     LogsConfig{Level: "info", File: "logs/app.log"},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, SSLMode: "disable", MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 300},
		Metrics:  MetricsConfig{Path: "/metrics", ServiceName: "appointment"},
		BusinessHours: BusinessHoursConfig{
			StartHour:      domain.DefaultOpenHour,
			EndHour:        domain.DefaultCloseHour,
			BreakStartHour: domain.DefaultBreakStartHour,
			BreakEndHour:   domain.DefaultBreakEndHour,
		},
		Auth:      AuthConfig{TokenTTLHours: 24},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 300},
		Redis:     RedisConfig{Addr: "localhost:6379"},
		RateLimit: RateLimitConfig{Requests: 100, WindowSeconds: 900, KeyPrefix: "ratelimit"},
		Reminders: RemindersConfig{LeadMinutes: 60, Queue: "reminders", Concurrency: 5},
		Notifications: NotificationsConfig{
			TimeoutSeconds:     10,
			DefaultCountryCode: "+91",
			Currency:           "$",
		},
		SMTP:   SMTPConfig{Port: 587, From: "noreply@appointment.com"},
		SMS:    SMSConfig{TimeoutSeconds: 10},
		Events: EventsConfig{Exchange: "appointment.events"},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
		}
		*dst = n
		return nil
	}

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&c.Auth.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMS.APIToken, "SMS_API_TOKEN")
	setString(&c.Events.URL, "RABBITMQ_URL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

// Validate отклоняет невозможные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be 1-65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}

	if err := c.BusinessHours.ToDomain().Validate(); err != nil {
		return fmt.Errorf("%w: business_hours: %v", ErrInvalidConfig, err)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET) is required", ErrInvalidConfig)
	}

	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit.requests and rate_limit.window_seconds must be positive", ErrInvalidConfig)
	}

	if c.Reminders.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("%w: reminders require redis.enabled", ErrInvalidConfig)
		}
		if c.Reminders.LeadMinutes <= 0 || c.Reminders.Concurrency <= 0 {
			return fmt.Errorf("%w: reminders.lead_minutes and reminders.concurrency must be positive", ErrInvalidConfig)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}

// Location часовой пояс для расчета времени напоминаний
func (c ServerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
