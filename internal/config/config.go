package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Routing   RoutingConfig
	Animation AnimationConfig
	Delivery  DeliveryConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RouteCacheTTL time.Duration
	CartCacheTTL  time.Duration
}

type LogConfig struct {
	Level string
}

// RoutingConfig - настройки OSRM-совместимого сервиса маршрутизации
type RoutingConfig struct {
	Provider       string // osrm | mapbox
	BaseURL        string
	Profile        string
	AccessToken    string // только для mapbox
	RequestTimeout int    // секунды
}

// AnimationConfig - параметры анимации грузовика вдоль маршрута
type AnimationConfig struct {
	FrameInterval time.Duration
	RouteDuration time.Duration
	TrailSize     int
	// ViewIdleTTL - сколько карта живет без обращений
	ViewIdleTTL time.Duration
}

// DeliveryConfig - параметры расчета графика доставки
type DeliveryConfig struct {
	ProcessingDays int
	BufferDays     int
	OriginName     string // отправитель в подписи маркера origin
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	// .env опционален: в контейнере все приходит через окружение
	if _, err := os.Stat(".env"); err == nil {
		viper.SetConfigFile(".env")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RouteCacheTTL: time.Duration(viper.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			CartCacheTTL:  time.Duration(viper.GetInt("CART_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Routing: RoutingConfig{
			Provider:       viper.GetString("ROUTING_PROVIDER"),
			BaseURL:        viper.GetString("ROUTING_BASE_URL"),
			Profile:        viper.GetString("ROUTING_PROFILE"),
			AccessToken:    viper.GetString("ROUTING_ACCESS_TOKEN"),
			RequestTimeout: viper.GetInt("ROUTING_TIMEOUT"),
		},
		Animation: AnimationConfig{
			FrameInterval: time.Duration(viper.GetInt("ANIMATION_FRAME_INTERVAL")) * time.Millisecond,
			RouteDuration: time.Duration(viper.GetInt("ANIMATION_ROUTE_DURATION")) * time.Second,
			TrailSize:     viper.GetInt("ANIMATION_TRAIL_SIZE"),
			ViewIdleTTL:   time.Duration(viper.GetInt("ANIMATION_VIEW_IDLE_TTL")) * time.Second,
		},
		Delivery: DeliveryConfig{
			ProcessingDays: viper.GetInt("DELIVERY_PROCESSING_DAYS"),
			BufferDays:     viper.GetInt("DELIVERY_BUFFER_DAYS"),
			OriginName:     viper.GetString("DELIVERY_ORIGIN_NAME"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Cache.RouteCacheTTL == 0 {
		c.Cache.RouteCacheTTL = 24 * time.Hour
	}
	if c.Cache.CartCacheTTL == 0 {
		c.Cache.CartCacheTTL = 30 * 24 * time.Hour
	}
	if c.Routing.Provider == "" {
		c.Routing.Provider = RoutingProviderOSRM
	}
	if c.Routing.BaseURL == "" {
		c.Routing.BaseURL = defaultRoutingURL(c.Routing.Provider)
	}
	if c.Routing.Profile == "" {
		c.Routing.Profile = "driving"
	}
	if c.Routing.RequestTimeout == 0 {
		c.Routing.RequestTimeout = 10
	}
	if c.Animation.FrameInterval == 0 {
		c.Animation.FrameInterval = 16 * time.Millisecond
	}
	if c.Animation.RouteDuration == 0 {
		c.Animation.RouteDuration = 30 * time.Second
	}
	if c.Animation.TrailSize == 0 {
		c.Animation.TrailSize = 20
	}
	if c.Animation.ViewIdleTTL == 0 {
		c.Animation.ViewIdleTTL = 30 * time.Minute
	}
	if c.Delivery.ProcessingDays == 0 {
		c.Delivery.ProcessingDays = 1
	}
	if c.Delivery.BufferDays == 0 {
		c.Delivery.BufferDays = 1
	}
	if c.Delivery.OriginName == "" {
		c.Delivery.OriginName = "KRISH CARBON PVT LTD"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "delivery-schedule-workers"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
}

const (
	RoutingProviderOSRM   = "osrm"
	RoutingProviderMapbox = "mapbox"
)

func defaultRoutingURL(provider string) string {
	if provider == RoutingProviderMapbox {
		return "https://api.mapbox.com"
	}
	return "https://router.project-osrm.org"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
