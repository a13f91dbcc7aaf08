package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/iiviie/gearheads/internal/geo"
	"github.com/iiviie/gearheads/internal/log"
	"github.com/iiviie/gearheads/internal/storage"
	"github.com/iiviie/gearheads/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Map      MapConfig      `mapstructure:"map"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	// Type is one of sqlite, redis, postgres, mongo, memory or none
	Type          string        `mapstructure:"type"`
	Path          string        `mapstructure:"path"`
	Key           string        `mapstructure:"key"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	PostgresDSN   string        `mapstructure:"postgres_dsn"`
	MongoURI      string        `mapstructure:"mongo_uri"`
	MongoDatabase string        `mapstructure:"mongo_database"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// GeocoderConfig holds place-search settings
type GeocoderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Language  string        `mapstructure:"language"`
	Limit     int           `mapstructure:"limit"`
	Debounce  time.Duration `mapstructure:"debounce"`
	MinQuery  int           `mapstructure:"min_query"`
	UserAgent string        `mapstructure:"user_agent"`
}

// MapConfig positions the meetup map when there are no meetups
type MapConfig struct {
	CenterLat float64 `mapstructure:"center_lat"`
	CenterLng float64 `mapstructure:"center_lng"`
	Zoom      int     `mapstructure:"zoom"`
}

// LoadConfig loads configuration from .env, config file and environment
// variables, in increasing order of precedence
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Environment variable bindings
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")
	v.BindEnv("storage.redis_addr", "REDIS_ADDR")
	v.BindEnv("storage.postgres_dsn", "DATABASE_URL")
	v.BindEnv("storage.mongo_uri", "MONGO_URI")

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Info.Println("No config file found, using defaults and environment variables")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "./data/gearheads.db")
	v.SetDefault("storage.key", store.DefaultKey)
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo_database", "gearheads")
	v.SetDefault("storage.timeout", storage.DefaultTimeout)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("geocoder.base_url", geo.DefaultBaseURL)
	v.SetDefault("geocoder.language", "en")
	v.SetDefault("geocoder.limit", 5)
	v.SetDefault("geocoder.debounce", geo.DefaultDebounce)
	v.SetDefault("geocoder.min_query", geo.DefaultMinQueryLen)
	v.SetDefault("geocoder.user_agent", "gearheads/1.0 (local)")
	v.SetDefault("map.center_lat", geo.DefaultCenter.Lat)
	v.SetDefault("map.center_lng", geo.DefaultCenter.Lng)
	v.SetDefault("map.zoom", geo.DefaultZoom)
}
