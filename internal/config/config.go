package config

import (
	"fmt"
	"log"
	"time"

	"github.com/atxtraffic/camera-proxy-go/internal/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	ServerPort int `validate:"gt=0,lte=65535"`

	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	RedisTLSSkipVerify bool

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ArchiveBucket  string `validate:"required"`

	OriginBaseURL     string `validate:"url"`
	FallbackImagePath string `validate:"required"`

	// SigningSecret may be empty; verification then fails closed.
	SigningSecret string

	CacheTTL       time.Duration `validate:"gt=0"`
	CacheTTLCamera time.Duration `validate:"gt=0"`

	DetectorURL   string `validate:"omitempty,url"`
	DetectorToken string

	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("REDIS_TLS", true)
	viper.SetDefault("REDIS_TLS_SKIP_VERIFY", false)
	viper.SetDefault("ARCHIVE_BUCKET", "atx-traffic-cameras")
	viper.SetDefault("ORIGIN_BASE_URL", "https://cctv.austinmobility.io")
	viper.SetDefault("FALLBACK_IMAGE_PATH", "assets/fallback.jpg")
	viper.SetDefault("CACHE_TTL", 60)
	viper.SetDefault("CACHE_TTL_CAMERA", 300)
	viper.SetDefault("MARIADB_MAX_OPEN_CONN", 10)
	viper.SetDefault("MARIADB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("MARIADB_CONN_MAX_LIFETIME", 300)

	cfg := &Settings{
		ServerPort:         viper.GetInt("SERVER_PORT"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RedisTLS:           viper.GetBool("REDIS_TLS"),
		RedisTLSSkipVerify: viper.GetBool("REDIS_TLS_SKIP_VERIFY"),
		MinioEndpoint:      viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:     viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:     viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:        viper.GetBool("MINIO_USE_SSL"),
		ArchiveBucket:      viper.GetString("ARCHIVE_BUCKET"),
		OriginBaseURL:      viper.GetString("ORIGIN_BASE_URL"),
		FallbackImagePath:  viper.GetString("FALLBACK_IMAGE_PATH"),
		SigningSecret:      viper.GetString("SIGNING_SECRET"),
		CacheTTL:           time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
		CacheTTLCamera:     time.Duration(viper.GetInt("CACHE_TTL_CAMERA")) * time.Second,
		DetectorURL:        viper.GetString("DETECTOR_URL"),
		DetectorToken:      viper.GetString("DETECTOR_TOKEN"),
		MariaDBDSN:         viper.GetString("MARIADB_DSN"),
		MaxOpenConns:       viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:       viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:    time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
	}

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
