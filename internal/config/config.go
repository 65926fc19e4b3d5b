package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultUploadFolder = "photo-contest"

type Config struct {
	Port                     string
	DatabaseURL              string
	AutoMigrate              bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	StoreTimeoutSeconds      int
	CloudinaryCloudName      string
	CloudinaryAPIKey         string
	CloudinaryAPISecret      string
	UploadFolder             string
	LogLevel                 string
	GinMode                  string
	PhotosPerPage            int
	ContestsFile             string
	Env                      string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		StoreTimeoutSeconds:      5,
		UploadFolder:             defaultUploadFolder,
		LogLevel:                 "info",
		GinMode:                  "release",
		PhotosPerPage:            24,
		Env:                      "dev",
	}
}

// Load reads configuration from the environment. Unset or invalid numeric
// values keep their defaults.
func Load() Config {
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	def := Default()
	v.SetDefault("PORT", def.Port)
	v.SetDefault("AUTO_MIGRATE", def.AutoMigrate)
	v.SetDefault("DB_MAX_OPEN_CONNS", def.DBMaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", def.DBMaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME_SECONDS", def.DBConnMaxLifetimeSeconds)
	v.SetDefault("DB_CONN_MAX_IDLE_SECONDS", def.DBConnMaxIdleTimeSeconds)
	v.SetDefault("STORE_TIMEOUT_SECONDS", def.StoreTimeoutSeconds)
	v.SetDefault("UPLOAD_FOLDER", def.UploadFolder)
	v.SetDefault("LOG_LEVEL", def.LogLevel)
	v.SetDefault("GIN_MODE", def.GinMode)
	v.SetDefault("PHOTOS_PER_PAGE", def.PhotosPerPage)
	v.SetDefault("ENV", def.Env)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	cfg := Default()
	if raw := strings.TrimSpace(v.GetString("PORT")); raw != "" {
		cfg.Port = raw
	}
	cfg.DatabaseURL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	cfg.AutoMigrate = v.GetBool("AUTO_MIGRATE")
	cfg.DBMaxOpenConns = positiveOr(v.GetInt("DB_MAX_OPEN_CONNS"), cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = positiveOr(v.GetInt("DB_MAX_IDLE_CONNS"), cfg.DBMaxIdleConns)
	cfg.DBConnMaxLifetimeSeconds = positiveOr(v.GetInt("DB_CONN_MAX_LIFETIME_SECONDS"), cfg.DBConnMaxLifetimeSeconds)
	cfg.DBConnMaxIdleTimeSeconds = positiveOr(v.GetInt("DB_CONN_MAX_IDLE_SECONDS"), cfg.DBConnMaxIdleTimeSeconds)
	cfg.StoreTimeoutSeconds = positiveOr(v.GetInt("STORE_TIMEOUT_SECONDS"), cfg.StoreTimeoutSeconds)
	cfg.CloudinaryCloudName = strings.TrimSpace(v.GetString("CLOUDINARY_CLOUD_NAME"))
	cfg.CloudinaryAPIKey = strings.TrimSpace(v.GetString("CLOUDINARY_API_KEY"))
	cfg.CloudinaryAPISecret = strings.TrimSpace(v.GetString("CLOUDINARY_API_SECRET"))
	if raw := strings.Trim(strings.TrimSpace(v.GetString("UPLOAD_FOLDER")), "/"); raw != "" {
		cfg.UploadFolder = raw
	}
	if raw := strings.TrimSpace(v.GetString("LOG_LEVEL")); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw := strings.TrimSpace(v.GetString("GIN_MODE")); raw != "" {
		cfg.GinMode = raw
	}
	cfg.PhotosPerPage = positiveOr(v.GetInt("PHOTOS_PER_PAGE"), cfg.PhotosPerPage)
	cfg.ContestsFile = strings.TrimSpace(v.GetString("CONTESTS_FILE"))
	if raw := strings.TrimSpace(v.GetString("ENV")); raw != "" {
		cfg.Env = strings.ToLower(raw)
	}
	return cfg
}

func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutSeconds) * time.Second
}

func (c Config) UploadsConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Production reports whether ENV=prod, which pins static asset versions to process start.
func (c Config) Production() bool {
	return c.Env == "prod"
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
