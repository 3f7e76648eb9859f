// Package config collects all process-wide settings into one immutable value
// loaded at startup and passed explicitly to the components that need it.
package config

import (
	"strconv"

	wbfconfig "github.com/wb-go/wbf/config"
)

const (
	BackendDisk  = "disk"
	BackendMinio = "minio"
)

type Config struct {
	AppPort string
	GinMode string

	PostgresDSN    string
	MigrationsPath string

	// AppURL is the external base address used to build public image URLs.
	AppURL       string
	UploadDir    string
	ProcessedDir string
	MaxFileSize  int64

	StorageBackend string
	MinioAddr      string
	MinioUser      string
	MinioPass      string
	MinioBucket    string
	MinioPublicURL string

	KafkaBroker string
	KafkaTopic  string
}

// Load reads envs (and ./.env if present) via wbf and fills in defaults for
// everything optional. Required values are validated in main, not here.
func Load() (*Config, error) {
	appConfig := wbfconfig.New()
	appConfig.EnableEnv("")
	if err := appConfig.LoadEnvFiles("./.env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		AppPort:        appConfig.GetString("APP_PORT"),
		GinMode:        appConfig.GetString("GIN_MODE"),
		PostgresDSN:    appConfig.GetString("POSTGRES_DSN"),
		MigrationsPath: appConfig.GetString("MIGRATIONS_PATH"),
		AppURL:         appConfig.GetString("APP_URL"),
		UploadDir:      appConfig.GetString("UPLOAD_DIR"),
		ProcessedDir:   appConfig.GetString("PROCESSED_DIR"),
		MaxFileSize:    parseSize(appConfig.GetString("MAX_FILE_SIZE")),
		StorageBackend: appConfig.GetString("STORAGE_BACKEND"),
		MinioAddr:      appConfig.GetString("MINIO_ADDR"),
		MinioUser:      appConfig.GetString("MINIO_USER"),
		MinioPass:      appConfig.GetString("MINIO_PASS"),
		MinioBucket:    appConfig.GetString("MINIO_BUCKET"),
		MinioPublicURL: appConfig.GetString("MINIO_PUBLIC_URL"),
		KafkaBroker:    appConfig.GetString("KAFKA_BROKER"),
		KafkaTopic:     appConfig.GetString("KAFKA_TOPIC"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "3000"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:" + cfg.AppPort
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.ProcessedDir == "" {
		cfg.ProcessedDir = "./uploads/processed"
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 << 20 // 5 MiB
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendDisk
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "images.created"
	}

	return cfg, nil
}

func parseSize(raw string) int64 {
	if raw == "" {
		return 0
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return val
}
