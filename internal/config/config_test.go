package config

import (
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "SERVER_PORT", "STORAGE_DRIVER", "CORS_ALLOWED_ORIGINS", "DB_LOG_LEVEL", "AUDIT_QUEUE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
	if cfg.StorageDriver != StorageDriverPostgres || cfg.IsProduction() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBLogLevel != gormlogger.Warn || cfg.AuditQueueSize != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBConnMaxLifetime != 30*time.Minute {
		t.Fatalf("lifetime = %s", cfg.DBConnMaxLifetime)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("AUDIT_QUEUE_SIZE", "not-a-number")

	cfg := Load()
	if !cfg.IsProduction() || cfg.Addr() != ":9000" || cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.DBLogLevel != gormlogger.Silent {
		t.Fatalf("db log level = %v", cfg.DBLogLevel)
	}
	if cfg.AuditQueueSize != 100 {
		t.Fatalf("bad int should fall back, got %d", cfg.AuditQueueSize)
	}
}
