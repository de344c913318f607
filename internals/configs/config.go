package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var (
	Port                  string
	StorageDriver         string
	AppTimezone           string
	CorsOrigins           []string
	AttendanceSummaryCron string
	SeedEmployeesFile     string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] .env not found, using system environment")
		} else {
			log.Println("[CONFIG] .env loaded")
		}
	} else {
		log.Println("[CONFIG] running on Railway, using system environment")
	}

	Port = GetEnv("PORT", "3000")
	StorageDriver = strings.ToLower(GetEnv("STORAGE_DRIVER", StorageDriverPostgres))
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Jakarta")
	CorsOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"))
	AttendanceSummaryCron = GetEnv("ATTENDANCE_SUMMARY_CRON", "5 0 * * *")
	SeedEmployeesFile = GetEnv("SEED_EMPLOYEES_FILE", "")

	switch StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		log.Printf("[CONFIG] unknown STORAGE_DRIVER=%q, falling back to %s", StorageDriver, StorageDriverPostgres)
		StorageDriver = StorageDriverPostgres
	}

	if StorageDriver == StorageDriverPostgres && GetEnv("DB_HOST") == "" {
		log.Println("[CONFIG] DB_HOST is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Location resolves APP_TIMEZONE; attendance "today" is evaluated in it.
func Location() *time.Location {
	if tz := strings.TrimSpace(AppTimezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
		log.Printf("[CONFIG] invalid APP_TIMEZONE=%q, using UTC", tz)
	}
	return time.UTC
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if strings.EqualFold(GetEnv("DB_LOG_QUERIES"), "true") {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
