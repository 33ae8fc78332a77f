// Package config 從環境變數載入 ledgerd 設定（前綴 LEDGER_）
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config 應用程式設定
type Config struct {
	// --- Database ---
	DBDriver       string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN          string `envconfig:"DB_DSN" default:"file:momentum.db?_busy_timeout=5000"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBLogLevel     string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	// --- Logging ---
	LogMode string `envconfig:"LOG_MODE" default:"dev"`

	// --- 日界線 ---
	Timezone string         `envconfig:"TIMEZONE" default:"UTC"`
	Location *time.Location `ignored:"true"` // 由 Timezone 解析

	// --- Progress ---
	StreakLookbackDays int    `envconfig:"STREAK_LOOKBACK_DAYS" default:"365"`
	WeeklyThreshold    int    `envconfig:"WEEKLY_THRESHOLD" default:"5"`
	WeeklyTarget       int    `envconfig:"WEEKLY_TARGET" default:"7"`
	WeeklyBonusTask    string `envconfig:"WEEKLY_BONUS_TASK" default:"Weekly momentum bonus"`
	ReferralTask       string `envconfig:"REFERRAL_TASK" default:"Invite someone to Corovel"`

	// --- Catalog ---
	CatalogFile string `envconfig:"CATALOG_FILE"` // 空值使用內建目錄

	// --- Audit ---
	AuditSchedule    string `envconfig:"AUDIT_SCHEDULE" default:"@hourly"` // 空值停用排程
	AuditConcurrency int    `envconfig:"AUDIT_CONCURRENCY" default:"4"`

	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"5s"`
}

// Load 讀取環境變數並驗證
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LEDGER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查設定並解析時區
func (c *Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case "postgres", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("LEDGER_DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("LEDGER_DB_DSN is required")
	}
	if c.DBMaxOpenConns < 0 {
		return fmt.Errorf("LEDGER_DB_MAX_OPEN_CONNS must be >= 0")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("LEDGER_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.StreakLookbackDays <= 0 {
		return fmt.Errorf("LEDGER_STREAK_LOOKBACK_DAYS must be > 0")
	}
	if c.WeeklyTarget <= 0 {
		return fmt.Errorf("LEDGER_WEEKLY_TARGET must be > 0")
	}
	if c.WeeklyThreshold <= 0 || c.WeeklyThreshold > c.WeeklyTarget {
		return fmt.Errorf("LEDGER_WEEKLY_THRESHOLD must be in 1..%d", c.WeeklyTarget)
	}
	if strings.TrimSpace(c.WeeklyBonusTask) == "" || strings.TrimSpace(c.ReferralTask) == "" {
		return fmt.Errorf("LEDGER_WEEKLY_BONUS_TASK and LEDGER_REFERRAL_TASK must not be blank")
	}

	if c.AuditSchedule != "" {
		if _, err := cron.ParseStandard(c.AuditSchedule); err != nil {
			return fmt.Errorf("LEDGER_AUDIT_SCHEDULE %q: %w", c.AuditSchedule, err)
		}
	}
	if c.AuditConcurrency <= 0 {
		return fmt.Errorf("LEDGER_AUDIT_CONCURRENCY must be > 0")
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("LEDGER_OPERATION_TIMEOUT must be >= 0")
	}
	return nil
}
