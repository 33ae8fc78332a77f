// Package app 組裝 ledgerd 的所有元件
package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	appcatalog "github.com/jackyeh168/momentum/src/internal/application/catalog"
	"github.com/jackyeh168/momentum/src/internal/application/completion"
	apppoints "github.com/jackyeh168/momentum/src/internal/application/points"
	appprogress "github.com/jackyeh168/momentum/src/internal/application/progress"
	"github.com/jackyeh168/momentum/src/internal/config"
	"github.com/jackyeh168/momentum/src/internal/domain/progress"
	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/catalog"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/events"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/jobs"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	pointstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/points"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/schema"
	taskstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/task"
	"github.com/jackyeh168/momentum/src/internal/logger"
)

// Repos 倉儲集合
type Repos struct {
	Tasks       *taskstore.TaskRepositoryImpl
	Accounts    *pointstore.AccountRepositoryImpl
	Ledger      *pointstore.LedgerRepositoryImpl
	Completions *pointstore.CompletionRepositoryImpl
}

// Services Use Case 集合
type Services struct {
	OpenAccount   *apppoints.OpenAccountUseCase
	GetBalance    *apppoints.GetBalanceUseCase
	AwardPoints   *apppoints.AwardPointsUseCase
	GetHistory    *apppoints.GetHistoryUseCase
	AuditBalances *apppoints.AuditBalancesUseCase
	Leaderboard   *apppoints.LeaderboardUseCase
	SeedCatalog   *appcatalog.SeedCatalogUseCase
	Catalog       *appcatalog.QueryService
	Progress      *appprogress.Service
	Engine        *completion.Engine
}

// App 應用程式
type App struct {
	Log       *logger.Logger
	DB        *gorm.DB
	Cfg       *config.Config
	Repos     Repos
	Services  Services
	Publisher *events.LogPublisher
	Scheduler *jobs.Scheduler
}

// New 開啟資料庫、遷移並組裝所有元件
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := persistence.Open(persistence.DatabaseConfig{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		LogLevel:     cfg.DBLogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := schema.Migrate(db); err != nil {
		_ = persistence.Close(db)
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clock := shared.SystemClock{}
	publisher := events.NewLogPublisher(log)
	repos := wireRepos(db, log)
	services := wireServices(cfg, db, repos, publisher, clock, log)

	return &App{
		Log:       log,
		DB:        db,
		Cfg:       cfg,
		Repos:     repos,
		Services:  services,
		Publisher: publisher,
		Scheduler: jobs.NewScheduler(services.AuditBalances, cfg.Location, cfg.OperationTimeout*10, log),
	}, nil
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tasks:       taskstore.NewTaskRepository(db),
		Accounts:    pointstore.NewAccountRepository(db),
		Ledger:      pointstore.NewLedgerRepository(db),
		Completions: pointstore.NewCompletionRepository(db),
	}
}

func wireServices(
	cfg *config.Config,
	db *gorm.DB,
	repos Repos,
	publisher shared.EventPublisher,
	clock shared.Clock,
	log *logger.Logger,
) Services {
	log.Info("Wiring services...")
	txManager := persistence.NewGORMTransactionManager(db)

	progressSvc := appprogress.NewService(
		repos.Ledger,
		txManager,
		progress.NewCalendar(cfg.Location),
		clock,
		appprogress.Options{
			StreakLookbackDays: cfg.StreakLookbackDays,
			WeeklyTarget:       cfg.WeeklyTarget,
		},
	)

	engine := completion.NewEngine(
		completion.Repositories{
			Tasks:       repos.Tasks,
			Accounts:    repos.Accounts,
			Completions: repos.Completions,
			Ledger:      repos.Ledger,
		},
		progressSvc,
		txManager,
		publisher,
		clock,
		completion.Options{
			WeeklyBonusTask:  cfg.WeeklyBonusTask,
			ReferralTask:     cfg.ReferralTask,
			WeeklyThreshold:  cfg.WeeklyThreshold,
			OperationTimeout: cfg.OperationTimeout,
		},
		log,
	)

	return Services{
		OpenAccount:   apppoints.NewOpenAccountUseCase(repos.Accounts, txManager, publisher, clock, log),
		GetBalance:    apppoints.NewGetBalanceUseCase(repos.Accounts, txManager),
		AwardPoints:   apppoints.NewAwardPointsUseCase(repos.Accounts, repos.Ledger, txManager, publisher, clock, log),
		GetHistory:    apppoints.NewGetHistoryUseCase(repos.Ledger, txManager),
		AuditBalances: apppoints.NewAuditBalancesUseCase(repos.Accounts, repos.Ledger, txManager, cfg.AuditConcurrency, log),
		Leaderboard:   apppoints.NewLeaderboardUseCase(repos.Accounts, txManager),
		SeedCatalog:   appcatalog.NewSeedCatalogUseCase(repos.Tasks, txManager, clock, log),
		Catalog:       appcatalog.NewQueryService(repos.Tasks, txManager),
		Progress:      progressSvc,
		Engine:        engine,
	}
}

// Bootstrap 啟動時 seed 目錄並執行一次稽核
func (a *App) Bootstrap(ctx context.Context) error {
	defs, err := catalog.LoadFile(a.Cfg.CatalogFile)
	if err != nil {
		return err
	}
	if _, err := a.Services.SeedCatalog.Execute(ctx, defs); err != nil {
		return err
	}
	a.Scheduler.RunAudit(ctx)
	return nil
}

// Start 啟動背景排程
func (a *App) Start(ctx context.Context) error {
	if err := a.Scheduler.ScheduleAudit(ctx, a.Cfg.AuditSchedule); err != nil {
		return err
	}
	a.Scheduler.Start()
	return nil
}

// Close 停止排程並關閉資料庫
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.DB != nil {
		if err := persistence.Close(a.DB); err != nil {
			a.Log.Warn("failed to close database", "error", err)
		}
	}
	a.Log.Sync()
}
