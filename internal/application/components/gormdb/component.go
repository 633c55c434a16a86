package gormdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

// GormComponent 管理多个命名数据源，DAO 在 Start 时通过 GetDB 取得连接。
type GormComponent struct {
	*core.BaseComponent
	cfg *Config
	log logger.Interface

	mu  sync.RWMutex
	dbs map[string]*gorm.DB
}

func NewGormComponent(cfg *Config, deps ...string) *GormComponent {
	return &GormComponent{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_GORM, deps...),
		cfg:           cfg,
		log:           newGormLogger(cfg),
		dbs:           make(map[string]*gorm.DB),
	}
}

func (c *GormComponent) Start(ctx context.Context) error {
	if len(c.cfg.DataSources) == 0 {
		return fmt.Errorf("gorm: no data_sources configured")
	}
	for _, name := range sortedKeys(c.cfg.DataSources) {
		ds := c.cfg.DataSources[name]
		if ds == nil {
			c.closeAll(ctx)
			return fmt.Errorf("datasource %s config is nil", name)
		}
		db, err := c.open(ctx, name, ds)
		if err != nil {
			c.closeAll(ctx)
			return err
		}
		c.mu.Lock()
		c.dbs[name] = db
		c.mu.Unlock()
		logging.Info(ctx, "[gorm] datasource initialized", zap.String("datasource", name), zap.String("driver", ds.Driver))
	}
	return c.BaseComponent.Start(ctx)
}

func (c *GormComponent) open(ctx context.Context, name string, ds *DataSourceConfig) (*gorm.DB, error) {
	dial, err := dialector(ds)
	if err != nil {
		return nil, fmt.Errorf("datasource %s: %w", name, err)
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 c.log,
		SkipDefaultTransaction: ds.SkipDefaultTransaction,
		PrepareStmt:            ds.PrepareStmt,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm db %s failed: %w", name, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB for %s failed: %w", name, err)
	}
	configurePool(sqlDB, ds)

	if ds.PingOnStart {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := sqlDB.PingContext(pingCtx)
		cancel()
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping db %s failed: %w", name, err)
		}
	}

	if ds.MigrateEnabled {
		if strings.TrimSpace(ds.MigrateDir) == "" {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("datasource %s migrate_enabled=true but migrate_dir empty", name)
		}
		start := time.Now()
		n, err := runMigrations(ctx, sqlDB, ds.MigrateDir)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("datasource %s migrations failed: %w", name, err)
		}
		logging.Info(ctx, "[gorm] migrations applied",
			zap.String("datasource", name), zap.Int("files", n), zap.Duration("dur", time.Since(start)))
	}
	return db, nil
}

func configurePool(sqlDB *sql.DB, ds *DataSourceConfig) {
	maxOpen, maxIdle, life := 50, 10, 60*time.Minute
	if ds.MaxOpenConns > 0 {
		maxOpen = ds.MaxOpenConns
	}
	if ds.MaxIdleConns > 0 {
		maxIdle = ds.MaxIdleConns
	}
	if ds.ConnMaxLife > 0 {
		life = ds.ConnMaxLife
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(life)
	if ds.ConnMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(ds.ConnMaxIdle)
	}
}

func (c *GormComponent) Stop(ctx context.Context) error {
	defer c.BaseComponent.Stop(ctx)
	c.closeAll(ctx)
	return nil
}

func (c *GormComponent) closeAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, db := range c.dbs {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		logging.Info(ctx, "[gorm] datasource closed", zap.String("datasource", name))
	}
	c.dbs = make(map[string]*gorm.DB)
}

func (c *GormComponent) HealthCheck() error {
	if err := c.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, db := range c.dbs {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("datasource %s get sql.DB failed: %w", name, err)
		}
		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("datasource %s ping failed: %w", name, err)
		}
	}
	return nil
}

func (c *GormComponent) GetDB(name string) (*gorm.DB, error) {
	c.mu.RLock()
	db, ok := c.dbs[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gorm datasource %s not found", name)
	}
	return db, nil
}

func sortedKeys(m map[string]*DataSourceConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
