package storage

import (
	"fmt"
	"time"

	"hiremind-go/internal/config"
	appLogger "hiremind-go/internal/logger"
	"hiremind-go/internal/storage/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite 提供候选人记录的关系存储
type SQLite struct {
	db  *gorm.DB
	cfg *config.SQLiteConfig
}

// candidateSchemaV1 初版表结构，后续列由版本化迁移步骤补齐
// 必须与 models.Candidate 指向同一张表
type candidateSchemaV1 struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	UID        string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_candidates_uid"`
	Name       string  `gorm:"type:varchar(255)"`
	Skills     string  `gorm:"type:text"`
	MatchScore float64 `gorm:"index:idx_candidates_match_score"`
	Resume     string  `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (candidateSchemaV1) TableName() string {
	return "candidates"
}

// NewSQLite 打开数据库并执行迁移
func NewSQLite(cfg *config.SQLiteConfig) (*SQLite, error) {
	if cfg == nil {
		return nil, fmt.Errorf("SQLite配置不能为空")
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d", cfg.Path, cfg.BusyTimeoutMS)

	// 配置GORM日志级别
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("打开SQLite失败: %w", err)
	}

	s := &SQLite{db: db, cfg: cfg}

	// 注册OpenTelemetry追踪插件
	if err := db.Use(NewGormTracingPlugin(cfg.Path)); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := s.migrateSchema(); err != nil {
		return nil, fmt.Errorf("迁移数据库结构失败: %w", err)
	}

	return s, nil
}

// migrateSchema 两段式迁移：
// 1. 表不存在时按初版结构建表
// 2. 版本化的补列步骤——逐个检查后加的可选列，缺失则以默认值补上
// 补列步骤是幂等的，重复执行不产生任何变更
func (s *SQLite) migrateSchema() error {
	m := s.db.Migrator()

	if !m.HasTable(&models.Candidate{}) {
		if err := m.CreateTable(&candidateSchemaV1{}); err != nil {
			return fmt.Errorf("创建candidates表失败: %w", err)
		}
		appLogger.Info().Msg("已创建candidates初版表结构")
	}

	// 后续版本新增的列
	ensureColumns := []string{"JD", "Excerpt", "Overlap", "OverlapTokens"}
	for _, field := range ensureColumns {
		if m.HasColumn(&models.Candidate{}, field) {
			continue
		}
		if err := m.AddColumn(&models.Candidate{}, field); err != nil {
			return fmt.Errorf("补齐列 %s 失败: %w", field, err)
		}
		appLogger.Info().Str("column", field).Msg("candidates表已补齐列")
	}

	return nil
}

// DB 返回GORM数据库连接实例
func (s *SQLite) DB() *gorm.DB {
	return s.db
}

// Close 关闭数据库连接
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}
