package storage

import (
	"context"
	"fmt"

	"hiremind-go/internal/config"
	"hiremind-go/internal/logger"
)

// Storage 存储管理器，聚合关系库与文件存储
type Storage struct {
	// 候选人记录
	DB *SQLite

	// 简历原件
	Files FileStore
}

// NewStorage 创建存储管理器，文件后端由配置决定
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	db, err := NewSQLite(&cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("初始化SQLite失败: %w", err)
	}
	logger.Info().Str("path", cfg.SQLite.Path).Msg("SQLite初始化成功")

	var files FileStore
	switch cfg.FileStore.Backend {
	case "minio":
		files, err = NewMinIOFileStore(ctx, &cfg.FileStore.MinIO)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("初始化MinIO文件存储失败: %w", err)
		}
		logger.Info().Str("endpoint", cfg.FileStore.MinIO.Endpoint).Msg("MinIO文件存储初始化成功")
	case "local":
		files, err = NewLocalFileStore(cfg.FileStore.LocalDir)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("初始化本地文件存储失败: %w", err)
		}
		logger.Info().Str("dir", cfg.FileStore.LocalDir).Msg("本地文件存储初始化成功")
	default:
		db.Close()
		return nil, fmt.Errorf("未知的文件存储后端: %s", cfg.FileStore.Backend)
	}

	return &Storage{DB: db, Files: files}, nil
}

// Close 关闭所有存储连接
func (s *Storage) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
