package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFileMissing 指定文件名在文件存储中不存在
var ErrFileMissing = errors.New("文件不存在")

// FileStore 简历原件存储接口，按文件名寻址
// 批量重算依赖 Get 重新读取已保存的原始字节
type FileStore interface {
	// Save 保存文件内容，同名文件被覆盖
	Save(ctx context.Context, filename string, data []byte) error

	// Get 读取文件内容，不存在时返回 ErrFileMissing
	Get(ctx context.Context, filename string) ([]byte, error)
}

// LocalFileStore 本地目录文件存储，原型的默认后端
type LocalFileStore struct {
	dir string
}

// 确保LocalFileStore实现了FileStore接口
var _ FileStore = (*LocalFileStore)(nil)

// NewLocalFileStore 创建本地文件存储，目录不存在时创建
func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("上传目录不能为空")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalFileStore{dir: dir}, nil
}

// Dir 返回上传目录路径
func (l *LocalFileStore) Dir() string {
	return l.dir
}

// Save 将文件写入上传目录
func (l *LocalFileStore) Save(_ context.Context, filename string, data []byte) error {
	path := filepath.Join(l.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("保存文件 %s 失败: %w", filename, err)
	}
	return nil
}

// Get 从上传目录读取文件
func (l *LocalFileStore) Get(_ context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("读取文件 %s 失败: %w", filename, err)
	}
	return data, nil
}
