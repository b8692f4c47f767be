package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"hiremind-go/internal/config"
	"hiremind-go/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOFileStore 对象存储后端的简历原件存储
// 对象键即文件名，与本地后端保持同一寻址约定
type MinIOFileStore struct {
	client *minio.Client
	bucket string
}

// 确保MinIOFileStore实现了FileStore接口
var _ FileStore = (*MinIOFileStore)(nil)

// NewMinIOFileStore 创建MinIO客户端并确保存储桶存在
func NewMinIOFileStore(ctx context.Context, cfg *config.MinIOConfig) (*MinIOFileStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIOFileStore{client: client, bucket: cfg.BucketName}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶 %s 失败: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Location}); err != nil {
			return nil, fmt.Errorf("创建存储桶 %s 失败: %w", cfg.BucketName, err)
		}
		logger.Info().Str("bucket", cfg.BucketName).Msg("已创建简历存储桶")
	}

	return m, nil
}

// Save 上传文件到存储桶
func (m *MinIOFileStore) Save(ctx context.Context, filename string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, filename,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("上传文件 %s 到MinIO失败: %w", filename, err)
	}
	return nil
}

// Get 从存储桶下载文件
func (m *MinIOFileStore) Get(ctx context.Context, filename string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s 失败: %w", filename, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject是惰性的，对象不存在要到读取时才暴露
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("读取对象 %s 失败: %w", filename, err)
	}
	return data, nil
}
