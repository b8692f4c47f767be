package storage

import (
	"context"
	"errors"
	"fmt"

	"hiremind-go/internal/storage/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCandidateNotFound 指定指纹的候选人记录不存在
var ErrCandidateNotFound = errors.New("候选人记录不存在")

// candidateDerivedColumns 重新上传同一份文件时被完整覆盖的派生列
var candidateDerivedColumns = []string{
	"name", "skills", "match_score", "resume",
	"jd", "excerpt", "overlap", "overlap_tokens", "updated_at",
}

// UpsertCandidate 按指纹插入或覆盖候选人记录
// 存在性检查与写入在同一条 ON CONFLICT 语句内完成，
// 同一指纹的快速重复提交不会产生重复行
func (s *SQLite) UpsertCandidate(ctx context.Context, candidate *models.Candidate) error {
	ctx, span := sqliteTracer.Start(ctx, "SQLite.UpsertCandidate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("candidate.uid", candidate.UID),
			attribute.Float64("candidate.match_score", candidate.MatchScore),
		))
	defer span.End()

	err := s.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}},
			DoUpdates: clause.AssignmentColumns(candidateDerivedColumns),
		}).Create(candidate).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("写入候选人记录失败: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetCandidate 按指纹查询记录，不存在时返回 ErrCandidateNotFound
func (s *SQLite) GetCandidate(ctx context.Context, uid string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("查询候选人记录失败: %w", err)
	}
	return &candidate, nil
}

// ListCandidates 按匹配分降序返回全部记录
// 同分记录按主键升序排列，保证插入顺序稳定
func (s *SQLite) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := s.db.WithContext(ctx).
		Order("match_score DESC").
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("查询候选人列表失败: %w", err)
	}
	return candidates, nil
}

// UpdateCandidateDerived 批量重算时更新派生字段
// 只覆盖摘要/重叠诊断/匹配分，指纹、文件名与岗位描述保持不变
func (s *SQLite) UpdateCandidateDerived(ctx context.Context, uid string, excerpt string, overlap float64, overlapTokens string, matchScore float64) error {
	updates := map[string]interface{}{
		"excerpt":        excerpt,
		"overlap":        overlap,
		"overlap_tokens": overlapTokens,
		"match_score":    matchScore,
	}
	err := s.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("uid = ?", uid).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("更新候选人派生字段失败: %w", err)
	}
	return nil
}

// DeleteCandidate 按指纹删除记录
// 删除不存在的指纹是空操作，不报错
func (s *SQLite) DeleteCandidate(ctx context.Context, uid string) error {
	err := s.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Candidate{}).Error
	if err != nil {
		return fmt.Errorf("删除候选人记录失败: %w", err)
	}
	return nil
}
