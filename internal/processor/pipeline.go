package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"hiremind-go/internal/constants"
	"hiremind-go/internal/logger"
	"hiremind-go/internal/matcher"
	"hiremind-go/internal/storage"
	"hiremind-go/internal/storage/models"
	"hiremind-go/internal/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var pipelineTracer = otel.Tracer("hiremind-go/processor")

// ErrEmptyUpload 上传内容为空，属于调用方输入错误，不进入管线
var ErrEmptyUpload = errors.New("上传内容为空")

// Components 聚合管线的功能组件依赖，便于集中管理和测试替换
type Components struct {
	Extractor TextExtractor
	Tagger    SkillTagger
	Scorer    Scorer

	// 存储层依赖
	Storage *storage.Storage
}

// Settings 纯配置项，不包含业务组件
type Settings struct {
	// ExcerptLength 摘要截取长度(字符数)，<=0 时使用默认值
	ExcerptLength int
}

// Pipeline 简历匹配管线
// 单线程、同步、每次调用完整走完 提取→标注→评分→诊断→落库；
// 并发隔离由调用方负责，同一指纹假定同时只有一个写者
type Pipeline struct {
	extractor TextExtractor
	tagger    SkillTagger
	scorer    Scorer
	storage   *storage.Storage

	excerptLength int
}

// NewPipeline 创建匹配管线
func NewPipeline(comp *Components, set *Settings) (*Pipeline, error) {
	if comp == nil {
		return nil, fmt.Errorf("组件集合不能为空")
	}
	if comp.Extractor == nil {
		return nil, fmt.Errorf("文本提取器不能为空")
	}
	if comp.Tagger == nil {
		return nil, fmt.Errorf("技能标注器不能为空")
	}
	if comp.Scorer == nil {
		return nil, fmt.Errorf("评分器不能为空")
	}
	if comp.Storage == nil {
		return nil, fmt.Errorf("存储依赖不能为空")
	}

	excerptLength := constants.DefaultExcerptLength
	if set != nil && set.ExcerptLength > 0 {
		excerptLength = set.ExcerptLength
	}

	return &Pipeline{
		extractor:     comp.Extractor,
		tagger:        comp.Tagger,
		scorer:        comp.Scorer,
		storage:       comp.Storage,
		excerptLength: excerptLength,
	}, nil
}

// ProcessUpload 处理一次简历上传：保存原件、提取文本、标注技能、
// 评分、计算重叠诊断并按指纹落库，返回最终记录
// 重新提交字节相同的文件会覆盖同一条记录的全部派生字段
func (p *Pipeline) ProcessUpload(ctx context.Context, data []byte, filename, jobDescription string) (*models.Candidate, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	ctx, span := pipelineTracer.Start(ctx, "Pipeline.ProcessUpload",
		trace.WithAttributes(
			attribute.String("upload.filename", tracing.TruncateString(filename, tracing.DefaultMaxLength)),
			attribute.Int("upload.size_bytes", len(data)),
		))
	defer span.End()

	storedName := SanitizeFilename(filename)

	// 先保存原件再解析，批量重算依赖已保存的文件
	if err := p.storage.Files.Save(ctx, storedName, data); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeFileStore)
		return nil, fmt.Errorf("保存简历原件失败: %w", err)
	}

	sum := sha256.Sum256(data)
	fingerprint := hex.EncodeToString(sum[:])

	text := p.extractor.Extract(ctx, data, storedName)
	logger.Info().
		Str("filename", storedName).
		Str("uid", fingerprint).
		Int("jd_len", len(jobDescription)).
		Int("text_len", len(text)).
		Msg("简历文本提取完成")

	candidate := p.buildCandidate(fingerprint, storedName, jobDescription, text)

	if err := p.storage.DB.UpsertCandidate(ctx, candidate); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}

	span.SetAttributes(attribute.Float64("candidate.match_score", candidate.MatchScore))
	return candidate, nil
}

// buildCandidate 从提取文本计算全部派生字段并组装记录
func (p *Pipeline) buildCandidate(fingerprint, storedName, jobDescription, text string) *models.Candidate {
	skills := p.tagger.Tag(text)
	score := p.scorer.Score(jobDescription, text)

	// 重叠诊断独立于评分路径，总是计算并存储
	overlapPercent, overlapTokens := matcher.Overlap(jobDescription, text)

	return &models.Candidate{
		UID:           fingerprint,
		Name:          DisplayName(storedName),
		Skills:        matcher.JoinSkills(skills),
		MatchScore:    score,
		Resume:        storedName,
		JD:            jobDescription,
		Excerpt:       excerptOf(text, p.excerptLength),
		Overlap:       overlapPercent,
		OverlapTokens: strings.Join(overlapTokens, ", "),
	}
}

// ReprocessReport 批量重算结果
type ReprocessReport struct {
	// BatchID 本次重算的标识，用于日志关联
	BatchID string `json:"batch_id"`
	// Updated 成功重算的记录指纹
	Updated []string `json:"updated"`
	// Missing 原件缺失而被跳过的记录指纹
	Missing []string `json:"missing"`
}

// ReprocessAll 对所有已存记录重新提取并评分
// 使用每条记录已存储的岗位描述；原件缺失的记录跳过并上报，不中断批次
// 只更新 摘要/重叠诊断/匹配分 四个派生字段
func (p *Pipeline) ReprocessAll(ctx context.Context) (*ReprocessReport, error) {
	ctx, span := pipelineTracer.Start(ctx, "Pipeline.ReprocessAll")
	defer span.End()

	report := &ReprocessReport{
		BatchID: uuid.NewString(),
		Updated: []string{},
		Missing: []string{},
	}

	candidates, err := p.storage.DB.ListCandidates(ctx)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, err
	}

	logger.Info().
		Str("batch_id", report.BatchID).
		Int("count", len(candidates)).
		Msg("开始批量重算")

	for _, c := range candidates {
		data, err := p.storage.Files.Get(ctx, c.Resume)
		if err != nil {
			// 缺失或读不出的原件都只影响本条记录
			logger.Warn().
				Err(err).
				Str("batch_id", report.BatchID).
				Str("uid", c.UID).
				Str("resume", c.Resume).
				Msg("简历原件缺失，跳过该记录")
			report.Missing = append(report.Missing, c.UID)
			continue
		}

		text := p.extractor.Extract(ctx, data, c.Resume)
		overlapPercent, overlapTokens := matcher.Overlap(c.JD, text)
		score := p.scorer.Score(c.JD, text)

		err = p.storage.DB.UpdateCandidateDerived(ctx, c.UID,
			excerptOf(text, p.excerptLength),
			overlapPercent,
			strings.Join(overlapTokens, ", "),
			score,
		)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeDB)
			return nil, err
		}

		logger.Info().
			Str("batch_id", report.BatchID).
			Str("uid", c.UID).
			Float64("score", score).
			Float64("overlap", overlapPercent).
			Msg("记录已重算")
		report.Updated = append(report.Updated, c.UID)
	}

	span.SetAttributes(
		attribute.Int("reprocess.updated", len(report.Updated)),
		attribute.Int("reprocess.missing", len(report.Missing)),
	)
	return report, nil
}

// ListCandidates 按匹配分降序返回全部记录
func (p *Pipeline) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return p.storage.DB.ListCandidates(ctx)
}

// GetCandidate 按指纹查询记录
func (p *Pipeline) GetCandidate(ctx context.Context, uid string) (*models.Candidate, error) {
	return p.storage.DB.GetCandidate(ctx, uid)
}

// DeleteCandidate 按指纹删除记录，指纹不存在时为空操作
func (p *Pipeline) DeleteCandidate(ctx context.Context, uid string) error {
	return p.storage.DB.DeleteCandidate(ctx, uid)
}

// GetResumeFile 读取已保存的简历原件
func (p *Pipeline) GetResumeFile(ctx context.Context, filename string) ([]byte, error) {
	return p.storage.Files.Get(ctx, SanitizeFilename(filename))
}

// excerptOf 截取前 n 个字符作为预览摘要
// 按rune截取，避免把多字节字符切成半个
func excerptOf(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
