package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"hiremind-go/internal/config"
	"hiremind-go/internal/logger"
	"hiremind-go/internal/processor"
	"hiremind-go/internal/storage/models"
)

// CandidateHandler 候选人处理器，衔接HTTP层与匹配管线
type CandidateHandler struct {
	cfg      *config.Config
	pipeline *processor.Pipeline
}

// NewCandidateHandler 创建候选人处理器
func NewCandidateHandler(cfg *config.Config, pipeline *processor.Pipeline) *CandidateHandler {
	return &CandidateHandler{
		cfg:      cfg,
		pipeline: pipeline,
	}
}

// CandidateView 对外暴露的候选人视图
type CandidateView struct {
	UID           string  `json:"uid"`
	Name          string  `json:"name"`
	Skills        string  `json:"skills"`
	MatchScore    float64 `json:"match_score"`
	Resume        string  `json:"resume"`
	JD            string  `json:"jd"`
	Excerpt       string  `json:"excerpt"`
	Overlap       float64 `json:"overlap"`
	OverlapTokens string  `json:"overlap_tokens"`
}

func toView(c *models.Candidate) *CandidateView {
	return &CandidateView{
		UID:           c.UID,
		Name:          c.Name,
		Skills:        c.Skills,
		MatchScore:    c.MatchScore,
		Resume:        c.Resume,
		JD:            c.JD,
		Excerpt:       c.Excerpt,
		Overlap:       c.Overlap,
		OverlapTokens: c.OverlapTokens,
	}
}

// CandidateSummary 仪表盘列表项，不携带正文类字段
type CandidateSummary struct {
	UID        string  `json:"uid"`
	Name       string  `json:"name"`
	Skills     string  `json:"skills"`
	MatchScore float64 `json:"match_score"`
	Resume     string  `json:"resume"`
}

// UploadResponse 简历上传响应
type UploadResponse struct {
	UID        string  `json:"uid"`
	Name       string  `json:"name"`
	MatchScore float64 `json:"match_score"`
	Skills     string  `json:"skills"`
}

// HandleUpload 处理一次简历上传
func (h *CandidateHandler) HandleUpload(ctx context.Context, reader io.Reader,
	filename, jobDescription string) (*UploadResponse, error) {

	// reader只能读一次，先整体读入再进入管线
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}

	candidate, err := h.pipeline.ProcessUpload(ctx, data, filename, jobDescription)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("uid", candidate.UID).
		Str("name", candidate.Name).
		Float64("score", candidate.MatchScore).
		Msg("简历上传处理完成")

	return &UploadResponse{
		UID:        candidate.UID,
		Name:       candidate.Name,
		MatchScore: candidate.MatchScore,
		Skills:     candidate.Skills,
	}, nil
}

// HandleDashboard 返回按匹配分降序的候选人摘要列表
// 正文类字段(岗位描述/摘要/重叠词元)通过详情接口获取
func (h *CandidateHandler) HandleDashboard(ctx context.Context) ([]*CandidateSummary, error) {
	candidates, err := h.pipeline.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]*CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, &CandidateSummary{
			UID:        c.UID,
			Name:       c.Name,
			Skills:     c.Skills,
			MatchScore: c.MatchScore,
			Resume:     c.Resume,
		})
	}
	return summaries, nil
}

// HandleGetCandidate 按指纹返回单个候选人详情
func (h *CandidateHandler) HandleGetCandidate(ctx context.Context, uid string) (*CandidateView, error) {
	candidate, err := h.pipeline.GetCandidate(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toView(candidate), nil
}

// HandleDelete 按指纹删除候选人记录
func (h *CandidateHandler) HandleDelete(ctx context.Context, uid string) error {
	if err := h.pipeline.DeleteCandidate(ctx, uid); err != nil {
		return err
	}
	logger.Info().Str("uid", uid).Msg("候选人记录已删除")
	return nil
}

// HandleReprocess 对全部记录执行批量重算
func (h *CandidateHandler) HandleReprocess(ctx context.Context) (*processor.ReprocessReport, error) {
	return h.pipeline.ReprocessAll(ctx)
}

// HandleExportCSV 导出候选人快照为CSV字节
func (h *CandidateHandler) HandleExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := h.pipeline.ExportSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("写入CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}

// HandleGetResumeFile 读取已保存的简历原件
func (h *CandidateHandler) HandleGetResumeFile(ctx context.Context, filename string) ([]byte, error) {
	return h.pipeline.GetResumeFile(ctx, filename)
}
