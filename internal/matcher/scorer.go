package matcher

import (
	"strings"

	"hiremind-go/internal/constants"
	"hiremind-go/internal/logger"
)

// Scorer 相似度评分接口
// 具体的统计后端在启动时装配，调用方只依赖这一个操作
type Scorer interface {
	// Score 计算岗位描述与简历文本的匹配分，范围[0,100]，保留两位小数
	Score(jobDescription, resumeText string) float64
}

// TFIDFScorer 默认评分实现：TF-IDF余弦相似度为主，词元重叠为回退
//
// TF-IDF在两文档语料上容易退化：词表在罕见词空间几乎不相交，
// 或某一侧文本过短导致权重无意义时，余弦会落到零。
// 回退的重叠启发式在这种情形下恢复非零信号，
// 但不会覆盖一个正常算出的高相似度
type TFIDFScorer struct {
	// Epsilon 主评分低于该值时视为退化并尝试回退
	Epsilon float64
}

// NewTFIDFScorer 创建默认评分器
// epsilon <= 0 时使用内置阈值
func NewTFIDFScorer(epsilon float64) *TFIDFScorer {
	if epsilon <= 0 {
		epsilon = constants.DefaultFallbackEpsilon
	}
	return &TFIDFScorer{Epsilon: epsilon}
}

// Score 实现 Scorer 接口
func (s *TFIDFScorer) Score(jobDescription, resumeText string) float64 {
	// 任一侧为空或仅空白时直接判0
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(resumeText) == "" {
		return 0
	}

	primary := 0.0
	cos, err := tfidfCosine(jobDescription, resumeText)
	if err != nil {
		// 向量化失败不是致命错误，走回退路径
		logger.Debug().Err(err).Msg("TF-IDF向量化失败，主评分计为0")
	} else {
		primary = cos * 100
	}

	score := primary
	if primary < s.Epsilon {
		fallback, _ := Overlap(jobDescription, resumeText)
		if fallback > primary {
			logger.Debug().
				Float64("primary", primary).
				Float64("fallback", fallback).
				Msg("主评分退化，采用词元重叠回退")
			score = fallback
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}
