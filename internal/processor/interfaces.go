package processor

import "context"

// TextExtractor 文本提取接口
// 提取失败降级为空字符串，不返回错误
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) string
}

// SkillTagger 技能标注接口
type SkillTagger interface {
	// Tag 返回文本中命中的词表词条，保持词表声明顺序
	Tag(text string) []string
}

// Scorer 相似度评分接口
type Scorer interface {
	// Score 计算岗位描述与简历文本的匹配分，范围[0,100]
	Score(jobDescription, resumeText string) float64
}
