package matcher

import (
	"strings"

	"hiremind-go/internal/constants"
)

// SkillTagger 在提取文本中扫描固定技能词表
type SkillTagger struct {
	vocabulary []string
}

// NewSkillTagger 创建技能标注器
// vocabulary 为空时使用内置默认词表
func NewSkillTagger(vocabulary []string) *SkillTagger {
	if len(vocabulary) == 0 {
		vocabulary = constants.DefaultSkillVocabulary
	}
	return &SkillTagger{vocabulary: vocabulary}
}

// Tag 返回文本中命中的词表词条，保持词表声明顺序
// 匹配是小写化后的子串包含("ai"会命中"certain"内部)，
// 不做词边界判断——这是原型的既定行为，不要悄悄收紧
func (t *SkillTagger) Tag(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range t.vocabulary {
		if strings.Contains(lower, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}

// JoinSkills 将命中词条连接为存储形式，无命中时返回占位符
func JoinSkills(skills []string) string {
	if len(skills) == 0 {
		return constants.SkillsPlaceholder
	}
	return strings.Join(skills, ", ")
}
