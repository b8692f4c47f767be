package matcher

import (
	"math"
	"sort"
)

// Overlap 计算岗位描述与简历文本的词元重叠诊断
// percent = |交集| / |岗位描述词元集| × 100，岗位描述无词元时为0
// shared 为交集的字典序排序结果
// 该诊断独立于主评分，总是被计算并随记录存储
func Overlap(jobDescription, resumeText string) (percent float64, shared []string) {
	jdTokens := TokenSet(jobDescription)
	if len(jdTokens) == 0 {
		return 0, nil
	}

	resumeTokens := TokenSet(resumeText)
	for token := range jdTokens {
		if _, ok := resumeTokens[token]; ok {
			shared = append(shared, token)
		}
	}
	sort.Strings(shared)

	percent = float64(len(shared)) / float64(len(jdTokens)) * 100.0
	return round2(percent), shared
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
