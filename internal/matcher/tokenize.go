package matcher

import (
	"strings"
	"unicode"
)

// isWordRune 判断是否属于词字符：字母、数字或下划线
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// TokenSet 将文本切分为去重后的词元集合
// 词元为最长连续词字符序列，统一转小写；标点和空白作为分隔符丢弃
func TokenSet(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens[word.String()] = struct{}{}
			word.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// vectorTokens 为TF-IDF向量化切分词元，保留出现次数
// 与sklearn默认的token_pattern一致：只保留长度至少为2的词元，
// 这也是主评分在短文本上会退化为零的来源
func vectorTokens(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() >= 2 {
			tokens = append(tokens, word.String())
		}
		word.Reset()
	}

	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
