package tracing

const (
	// DefaultMaxLength 默认最大属性长度
	DefaultMaxLength = 200

	// MaxSQLLength SQL语句最大长度
	MaxSQLLength = 500

	// MaxTextLength 简历文本类属性最大长度
	MaxTextLength = 150
)

// TruncateString 截断过长的属性值并添加省略号
// 追踪后端对单个属性有长度限制，简历全文不应整体写入span
func TruncateString(value string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}
	return string(runes[:maxLength]) + "..."
}
