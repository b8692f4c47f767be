package processor

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename 将上传文件名收敛为安全的存储键
// 去掉路径部分，仅保留字母/数字/点/横线/下划线，其余字符替换为下划线
// 结果为空时回退为 "resume"
func SanitizeFilename(filename string) string {
	// 同时处理两种路径分隔符，客户端可能来自任意平台
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	cleaned := strings.Trim(sb.String(), "._")
	if cleaned == "" {
		return "resume"
	}
	return cleaned
}

// DisplayName 从存储文件名推导展示名(去扩展名)
func DisplayName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
