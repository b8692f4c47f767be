package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativePDFBackend 纯Go实现的PDF提取后端，无外部进程依赖
// 与Eino后端遵守同一契约：按页遍历，提取失败的页跳过
type NativePDFBackend struct{}

// NewNativePDFBackend 创建纯Go PDF提取后端
func NewNativePDFBackend() *NativePDFBackend {
	return &NativePDFBackend{}
}

// ExtractPages 按页序提取文本并以换行符拼接
func (n *NativePDFBackend) ExtractPages(ctx context.Context, data []byte, uri string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开PDF失败 (uri=%s): %w", uri, err)
	}

	var sb strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			// 单页提取失败不是致命错误，继续处理剩余页
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
