package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFBackend 使用 Eino PDF Parser 提取文本
// ToPages 配置为 true：按页返回文档，便于逐页拼接并跳过无文本的页
type EinoPDFBackend struct {
	parser *pdf.PDFParser
}

// NewEinoPDFBackend 初始化 Eino PDF 提取后端
func NewEinoPDFBackend(ctx context.Context) (*EinoPDFBackend, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &EinoPDFBackend{parser: p}, nil
}

// ExtractPages 按页序提取文本，仅有文本的页参与拼接，页间以换行符分隔
func (e *EinoPDFBackend) ExtractPages(ctx context.Context, data []byte, uri string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(uri),
	)
	if err != nil {
		return "", fmt.Errorf("eino解析PDF失败 (uri=%s): %w", uri, err)
	}

	var sb strings.Builder
	for _, doc := range docs {
		if doc.Content == "" {
			continue
		}
		sb.WriteString(doc.Content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
