package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"hiremind-go/internal/logger"
)

// Format 文档格式提示，由文件扩展名推导
type Format string

const (
	// FormatPlainText 纯文本
	FormatPlainText Format = "plain_text"
	// FormatPDF PDF文档
	FormatPDF Format = "pdf"
	// FormatWord Word文档(docx)
	FormatWord Format = "word"
)

// DetectFormat 根据文件名推导格式提示，扩展名大小写不敏感
// 未识别的扩展名按纯文本处理
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatWord
	default:
		return FormatPlainText
	}
}

// PDFBackend PDF文本提取后端接口
// 实现按页遍历文档、以换行符拼接各页文本；无文本的页不产生输出
type PDFBackend interface {
	ExtractPages(ctx context.Context, data []byte, uri string) (string, error)
}

// TextExtractor 简历文本提取器
// 任何提取失败都降级为空文本并记录日志，绝不向调用方抛错：
// 一份损坏的简历不应阻断候选人入库
type TextExtractor struct {
	pdf PDFBackend
}

// NewTextExtractor 创建文本提取器
func NewTextExtractor(pdf PDFBackend) *TextExtractor {
	return &TextExtractor{pdf: pdf}
}

// Extract 从原始字节中提取纯文本
// filename 仅用于推导格式提示；返回值可能为空字符串，不返回错误
func (e *TextExtractor) Extract(ctx context.Context, data []byte, filename string) string {
	format := DetectFormat(filename)

	switch format {
	case FormatPDF:
		text, err := e.extractPDF(ctx, data, filename)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("filename", filename).
				Msg("PDF文本提取失败，降级为空文本")
			return ""
		}
		return text

	case FormatWord:
		text, err := extractDocx(data)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("filename", filename).
				Msg("DOCX文本提取失败，降级为空文本")
			return ""
		}
		return text

	default:
		// 按UTF-8解码，丢弃无效字节序列而不是报错
		return strings.ToValidUTF8(string(data), "")
	}
}

// extractPDF 调用后端并吸收panic
// 个别PDF库在畸形输入上会panic而不是返回错误，这里统一转为降级路径
func (e *TextExtractor) extractPDF(ctx context.Context, data []byte, uri string) (text string, err error) {
	if e.pdf == nil {
		logger.Warn().Str("filename", uri).Msg("未配置PDF后端，降级为空文本")
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().
				Interface("panic", r).
				Str("filename", uri).
				Msg("PDF后端panic，降级为空文本")
			text = ""
			err = nil
		}
	}()
	return e.pdf.ExtractPages(ctx, data, uri)
}
