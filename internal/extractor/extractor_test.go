package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx 在内存中构造一个最小可用的docx
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		require.NoError(t, xml.EscapeText(&body, []byte(p)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		filename string
		want     Format
	}{
		{"resume.pdf", FormatPDF},
		{"Resume.PDF", FormatPDF},
		{"resume.docx", FormatWord},
		{"Resume.DOCX", FormatWord},
		{"resume.txt", FormatPlainText},
		{"resume.md", FormatPlainText},
		{"resume", FormatPlainText},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetectFormat(c.filename), c.filename)
	}
}

func TestExtractPlainText(t *testing.T) {
	e := NewTextExtractor(nil)
	ctx := context.Background()

	text := e.Extract(ctx, []byte("Python developer with SQL"), "resume.txt")
	assert.Equal(t, "Python developer with SQL", text)

	// 未识别的扩展名按纯文本处理
	text = e.Extract(ctx, []byte("hello"), "resume.unknown")
	assert.Equal(t, "hello", text)

	// 无效UTF-8字节序列被丢弃而不是报错
	text = e.Extract(ctx, []byte{'o', 'k', 0xff, 0xfe, '!'}, "resume.txt")
	assert.Equal(t, "ok!", text)
}

func TestExtractDocx(t *testing.T) {
	e := NewTextExtractor(nil)
	data := buildDocx(t, []string{"Experienced in Python", "", "Strong communication"})

	text := e.Extract(context.Background(), data, "resume.docx")
	// 非空段落以换行符拼接，空段落不产生输出
	assert.Equal(t, "Experienced in Python\nStrong communication\n", text)
}

func TestExtractCorruptDocumentsDegradeToEmpty(t *testing.T) {
	e := NewTextExtractor(NewNativePDFBackend())
	ctx := context.Background()

	// 损坏的PDF：空文本，不panic不报错
	assert.Equal(t, "", e.Extract(ctx, []byte("not really a pdf"), "resume.pdf"))
	// 截断的PDF头
	assert.Equal(t, "", e.Extract(ctx, []byte("%PDF-1.7\ngarbage"), "resume.pdf"))
	// 损坏的docx
	assert.Equal(t, "", e.Extract(ctx, []byte("not a zip archive"), "resume.docx"))
	// 缺少document.xml的zip
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, _ = f.Write([]byte("<x/>"))
	require.NoError(t, zw.Close())
	assert.Equal(t, "", e.Extract(ctx, buf.Bytes(), "resume.docx"))
}

func TestExtractPDFWithoutBackend(t *testing.T) {
	e := NewTextExtractor(nil)
	assert.Equal(t, "", e.Extract(context.Background(), []byte("%PDF-1.7"), "resume.pdf"))
}
