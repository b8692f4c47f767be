package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docx本质是zip容器，正文在 word/document.xml 中
// 段落为 <w:p>，文本片段为 <w:t>；按文档顺序遍历段落，
// 非空段落以换行符拼接
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开docx容器失败: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("打开document.xml失败: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("docx中缺少word/document.xml")
	}
	defer docXML.Close()

	var (
		sb        strings.Builder
		paragraph strings.Builder
		inText    bool
	)

	decoder := xml.NewDecoder(docXML)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("解析document.xml失败: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if paragraph.Len() > 0 {
					sb.WriteString(paragraph.String())
					sb.WriteString("\n")
					paragraph.Reset()
				}
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return sb.String(), nil
}
