package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"普通文件名", "resume.pdf", "resume.pdf"},
		{"路径穿越", "../../etc/passwd", "passwd"},
		{"Windows路径", `C:\Users\alice\resume.docx`, "resume.docx"},
		{"空格与特殊字符", "my resume (final).txt", "my_resume__final_.txt"},
		{"非ASCII字符", "简历.txt", "txt"},
		{"纯点", "...", "resume"},
		{"空串", "", "resume"},
		{"前后点下划线", "._hidden_.", "hidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "resume", DisplayName("resume.pdf"))
	assert.Equal(t, "alice.resume", DisplayName("alice.resume.docx"))
	assert.Equal(t, "noext", DisplayName("noext"))
}
