package constants

// 匹配管线相关常量
const (
	// DefaultExcerptLength 摘要截取长度(字符数)
	DefaultExcerptLength = 2000

	// DefaultFallbackEpsilon TF-IDF主评分低于该值时视为退化，尝试重叠回退
	DefaultFallbackEpsilon = 1e-4

	// SkillsPlaceholder 无命中技能时存储的占位符
	SkillsPlaceholder = "—"

	// DefaultMaxUploadSizeMB 上传文件大小上限(MB)
	DefaultMaxUploadSizeMB = 16
)

// DefaultSkillVocabulary 内置技能词表，未配置词表时使用
// 按声明顺序输出命中词条，保证展示顺序确定
var DefaultSkillVocabulary = []string{
	"python", "flask", "django", "sql", "postgres", "mongodb",
	"ai", "ml", "communication", "react", "node",
}
