package models

import (
	"time"
)

// Candidate 候选人匹配记录表，一条记录对应一份内容唯一的简历文件
// UID 为原始上传字节的sha256指纹，是记录的稳定身份键；
// ID 仅用于并列分数时保持插入顺序
type Candidate struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UID           string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_candidates_uid"`
	Name          string    `gorm:"type:varchar(255)"`
	Skills        string    `gorm:"type:text"`
	MatchScore    float64   `gorm:"index:idx_candidates_match_score"`
	Resume        string    `gorm:"type:varchar(255)"` // 原件在文件存储中的引用(文件名)
	JD            string    `gorm:"column:jd;type:text;default:''"`
	Excerpt       string    `gorm:"type:text;default:''"`
	Overlap       float64   `gorm:"default:0"`
	OverlapTokens string    `gorm:"type:text;default:''"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Candidate) TableName() string {
	return "candidates"
}
