package processor

import (
	"context"
	"strconv"
)

// exportHeader CSV 导出列顺序，与仪表盘展示字段保持一致
var exportHeader = []string{
	"uid", "name", "skills", "match_score",
	"resume", "jd", "excerpt", "overlap", "overlap_tokens",
}

// ExportSnapshot 导出当前全部记录的快照，首行为表头，
// 行序与 ListCandidates 一致(匹配分降序)
// 分值固定保留两位小数，空集合字段导出为空串
func (p *Pipeline) ExportSnapshot(ctx context.Context) ([][]string, error) {
	candidates, err := p.storage.DB.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(candidates)+1)
	rows = append(rows, exportHeader)
	for _, c := range candidates {
		rows = append(rows, []string{
			c.UID,
			c.Name,
			c.Skills,
			strconv.FormatFloat(c.MatchScore, 'f', 2, 64),
			c.Resume,
			c.JD,
			c.Excerpt,
			strconv.FormatFloat(c.Overlap, 'f', 2, 64),
			c.OverlapTokens,
		})
	}
	return rows, nil
}
