package matcher

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// tfidfCosine 计算两篇文本的TF-IDF余弦相似度，范围[0,1]
// 词表在 {jobDescription, resumeText} 这个两文档语料上联合拟合；
// IDF采用平滑形式 ln((1+n)/(1+df))+1，与主流向量化器一致
// 任一文本向量化后没有词元时返回错误，由调用方降级为0分
func tfidfCosine(jobDescription, resumeText string) (float64, error) {
	jdTokens := vectorTokens(jobDescription)
	resumeTokens := vectorTokens(resumeText)
	if len(jdTokens) == 0 || len(resumeTokens) == 0 {
		return 0, fmt.Errorf("向量化后词表为空")
	}

	// 联合词表，词 -> 向量下标
	vocab := make(map[string]int)
	for _, t := range jdTokens {
		if _, ok := vocab[t]; !ok {
			vocab[t] = len(vocab)
		}
	}
	for _, t := range resumeTokens {
		if _, ok := vocab[t]; !ok {
			vocab[t] = len(vocab)
		}
	}

	jdVec := termFrequency(jdTokens, vocab)
	resumeVec := termFrequency(resumeTokens, vocab)

	// 两文档语料: n=2, df ∈ {1,2}
	const numDocs = 2.0
	for idx := 0; idx < len(vocab); idx++ {
		df := 0.0
		if jdVec[idx] > 0 {
			df++
		}
		if resumeVec[idx] > 0 {
			df++
		}
		idf := math.Log((1+numDocs)/(1+df)) + 1
		jdVec[idx] *= idf
		resumeVec[idx] *= idf
	}

	normProduct := floats.Norm(jdVec, 2) * floats.Norm(resumeVec, 2)
	if normProduct == 0 {
		return 0, nil
	}
	cos := floats.Dot(jdVec, resumeVec) / normProduct

	// 浮点误差可能使结果略微越界
	if cos < 0 {
		cos = 0
	}
	if cos > 1 {
		cos = 1
	}
	return cos, nil
}

// termFrequency 统计词频向量
func termFrequency(tokens []string, vocab map[string]int) []float64 {
	vec := make([]float64, len(vocab))
	for _, t := range tokens {
		vec[vocab[t]]++
	}
	return vec
}
