package model

import (
	"math"
	"regexp"
	"strings"
)

// tokenRegex 在包初始化时编译一次
var tokenRegex = regexp.MustCompile(`[^a-z0-9]+`)

// tokenize 生成小写 unigram + bigram 词元序列。
// 去掉英文停用词和单字符词后，bigram 由相邻保留词拼接（空格分隔）。
func tokenize(text string) []string {
	raw := tokenRegex.Split(strings.ToLower(text), -1)
	unigrams := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < 2 || stopwords[t] {
			continue
		}
		unigrams = append(unigrams, t)
	}

	out := make([]string, 0, len(unigrams)*2)
	out = append(out, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		out = append(out, unigrams[i]+" "+unigrams[i+1])
	}
	return out
}

// logIDF 是平滑 IDF：ln((1+n)/(1+df)) + 1，df=0 时也有定义。
func logIDF(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}

// sparseDot 计算两个稀疏向量的点积，遍历较小的一侧。
func sparseDot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for k, va := range a {
		if vb, ok := b[k]; ok {
			sum += va * vb
		}
	}
	return sum
}

// l2Normalize 原地做 L2 归一化；零向量保持不变。
func l2Normalize(vec map[int]float64) {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for k, v := range vec {
		vec[k] = v / norm
	}
}
