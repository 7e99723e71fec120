package model

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
)

// ContentConfig 是内容模型的构建参数。
type ContentConfig struct {
	// MaxFeatures 词表上限（按全集词频选 TopN 个 unigram/bigram），默认 5000。
	MaxFeatures int
}

func (c ContentConfig) maxFeatures() int {
	if c.MaxFeatures <= 0 {
		return 5000
	}
	return c.MaxFeatures
}

// Content 是基于内容的推荐模型。
//
// 核心思想："特征相近的商品相互相似"
//
// 构建流程：
//  1. 每个商品拼接 类目 + 品牌 + 标签 + 描述 为一个文档
//  2. 分词（小写 unigram + bigram，去英文停用词），词表截断到 MaxFeatures
//  3. TF-IDF 加权 + L2 归一化，得到每个商品的稀疏向量
//  4. 计算全量两两余弦相似度矩阵（对称，对角线为 1）
//
// 相似度矩阵构建是 O(P²)，对几万级目录可接受；再大需要换 ANN 方案，
// 这是本模型的规模边界。
type Content struct {
	idx *catalog.Index
	sim [][]float64 // P×P 余弦相似度
}

// NewContent 构建内容模型。相似度矩阵按行并发计算，
// 构建完成前不对外提供服务，因此没有可观测的中间状态。
func NewContent(idx *catalog.Index, cfg ContentConfig) *Content {
	n := idx.Len()
	c := &Content{idx: idx, sim: make([][]float64, n)}
	if n == 0 {
		return c
	}

	vectors := buildVectors(idx, cfg.maxFeatures())

	for i := range c.sim {
		c.sim[i] = make([]float64, n)
	}
	eg := new(errgroup.Group)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			c.sim[i][i] = 1
			for j := i + 1; j < n; j++ {
				// 向量已 L2 归一化，点积即余弦
				s := sparseDot(vectors[i], vectors[j])
				c.sim[i][j] = s
				c.sim[j][i] = s
			}
			return nil
		})
	}
	_ = eg.Wait() // 行计算不产生错误
	return c
}

// buildVectors 生成每个商品的 L2 归一化 TF-IDF 稀疏向量（词 ID -> 权重）。
func buildVectors(idx *catalog.Index, maxFeatures int) []map[int]float64 {
	products := idx.All()
	docs := make([][]string, len(products))
	totalCount := make(map[string]int) // 全集词频，用于词表截断
	docFreq := make(map[string]int)

	for i, p := range products {
		tokens := tokenize(p.Category + " " + p.Brand + " " + p.Tags + " " + p.Description)
		docs[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			totalCount[t]++
			if !seen[t] {
				docFreq[t]++
				seen[t] = true
			}
		}
	}

	vocab := buildVocabulary(totalCount, maxFeatures)

	// 平滑 IDF：ln((1+N)/(1+df)) + 1
	n := float64(len(products))
	idf := make([]float64, len(vocab))
	terms := make(map[string]int, len(vocab))
	for termID, term := range vocab {
		terms[term] = termID
		idf[termID] = logIDF(n, float64(docFreq[term]))
	}

	vectors := make([]map[int]float64, len(products))
	for i, tokens := range docs {
		vec := make(map[int]float64)
		for _, t := range tokens {
			if termID, ok := terms[t]; ok {
				vec[termID] += idf[termID]
			}
		}
		l2Normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

// buildVocabulary 选出全集词频最高的 maxFeatures 个词。
// 词频相同按字典序升序，保证重建结果一致。
func buildVocabulary(totalCount map[string]int, maxFeatures int) []string {
	vocab := make([]string, 0, len(totalCount))
	for term := range totalCount {
		vocab = append(vocab, term)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if totalCount[vocab[i]] != totalCount[vocab[j]] {
			return totalCount[vocab[i]] > totalCount[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > maxFeatures {
		vocab = vocab[:maxFeatures]
	}
	return vocab
}

// Recommend 返回与种子商品最相似的 topN 个商品。
// 种子不存在时返回 NOT_FOUND；结果不包含种子自身，
// 相似度降序，同分保持目录顺序（稳定排序）。
func (c *Content) Recommend(seedID int64, topN int) ([]ScoredProduct, error) {
	seed, ok := c.idx.Pos(seedID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound, "content: seed product not found")
	}

	order := make([]int, 0, c.idx.Len()-1)
	for i := 0; i < c.idx.Len(); i++ {
		if i != seed {
			order = append(order, i)
		}
	}
	row := c.sim[seed]
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})
	if topN > 0 && len(order) > topN {
		order = order[:topN]
	}

	out := make([]ScoredProduct, 0, len(order))
	for _, i := range order {
		out = append(out, ScoredProduct{Product: c.idx.At(i), Score: row[i]})
	}
	return out, nil
}

// RecommendByCategory 返回指定类目下评分最高的 topN 个商品。
// 类目做大小写不敏感子串匹配；无命中返回空结果而非错误。
func (c *Content) RecommendByCategory(category string, topN int) []*core.Product {
	out := c.idx.ByCategory(category)
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Similarity 返回两个目录下标间的余弦相似度（供测试/诊断）。
func (c *Content) Similarity(i, j int) float64 {
	return c.sim[i][j]
}
