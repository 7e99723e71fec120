// Package model 实现三类推荐模型：
//
//   - Content：商品文本特征的 TF-IDF 向量 + 两两余弦相似度
//   - Collaborative：交互矩阵上的 user-user / item-item 余弦相似度
//   - Factor：交互矩阵的截断 SVD 隐向量分解
//
// 模型在启动（或显式重建）时一次性批量构建，构建完成后只读，
// 请求路径上不加锁、不做任何外部调用。
package model

import (
	"sort"

	"github.com/shoprec/shoprec/core"
)

// ScoredProduct 是模型输出的 (商品, 分数) 对。
// 分数语义按模型而定：相似度或预测评分。
type ScoredProduct struct {
	Product *core.Product
	Score   float64
}

// scored 是内部排序用的 (稠密下标, 分数) 对。
type scored struct {
	index int
	score float64
}

// rankTop 按 (分数 desc, 下标 asc) 排序并截断前 topN 个。
// 下标升序兜底保证同分时结果确定。
func rankTop(items []scored, topN int) []scored {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].index < items[j].index
	})
	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	return items
}
