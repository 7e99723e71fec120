// Package shoprec 是一个电商混合推荐系统。
//
// 设计要点：
//   - 三路独立信号：内容相似（TF-IDF 余弦）、协同过滤（用户/物品余弦）、
//     矩阵分解（截断 SVD 隐因子）
//   - 融合策略：按来源固定置信度排序、首见去重，个性化信号为空时
//     回落到全目录热门兜底
//   - Pipeline-first：召回 → 过滤 → 重排 通过 Node 串联，规则过滤用 CEL 表达式
//
// 子包职责见各包文档；serving 层入口在 cmd/shoprecd。
package shoprec

import "github.com/shoprec/shoprec/pipeline"

// 轻量 facade：便于直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
