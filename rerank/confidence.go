// Package rerank 提供排序与截断 Node。
package rerank

import (
	"context"
	"sort"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/pipeline"
)

// Confidence 按 (来源置信度 desc, 商品评分 desc) 对候选排序。
// 置信度是融合异构来源时的第一排序键；稳定排序保证
// 同来源、同评分的候选维持召回顺序。
type Confidence struct{}

func (n *Confidence) Name() string        { return "rerank.confidence" }
func (n *Confidence) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Confidence) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i].Confidence(), candidates[j].Confidence()
		if ci != cj {
			return ci > cj
		}
		return candidates[i].Product.Rating > candidates[j].Product.Rating
	})
	return candidates, nil
}
