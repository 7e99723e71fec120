package rerank

import (
	"context"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/pipeline"
)

// TopN 截断候选到前 N 个。
// N <= 0 时使用请求上下文的 TopN；候选不足时原样返回，不补齐也不报错。
type TopN struct {
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	limit := n.N
	if limit <= 0 {
		limit = rctx.Limit()
	}
	if len(candidates) <= limit {
		return candidates, nil
	}
	return candidates[:limit], nil
}
