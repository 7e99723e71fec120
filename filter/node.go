package filter

import (
	"context"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/pipeline"
)

// Node 是过滤 Node，可以组合多个过滤器。
// 任何一个过滤器命中，该候选就被移除；
// 过滤器自身出错时跳过该过滤器，不中断请求。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Filters) == 0 || len(candidates) == 0 {
		return candidates, nil
	}

	out := make([]*core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		drop := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, c)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out, nil
}
