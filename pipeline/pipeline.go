// Package pipeline 把推荐逻辑拆成可组合的 Node 链
//（召回 → 过滤 → 排序 → 重排）。
package pipeline

import (
	"context"

	"github.com/shoprec/shoprec/core"
)

// Pipeline 顺序执行 Node 链，前一个 Node 的输出是后一个的输入。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := candidates
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
