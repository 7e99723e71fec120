package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按源顺序合并。
//
// 合并规则：结果先按 Sources 的声明顺序拼接，再按商品 ID 去重，
// 保留首次出现的候选 —— 源顺序就是去重时的优先级
//（协同过滤 > 内容/类目 > 矩阵分解）。
//
// 单个召回源出错时只丢弃该源的贡献，不中断其他源。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 每个召回源的超时时间，0 表示不限
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 按源下标收集结果，合并阶段保持声明顺序
	results := make([][]*core.Candidate, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, src := range n.Sources {
		i, src := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			candidates, err := src.Recall(recallCtx, rctx)
			if err != nil {
				// 单源失败退化为该源零贡献
				return nil
			}
			results[i] = candidates
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return mergeFirst(results), nil
}

// mergeFirst 按商品 ID 去重，保留首个出现的候选。
func mergeFirst(results [][]*core.Candidate) []*core.Candidate {
	var total int
	for _, r := range results {
		total += len(r)
	}
	seen := make(map[int64]struct{}, total)
	out := make([]*core.Candidate, 0, total)
	for _, r := range results {
		for _, c := range r {
			if c == nil || c.Product == nil {
				continue
			}
			if _, ok := seen[c.Product.ID]; ok {
				continue
			}
			seen[c.Product.ID] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
