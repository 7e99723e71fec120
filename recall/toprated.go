package recall

import (
	"context"
	"strconv"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
)

// TopRated 是全目录兜底召回：按 (评分 desc, 评论数 desc) 取 TopN。
//
// 支持从 KeyValueStore 的有序集合读取预计算榜单（例如离线任务写入的
// "top:products"），miss 或未配置 Store 时直接从目录现算。
// 目录非空时该召回源必定出候选，是融合引擎"永不失败"的保证。
type TopRated struct {
	Catalog *catalog.Index

	Store core.KeyValueStore // 可选
	Key   string             // 榜单 key，例如 "top:products"
}

func (r *TopRated) Name() string { return "recall.toprated" }

func (r *TopRated) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	limit := rctx.Limit()

	if r.Store != nil && r.Key != "" {
		if out := r.fromStore(ctx, limit); len(out) > 0 {
			return out, nil
		}
	}

	products := r.Catalog.TopRated(limit)
	out := make([]*core.Candidate, 0, len(products))
	for _, p := range products {
		out = append(out, &core.Candidate{Product: p, Score: p.Rating, Source: core.SourceTopRated})
	}
	return out, nil
}

// fromStore 读取预计算榜单；任何失败都静默回落到现算路径。
// zset 只提供候选集合，最终顺序仍按 (评分 desc, 评论数 desc) 排：
// zset 分数通常只有评分，同分商品的评论数平局在这里补齐。
func (r *TopRated) fromStore(ctx context.Context, limit int) []*core.Candidate {
	members, err := r.Store.ZRange(ctx, r.Key, 0, int64(limit-1))
	if err != nil || len(members) == 0 {
		return nil
	}
	products := make([]*core.Product, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		if p, ok := r.Catalog.Get(id); ok {
			products = append(products, p)
		}
	}
	catalog.SortByRating(products)
	out := make([]*core.Candidate, 0, len(products))
	for _, p := range products {
		out = append(out, &core.Candidate{Product: p, Score: p.Rating, Source: core.SourceTopRated})
	}
	return out
}
