// Package engine 实现混合融合推荐引擎：
// 并发查询协同过滤、内容/类目、矩阵分解三类召回源，
// 按源顺序去重合并，按 (置信度, 评分) 排序截断；
// 所有来源都无信号时回落到全目录兜底排序。
package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/filter"
	"github.com/shoprec/shoprec/matrix"
	"github.com/shoprec/shoprec/model"
	"github.com/shoprec/shoprec/pipeline"
	"github.com/shoprec/shoprec/recall"
	"github.com/shoprec/shoprec/rerank"
)

// Config 是引擎的构建参数。
type Config struct {
	// MaxFeatures 内容模型词表上限，默认 5000。
	MaxFeatures int

	// SVDRank 矩阵分解的目标秩，默认 50。
	// 实际秩取 min(SVDRank, #users, #products)；交互矩阵为空时
	// 跳过分解模型（该来源贡献零候选）。
	SVDRank int

	// TopKSimilarUsers / ItemSimThreshold 透传给协同过滤模型。
	TopKSimilarUsers int
	ItemSimThreshold float64

	// FilterRules 候选过滤的 CEL 规则（表达式为真保留）。
	// 规则非法是构建期致命错误。
	FilterRules []string

	// Store / TopRatedKey 可选：兜底召回优先读取的预计算榜单。
	Store       core.KeyValueStore
	TopRatedKey string
}

func (c Config) svdRank() int {
	if c.SVDRank <= 0 {
		return 50
	}
	return c.SVDRank
}

// Engine 是一次构建产出的完整模型快照：目录、交互矩阵、三类模型与
// 融合管线。构建完成后只读，任意并发读不加锁；重载通过 Recommender
// 整体换掉快照，读方永远看到完整一致的状态。
type Engine struct {
	idx     *catalog.Index
	m       *matrix.Matrix
	content *model.Content
	collab  *model.Collaborative
	factor  *model.Factor // 交互矩阵为空时为 nil

	fanout   *recall.Fanout
	filters  *filter.Node
	ranker   *pipeline.Pipeline
	fallback *recall.TopRated
}

// Build 从目录与交互表构建引擎快照。
// 三类模型相互独立，构建时并行；返回前全部就绪。
func Build(idx *catalog.Index, interactions []core.Interaction, cfg Config) (*Engine, error) {
	e := &Engine{idx: idx, m: matrix.Build(interactions)}

	eg := new(errgroup.Group)
	eg.Go(func() error {
		e.content = model.NewContent(idx, model.ContentConfig{MaxFeatures: cfg.MaxFeatures})
		return nil
	})
	eg.Go(func() error {
		e.collab = model.NewCollaborative(idx, e.m, model.CollaborativeConfig{
			TopKSimilarUsers: cfg.TopKSimilarUsers,
			ItemSimThreshold: cfg.ItemSimThreshold,
		})
		return nil
	})
	eg.Go(func() error {
		bound := e.m.NumUsers()
		if e.m.NumProducts() < bound {
			bound = e.m.NumProducts()
		}
		if bound == 0 {
			return nil // 没有交互数据，分解模型缺席
		}
		k := cfg.svdRank()
		if k > bound {
			k = bound
		}
		f, err := model.NewFactor(idx, e.m, k)
		if err != nil {
			return err
		}
		e.factor = f
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 源顺序即去重优先级：协同过滤 > 内容 > 类目 > SVD
	e.fanout = &recall.Fanout{Sources: []recall.Source{
		&recall.Collaborative{Model: e.collab},
		&recall.Content{Model: e.content},
		&recall.Category{Model: e.content, Catalog: idx, Matrix: e.m},
		&recall.Factor{Model: e.factor},
	}}

	filters := make([]filter.Filter, 0, len(cfg.FilterRules))
	for _, expr := range cfg.FilterRules {
		rule, err := filter.NewRule(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, rule)
	}
	e.filters = &filter.Node{Filters: filters}

	e.ranker = &pipeline.Pipeline{Nodes: []pipeline.Node{
		&rerank.Confidence{},
		&rerank.TopN{},
	}}
	e.fallback = &recall.TopRated{Catalog: idx, Store: cfg.Store, Key: cfg.TopRatedKey}
	return e, nil
}

// Recommend 返回目标用户的混合推荐。
//
// 个性化来源全部无信号（新用户、未知种子等）时回落到全目录兜底，
// 因此只要目录非空就必定返回 1..TopN 个候选；
// 只有目录为空才返回 NO_RECOMMENDATIONS。
func (e *Engine) Recommend(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if e.idx.Len() == 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNoRecommendations, "engine: catalog is empty")
	}

	merged, err := e.fanout.Process(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	candidates, err := e.filters.Process(ctx, rctx, merged)
	if err != nil {
		return nil, err
	}

	// 个性化信号为空（或全被规则滤掉）走兜底；兜底不再过规则
	if len(candidates) == 0 {
		candidates, err = e.fallback.Recall(ctx, rctx)
		if err != nil {
			return nil, err
		}
	}

	return e.ranker.Run(ctx, rctx, candidates)
}

// SimilarProducts 返回与种子商品内容最相似的 topN 个商品。
// 种子不存在时返回 NOT_FOUND（由 serving 层映射为 404）。
func (e *Engine) SimilarProducts(seedID int64, topN int) ([]*core.Candidate, error) {
	recs, err := e.content.Recommend(seedID, topN)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Candidate, 0, len(recs))
	for _, rec := range recs {
		out = append(out, &core.Candidate{Product: rec.Product, Score: rec.Score, Source: core.SourceContentBased})
	}
	return out, nil
}

// Catalog 返回目录索引（只读）。
func (e *Engine) Catalog() *catalog.Index { return e.idx }

// Matrix 返回交互矩阵（只读）。
func (e *Engine) Matrix() *matrix.Matrix { return e.m }

// Users 返回交互矩阵中的全部用户 ID（升序）。
func (e *Engine) Users() []int64 { return e.m.Users() }

// UserStats 是 serving 层的用户画像摘要。
type UserStats struct {
	UserID              int64    `json:"user_id"`
	TotalInteractions   int      `json:"total_interactions"`
	AvgRating           float64  `json:"avg_rating"`
	PreferredCategories []string `json:"preferred_categories"`
}

// Stats 汇总单个用户的交互画像；用户不在矩阵中返回 UNKNOWN_USER。
func (e *Engine) Stats(userID int64) (*UserStats, error) {
	rated, ok := e.m.RatedProducts(userID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnknownUser, "engine: user not in interaction matrix")
	}

	stats := &UserStats{UserID: userID, TotalInteractions: len(rated)}
	var sum float64
	counts := make(map[string]int)
	for productID, rating := range rated {
		sum += rating
		if p, ok := e.idx.Get(productID); ok && p.Category != "" {
			counts[p.Category]++
		}
	}
	if len(rated) > 0 {
		stats.AvgRating = sum / float64(len(rated))
	}
	stats.PreferredCategories = topCategories(counts, 5)
	return stats, nil
}

func topCategories(counts map[string]int, n int) []string {
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	// 频次 desc，同频按名字 asc
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}
