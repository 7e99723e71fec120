package recall

import (
	"context"
	"sort"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/matrix"
	"github.com/shoprec/shoprec/model"
)

// Collaborative 包装 user-based 协同过滤为召回源。
// 用户不在交互矩阵中时贡献零候选（UNKNOWN_USER 在此吸收）。
type Collaborative struct {
	Model *model.Collaborative
}

func (r *Collaborative) Name() string { return "recall.collaborative" }

func (r *Collaborative) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if r.Model == nil || rctx == nil {
		return nil, nil
	}
	recs, err := r.Model.RecommendUserBased(rctx.UserID, rctx.Limit())
	if err != nil {
		if core.IsUnknownUser(err) {
			return nil, nil
		}
		return nil, err
	}
	return tag(recs, core.SourceCollaborative), nil
}

// Content 包装基于种子商品的内容相似度召回。
// 仅在请求携带种子时出候选；种子不在目录时吸收 NOT_FOUND。
type Content struct {
	Model *model.Content
}

func (r *Content) Name() string { return "recall.content" }

func (r *Content) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if r.Model == nil || !rctx.HasSeed() {
		return nil, nil
	}
	recs, err := r.Model.Recommend(rctx.SeedProductID, rctx.Limit())
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return tag(recs, core.SourceContentBased), nil
}

// Category 在没有种子商品时，按用户历史交互中出现最多的前 3 个类目
// 做内容召回，每个类目取 topN/2 个。
type Category struct {
	Model   *model.Content
	Catalog *catalog.Index
	Matrix  *matrix.Matrix

	// MaxCategories 参与召回的高频类目数，默认 3。
	MaxCategories int
}

func (r *Category) Name() string { return "recall.category" }

func (r *Category) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if r.Model == nil || rctx.HasSeed() {
		return nil, nil
	}

	// topN=1 时配额为 0，类目召回不出候选，交给其他源兜底
	perCategory := rctx.Limit() / 2
	if perCategory < 1 {
		return nil, nil
	}

	var out []*core.Candidate
	for _, cat := range r.preferredCategories(rctx.UserID) {
		for _, p := range r.Model.RecommendByCategory(cat, perCategory) {
			// 类目召回没有模型分数，用商品评分承载排序语义
			out = append(out, &core.Candidate{Product: p, Score: p.Rating, Source: core.SourceCategoryBased})
		}
	}
	return out, nil
}

// preferredCategories 统计用户评过分商品的类目频次，
// 返回前 MaxCategories 个（频次 desc，同频按类目名 asc 保证确定性）。
func (r *Category) preferredCategories(userID int64) []string {
	rated, ok := r.Matrix.RatedProducts(userID)
	if !ok || len(rated) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for productID := range rated {
		if p, ok := r.Catalog.Get(productID); ok && p.Category != "" {
			counts[p.Category]++
		}
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})

	limit := r.MaxCategories
	if limit <= 0 {
		limit = 3
	}
	if len(cats) > limit {
		cats = cats[:limit]
	}
	return cats
}

// Factor 包装矩阵分解模型的评分预测召回。
type Factor struct {
	Model *model.Factor
}

func (r *Factor) Name() string { return "recall.factor" }

func (r *Factor) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if r.Model == nil || rctx == nil {
		return nil, nil
	}
	recs, err := r.Model.Predict(rctx.UserID, rctx.Limit())
	if err != nil {
		if core.IsUnknownUser(err) {
			return nil, nil
		}
		return nil, err
	}
	return tag(recs, core.SourceSVD), nil
}

func tag(recs []model.ScoredProduct, src core.Source) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(recs))
	for _, rec := range recs {
		out = append(out, &core.Candidate{Product: rec.Product, Score: rec.Score, Source: src})
	}
	return out
}
