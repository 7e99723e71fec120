package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/matrix"
)

// Factor 是隐因子（矩阵分解）模型。
//
// 核心思想：把用户×商品评分矩阵分解为低秩的用户隐向量和商品隐向量，
// 预测评分 = 用户隐向量 · 商品隐向量。
//
// 构建采用截断 SVD：A ≈ U_k Σ_k V_kᵀ，
// 用户因子 = U_k Σ_k（users×k），商品因子 = V_kᵀ（k×products）。
type Factor struct {
	idx *catalog.Index
	m   *matrix.Matrix
	k   int

	userFactors *mat.Dense // users × k
	itemFactors *mat.Dense // k × products
}

// NewFactor 对交互矩阵做秩 k 的截断 SVD。
// k 必须满足 0 < k <= min(#users, #products)，否则返回
// INVALID_CONFIGURATION —— 这是构建期致命错误，必须调低 k 后重建。
func NewFactor(idx *catalog.Index, m *matrix.Matrix, k int) (*Factor, error) {
	bound := m.NumUsers()
	if m.NumProducts() < bound {
		bound = m.NumProducts()
	}
	if k <= 0 || k > bound {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidConfiguration,
			fmt.Sprintf("factor: rank k=%d out of range (0, %d]", k, bound))
	}

	var svd mat.SVD
	if ok := svd.Factorize(m.Dense(), mat.SVDThin); !ok {
		return nil, fmt.Errorf("factor: svd failed to converge")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	users := m.NumUsers()
	products := m.NumProducts()

	uf := mat.NewDense(users, k, nil)
	for i := 0; i < users; i++ {
		for c := 0; c < k; c++ {
			uf.Set(i, c, u.At(i, c)*values[c])
		}
	}
	itf := mat.NewDense(k, products, nil)
	for c := 0; c < k; c++ {
		for j := 0; j < products; j++ {
			itf.Set(c, j, v.At(j, c))
		}
	}

	return &Factor{idx: idx, m: m, k: k, userFactors: uf, itemFactors: itf}, nil
}

// Rank 返回分解的秩 k。
func (f *Factor) Rank() int { return f.k }

// Predict 重建目标用户对全部商品的预测评分，
// 只保留源矩阵中未评分（单元格为 0）的商品，按预测分降序取 topN。
// 用户不在矩阵中返回 UNKNOWN_USER。
func (f *Factor) Predict(userID int64, topN int) ([]ScoredProduct, error) {
	u, ok := f.m.UserIndex(userID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeUnknownUser, "factor: user not in interaction matrix")
	}

	products := f.m.NumProducts()
	items := make([]scored, 0, products)
	for j := 0; j < products; j++ {
		if f.m.Rating(u, j) != 0 {
			continue // 已评分的单元格不参与候选
		}
		var dot float64
		for c := 0; c < f.k; c++ {
			dot += f.userFactors.At(u, c) * f.itemFactors.At(c, j)
		}
		items = append(items, scored{index: j, score: dot})
	}

	ranked := rankTop(items, topN)
	out := make([]ScoredProduct, 0, len(ranked))
	for _, it := range ranked {
		if p, ok := f.idx.Get(f.m.ProductAt(it.index)); ok {
			out = append(out, ScoredProduct{Product: p, Score: it.score})
		}
	}
	return out, nil
}
