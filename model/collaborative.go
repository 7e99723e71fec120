package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/matrix"
)

// CollaborativeConfig 是协同过滤模型的构建参数。
type CollaborativeConfig struct {
	// TopKSimilarUsers user-based 推荐考虑的相似用户数，默认 50。
	TopKSimilarUsers int

	// ItemSimThreshold item-based 推荐的相似度下限，默认 0.1。
	ItemSimThreshold float64
}

func (c CollaborativeConfig) topK() int {
	if c.TopKSimilarUsers <= 0 {
		return 50
	}
	return c.TopKSimilarUsers
}

func (c CollaborativeConfig) threshold() float64 {
	if c.ItemSimThreshold <= 0 {
		return 0.1
	}
	return c.ItemSimThreshold
}

// Collaborative 是协同过滤模型。
//
// 核心思想：
//   - user-based："兴趣相似的用户，喜欢相似的商品"
//   - item-based："被同一批用户喜欢的商品，相互相似"
//
// 构建流程：对交互矩阵的行做余弦相似度得到 user-user 矩阵，
// 对列做余弦相似度得到 item-item 矩阵。矩阵通过行归一化 + 一次
// 稠密乘法得到（A_norm · A_normᵀ），避免逐对循环。
type Collaborative struct {
	idx *catalog.Index
	m   *matrix.Matrix
	cfg CollaborativeConfig

	userSim *mat.Dense // U×U
	itemSim *mat.Dense // P×P
}

// NewCollaborative 构建协同过滤模型。空交互矩阵得到一个
// 对任何用户都返回"无信号"的模型。
func NewCollaborative(idx *catalog.Index, m *matrix.Matrix, cfg CollaborativeConfig) *Collaborative {
	c := &Collaborative{idx: idx, m: m, cfg: cfg}
	if m.Empty() {
		return c
	}

	data := m.Dense()
	rows := normalizeRows(data)
	c.userSim = cosineProduct(rows)

	var t mat.Dense
	t.CloneFrom(data.T())
	c.itemSim = cosineProduct(normalizeRows(&t))
	return c
}

// normalizeRows 返回行 L2 归一化后的副本；零行保持为零。
func normalizeRows(a *mat.Dense) *mat.Dense {
	r, cols := a.Dims()
	out := mat.DenseCopyOf(a)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		var norm float64
		for _, v := range row {
			norm += v * v
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for j := 0; j < cols; j++ {
			row[j] /= norm
		}
	}
	return out
}

// cosineProduct 计算 N · Nᵀ 并把对角线固定为 1（自相似）。
func cosineProduct(n *mat.Dense) *mat.Dense {
	r, _ := n.Dims()
	out := mat.NewDense(r, r, nil)
	out.Mul(n, n.T())
	for i := 0; i < r; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// RecommendUserBased 基于相似用户推荐。
//
// 算法流程：
//  1. 取与目标用户余弦相似度最高的 TopK 个其他用户（排除自己）
//  2. 对"相似用户评过分、目标用户未评分"的每个商品，
//     累加 相似用户评分 × 相似度，再对贡献者取平均
//  3. 按平均分降序取 topN
//
// 候选分数用列下标寻址的定长数组累加，避免逐项的动态查找。
// 用户不在矩阵中返回 UNKNOWN_USER；用户没有任何可用信号时
// 返回空结果而非错误。
func (c *Collaborative) RecommendUserBased(userID int64, topN int) ([]ScoredProduct, error) {
	u, ok := c.m.UserIndex(userID)
	if !ok || c.userSim == nil {
		return nil, errUnknownUser()
	}

	target := c.m.Row(u)
	neighbors := c.topSimilarUsers(u)

	p := c.m.NumProducts()
	sum := make([]float64, p)
	count := make([]int, p)
	for _, nb := range neighbors {
		row := c.m.Row(nb.index)
		for j := 0; j < p; j++ {
			if row[j] > 0 && target[j] == 0 {
				sum[j] += row[j] * nb.score
				count[j]++
			}
		}
	}

	items := make([]scored, 0, p)
	for j := 0; j < p; j++ {
		if count[j] > 0 {
			items = append(items, scored{index: j, score: sum[j] / float64(count[j])})
		}
	}
	return c.toProducts(rankTop(items, topN)), nil
}

// topSimilarUsers 返回与第 u 行相似度为正的 TopK 个其他用户。
func (c *Collaborative) topSimilarUsers(u int) []scored {
	rows := c.m.NumUsers()
	sims := make([]scored, 0, rows-1)
	for v := 0; v < rows; v++ {
		if v == u {
			continue
		}
		if s := c.userSim.At(u, v); s > 0 {
			sims = append(sims, scored{index: v, score: s})
		}
	}
	return rankTop(sims, c.cfg.topK())
}

// RecommendItemBased 基于商品相似度推荐。
//
// 对目标用户评过分的每个种子商品，找出相似度超过阈值且用户未评分的
// 候选商品，分数 = 用户对种子的评分 × item-item 相似度，
// 跨种子取平均后降序取 topN。
func (c *Collaborative) RecommendItemBased(userID int64, topN int) ([]ScoredProduct, error) {
	u, ok := c.m.UserIndex(userID)
	if !ok || c.itemSim == nil {
		return nil, errUnknownUser()
	}

	target := c.m.Row(u)
	p := c.m.NumProducts()
	sum := make([]float64, p)
	count := make([]int, p)
	threshold := c.cfg.threshold()

	for seedCol := 0; seedCol < p; seedCol++ {
		seedRating := target[seedCol]
		if seedRating == 0 {
			continue
		}
		for j := 0; j < p; j++ {
			if target[j] != 0 {
				continue
			}
			if s := c.itemSim.At(seedCol, j); s > threshold {
				sum[j] += seedRating * s
				count[j]++
			}
		}
	}

	items := make([]scored, 0, p)
	for j := 0; j < p; j++ {
		if count[j] > 0 {
			items = append(items, scored{index: j, score: sum[j] / float64(count[j])})
		}
	}
	return c.toProducts(rankTop(items, topN)), nil
}

// UserSimilarity 返回两个用户行下标间的余弦相似度（供测试/诊断）。
func (c *Collaborative) UserSimilarity(i, j int) float64 {
	if c.userSim == nil {
		return 0
	}
	return c.userSim.At(i, j)
}

// ItemSimilarity 返回两个商品列下标间的余弦相似度（供测试/诊断）。
func (c *Collaborative) ItemSimilarity(i, j int) float64 {
	if c.itemSim == nil {
		return 0
	}
	return c.itemSim.At(i, j)
}

// toProducts 把列下标候选映射为目录商品；不在目录中的商品跳过。
func (c *Collaborative) toProducts(items []scored) []ScoredProduct {
	out := make([]ScoredProduct, 0, len(items))
	for _, it := range items {
		if p, ok := c.idx.Get(c.m.ProductAt(it.index)); ok {
			out = append(out, ScoredProduct{Product: p, Score: it.score})
		}
	}
	return out
}

func errUnknownUser() error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeUnknownUser, "collaborative: user not in interaction matrix")
}
