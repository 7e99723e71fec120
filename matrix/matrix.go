// Package matrix 构建稠密的用户×商品评分矩阵。
//
// 行 = 去重后的用户 ID（升序），列 = 去重后的商品 ID（升序），
// 单元格 = 评分，未评分为 0。行/列下标与用户/商品 ID 一一对应（双射）。
// 矩阵在数据重载时整体重建，从不原地修改。
package matrix

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/shoprec/shoprec/core"
)

// Matrix 是构建完成后的只读交互矩阵。
type Matrix struct {
	users    []int64 // 行下标 -> 用户 ID
	products []int64 // 列下标 -> 商品 ID

	userIndex    map[int64]int
	productIndex map[int64]int

	data *mat.Dense // users × products
}

// Build 从交互表构建矩阵。
// 同一 (用户, 商品) 的重复记录按输入顺序后写覆盖。
// 交互表为空时返回 0×0 矩阵（各查询方法表现为"未知用户"）。
func Build(interactions []core.Interaction) *Matrix {
	userSet := make(map[int64]struct{})
	productSet := make(map[int64]struct{})
	for _, it := range interactions {
		userSet[it.UserID] = struct{}{}
		productSet[it.ProductID] = struct{}{}
	}

	m := &Matrix{
		users:        sortedIDs(userSet),
		products:     sortedIDs(productSet),
		userIndex:    make(map[int64]int, len(userSet)),
		productIndex: make(map[int64]int, len(productSet)),
	}
	for i, id := range m.users {
		m.userIndex[id] = i
	}
	for j, id := range m.products {
		m.productIndex[id] = j
	}

	if len(m.users) == 0 || len(m.products) == 0 {
		return m
	}

	m.data = mat.NewDense(len(m.users), len(m.products), nil)
	for _, it := range interactions {
		m.data.Set(m.userIndex[it.UserID], m.productIndex[it.ProductID], it.Rating)
	}
	return m
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NumUsers 返回行数。
func (m *Matrix) NumUsers() int { return len(m.users) }

// NumProducts 返回列数。
func (m *Matrix) NumProducts() int { return len(m.products) }

// Empty 判断矩阵是否没有任何交互。
func (m *Matrix) Empty() bool { return m.data == nil }

// Users 返回升序的用户 ID 列表（只读共享）。
func (m *Matrix) Users() []int64 { return m.users }

// Products 返回升序的商品 ID 列表（只读共享）。
func (m *Matrix) Products() []int64 { return m.products }

// UserIndex 返回用户 ID 对应的行下标。
func (m *Matrix) UserIndex(userID int64) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// ProductIndex 返回商品 ID 对应的列下标。
func (m *Matrix) ProductIndex(productID int64) (int, bool) {
	j, ok := m.productIndex[productID]
	return j, ok
}

// ProductAt 返回列下标对应的商品 ID。
func (m *Matrix) ProductAt(j int) int64 { return m.products[j] }

// Rating 返回 (行, 列) 的评分，未评分为 0。
func (m *Matrix) Rating(i, j int) float64 {
	if m.data == nil {
		return 0
	}
	return m.data.At(i, j)
}

// Row 返回第 i 行的评分副本。
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, len(m.products))
	if m.data != nil {
		mat.Row(out, i, m.data)
	}
	return out
}

// Dense 返回底层稠密矩阵（只读，供相似度/分解模型使用）。
func (m *Matrix) Dense() *mat.Dense { return m.data }

// RatedProducts 返回用户评过分的商品 ID 及评分。
// 用户不在矩阵中时返回 (nil, false)。
func (m *Matrix) RatedProducts(userID int64) (map[int64]float64, bool) {
	i, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	out := make(map[int64]float64)
	for j := range m.products {
		if r := m.Rating(i, j); r > 0 {
			out[m.products[j]] = r
		}
	}
	return out, true
}
