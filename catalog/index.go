// Package catalog 持有不可变的商品目录索引。
// 构建一次、只读共享；重载数据时整体重建，不做原地更新。
package catalog

import (
	"sort"
	"strings"

	"github.com/shoprec/shoprec/core"
)

// Index 是商品目录的内存索引：目录顺序的商品切片 + ID 到稠密下标的双射。
type Index struct {
	products []*core.Product
	byID     map[int64]int // 商品 ID -> products 下标
}

// New 从商品列表构建索引。重复 ID 保留首次出现的记录。
func New(products []core.Product) *Index {
	idx := &Index{
		products: make([]*core.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for i := range products {
		p := products[i]
		if _, ok := idx.byID[p.ID]; ok {
			continue
		}
		idx.byID[p.ID] = len(idx.products)
		idx.products = append(idx.products, &p)
	}
	return idx
}

// Len 返回目录内商品数。
func (x *Index) Len() int { return len(x.products) }

// Get 按 ID 查找商品。
func (x *Index) Get(id int64) (*core.Product, bool) {
	i, ok := x.byID[id]
	if !ok {
		return nil, false
	}
	return x.products[i], true
}

// Pos 返回商品 ID 对应的稠密下标（目录顺序）。
func (x *Index) Pos(id int64) (int, bool) {
	i, ok := x.byID[id]
	return i, ok
}

// At 按稠密下标取商品。
func (x *Index) At(i int) *core.Product { return x.products[i] }

// All 返回目录顺序的全部商品。返回的切片是只读共享的，调用方不得修改。
func (x *Index) All() []*core.Product { return x.products }

// ByCategory 按类目做大小写不敏感的子串匹配，
// 命中商品按 (评分 desc, 评论数 desc) 排序。无命中返回空切片。
func (x *Index) ByCategory(category string) []*core.Product {
	needle := strings.ToLower(category)
	var out []*core.Product
	for _, p := range x.products {
		if strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	SortByRating(out)
	return out
}

// TopRated 返回全目录按 (评分 desc, 评论数 desc) 的前 n 个商品。
// n <= 0 或超过目录大小时返回全部。
func (x *Index) TopRated(n int) []*core.Product {
	out := make([]*core.Product, len(x.products))
	copy(out, x.products)
	SortByRating(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Search 按商品名做大小写不敏感的子串搜索。
func (x *Index) Search(query string, limit int) []*core.Product {
	needle := strings.ToLower(query)
	var out []*core.Product
	for _, p := range x.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Filter 按类目/品牌子串过滤并按评分排序，limit <= 0 表示不截断。
func (x *Index) Filter(category, brand string, limit int) []*core.Product {
	cat := strings.ToLower(category)
	br := strings.ToLower(brand)
	var out []*core.Product
	for _, p := range x.products {
		if cat != "" && !strings.Contains(strings.ToLower(p.Category), cat) {
			continue
		}
		if br != "" && !strings.Contains(strings.ToLower(p.Brand), br) {
			continue
		}
		out = append(out, p)
	}
	SortByRating(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories 返回按出现次数降序的前 n 个类目名。
func (x *Index) Categories(n int) []string {
	return x.topValues(n, func(p *core.Product) string { return p.Category })
}

// Brands 返回按出现次数降序的前 n 个品牌名。
func (x *Index) Brands(n int) []string {
	return x.topValues(n, func(p *core.Product) string { return p.Brand })
}

func (x *Index) topValues(n int, key func(*core.Product) string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range x.products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	// 次数相同保持首次出现顺序
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n > 0 && len(order) > n {
		order = order[:n]
	}
	return order
}

// SortByRating 按 (评分 desc, 评论数 desc) 稳定排序，平局保持原顺序。
func SortByRating(ps []*core.Product) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Rating != ps[j].Rating {
			return ps[i].Rating > ps[j].Rating
		}
		return ps[i].ReviewCount > ps[j].ReviewCount
	})
}
