package catalog

import (
	"reflect"
	"testing"

	"github.com/shoprec/shoprec/core"
)

func testProducts() []core.Product {
	return []core.Product{
		{ID: 1, Name: "Shampoo Pro", Brand: "Acme", Category: "Hair Care", Rating: 4.5, ReviewCount: 100},
		{ID: 2, Name: "Face Cream", Brand: "Glow", Category: "Skin Care", Rating: 4.8, ReviewCount: 50},
		{ID: 3, Name: "Hand Soap", Brand: "Acme", Category: "Skin Care", Rating: 4.8, ReviewCount: 200},
		{ID: 4, Name: "Hair Gel", Brand: "Styler", Category: "Hair Care", Rating: 3.2, ReviewCount: 10},
	}
}

// 重复 ID 保留第一条
func TestNewDedup(t *testing.T) {
	products := append(testProducts(), core.Product{ID: 1, Name: "Duplicate"})
	idx := New(products)

	if idx.Len() != 4 {
		t.Fatalf("期望 4 个商品，实际 %d", idx.Len())
	}
	p, ok := idx.Get(1)
	if !ok || p.Name != "Shampoo Pro" {
		t.Errorf("重复 ID 应保留第一条，实际 %+v", p)
	}
}

func TestGetAndPos(t *testing.T) {
	idx := New(testProducts())

	if _, ok := idx.Get(999); ok {
		t.Error("不存在的 ID 不应命中")
	}
	pos, ok := idx.Pos(3)
	if !ok || pos != 2 {
		t.Errorf("Pos(3) = %d, %v，期望 2, true", pos, ok)
	}
	if got := idx.At(pos).ID; got != 3 {
		t.Errorf("At(%d).ID = %d，期望 3", pos, got)
	}
}

// 热门排序：评分降序，同分按评论数降序
func TestTopRated(t *testing.T) {
	idx := New(testProducts())

	got := idx.TopRated(3)
	wantIDs := []int64{3, 2, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("期望 %d 条，实际 %d", len(wantIDs), len(got))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("第 %d 位 = %d，期望 %d", i, got[i].ID, want)
		}
	}
}

func TestSearch(t *testing.T) {
	idx := New(testProducts())

	tests := []struct {
		name  string
		query string
		limit int
		want  int
	}{
		{"大小写不敏感", "HAIR", 10, 2},
		{"截断", "a", 2, 2},
		{"无命中", "zzz", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Search(tt.query, tt.limit); len(got) != tt.want {
				t.Errorf("Search(%q, %d) 返回 %d 条，期望 %d", tt.query, tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	idx := New(testProducts())

	got := idx.Filter("skin", "", 10)
	if len(got) != 2 {
		t.Fatalf("按类目过滤返回 %d 条，期望 2", len(got))
	}
	// 结果按评分排序
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Errorf("过滤结果顺序错误: %d, %d", got[0].ID, got[1].ID)
	}

	got = idx.Filter("skin", "glow", 10)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("类目+品牌过滤结果错误: %+v", got)
	}
}

// 类目/品牌按出现频次降序，同频保持首见顺序
func TestCategoriesAndBrands(t *testing.T) {
	idx := New(testProducts())

	if got := idx.Categories(10); !reflect.DeepEqual(got, []string{"Hair Care", "Skin Care"}) {
		t.Errorf("Categories = %v", got)
	}
	if got := idx.Brands(1); !reflect.DeepEqual(got, []string{"Acme"}) {
		t.Errorf("Brands(1) = %v", got)
	}
}

func TestEmptyIndex(t *testing.T) {
	idx := New(nil)
	if idx.Len() != 0 {
		t.Fatalf("空目录 Len = %d", idx.Len())
	}
	if got := idx.TopRated(5); len(got) != 0 {
		t.Errorf("空目录 TopRated 应为空，实际 %d 条", len(got))
	}
}
