package matrix

import (
	"reflect"
	"testing"

	"github.com/shoprec/shoprec/core"
)

func TestBuild(t *testing.T) {
	m := Build([]core.Interaction{
		{UserID: 20, ProductID: 101, Rating: 4},
		{UserID: 10, ProductID: 102, Rating: 5},
		{UserID: 20, ProductID: 102, Rating: 3},
	})

	if m.NumUsers() != 2 || m.NumProducts() != 2 {
		t.Fatalf("维度 = %dx%d，期望 2x2", m.NumUsers(), m.NumProducts())
	}
	// 行列按 ID 升序
	if !reflect.DeepEqual(m.Users(), []int64{10, 20}) {
		t.Errorf("Users = %v", m.Users())
	}
	if !reflect.DeepEqual(m.Products(), []int64{101, 102}) {
		t.Errorf("Products = %v", m.Products())
	}

	// 下标映射双射
	for j, pid := range m.Products() {
		idx, ok := m.ProductIndex(pid)
		if !ok || idx != j {
			t.Errorf("ProductIndex(%d) = %d，期望 %d", pid, idx, j)
		}
		if m.ProductAt(j) != pid {
			t.Errorf("ProductAt(%d) = %d，期望 %d", j, m.ProductAt(j), pid)
		}
	}

	// 未评分单元为 0
	if got := m.Rating(0, 0); got != 0 {
		t.Errorf("未评分单元 = %v，期望 0", got)
	}
	if got := m.Rating(1, 0); got != 4 {
		t.Errorf("Rating(1,0) = %v，期望 4", got)
	}
}

// 同一 (user, product) 出现多次时后写覆盖
func TestBuildLastWriteWins(t *testing.T) {
	m := Build([]core.Interaction{
		{UserID: 1, ProductID: 1, Rating: 2},
		{UserID: 1, ProductID: 1, Rating: 5},
	})
	if got := m.Rating(0, 0); got != 5 {
		t.Errorf("重复交互应后写覆盖，实际 %v", got)
	}
}

func TestRatedProducts(t *testing.T) {
	m := Build([]core.Interaction{
		{UserID: 1, ProductID: 10, Rating: 4},
		{UserID: 1, ProductID: 20, Rating: 2},
		{UserID: 2, ProductID: 10, Rating: 5},
	})

	rated, ok := m.RatedProducts(1)
	if !ok {
		t.Fatal("已知用户应命中")
	}
	want := map[int64]float64{10: 4, 20: 2}
	if !reflect.DeepEqual(rated, want) {
		t.Errorf("RatedProducts(1) = %v，期望 %v", rated, want)
	}

	if _, ok := m.RatedProducts(99); ok {
		t.Error("未知用户不应命中")
	}
}

func TestEmpty(t *testing.T) {
	m := Build(nil)
	if !m.Empty() {
		t.Error("空交互表应为 Empty")
	}
	if m.NumUsers() != 0 || m.NumProducts() != 0 {
		t.Errorf("空矩阵维度 = %dx%d", m.NumUsers(), m.NumProducts())
	}
}
