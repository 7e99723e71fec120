package model

import (
	"testing"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/matrix"
)

func factorMatrix() *matrix.Matrix {
	return matrix.Build([]core.Interaction{
		{UserID: 1, ProductID: 101, Rating: 5},
		{UserID: 1, ProductID: 102, Rating: 3},
		{UserID: 2, ProductID: 101, Rating: 4},
		{UserID: 2, ProductID: 103, Rating: 2},
		{UserID: 3, ProductID: 102, Rating: 5},
		{UserID: 3, ProductID: 103, Rating: 4},
	})
}

func TestNewFactorRankBounds(t *testing.T) {
	idx := cfCatalog()
	m := factorMatrix() // 3×3

	tests := []struct {
		name    string
		k       int
		wantErr bool
	}{
		{"k=0 非法", 0, true},
		{"k 为负非法", -1, true},
		{"k 超过 min(用户数, 商品数)", 4, true},
		{"k 取下界", 1, false},
		{"k 取上界", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactor(idx, m, tt.k)
			if tt.wantErr {
				if !core.IsInvalidConfiguration(err) {
					t.Errorf("期望 INVALID_CONFIGURATION，实际 %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewFactor(k=%d) 失败: %v", tt.k, err)
			}
		})
	}
}

// 已评分的单元格不参与候选，只重建零单元格
func TestFactorPredictZeroCellsOnly(t *testing.T) {
	f, err := NewFactor(cfCatalog(), factorMatrix(), 2)
	if err != nil {
		t.Fatalf("NewFactor 失败: %v", err)
	}

	recs, err := f.Predict(1, 10)
	if err != nil {
		t.Fatalf("Predict 失败: %v", err)
	}
	// 用户 1 已评 101/102，唯一的零单元格是 103
	if len(recs) != 1 {
		t.Fatalf("返回 %d 条，期望 1", len(recs))
	}
	if recs[0].Product.ID != 103 {
		t.Errorf("候选 = %d，期望 103", recs[0].Product.ID)
	}
}

func TestFactorPredictUnknownUser(t *testing.T) {
	f, err := NewFactor(cfCatalog(), factorMatrix(), 2)
	if err != nil {
		t.Fatalf("NewFactor 失败: %v", err)
	}
	if _, err := f.Predict(99, 5); !core.IsUnknownUser(err) {
		t.Errorf("未知用户应返回 UNKNOWN_USER，实际 %v", err)
	}
}

func TestFactorRank(t *testing.T) {
	f, err := NewFactor(cfCatalog(), factorMatrix(), 2)
	if err != nil {
		t.Fatalf("NewFactor 失败: %v", err)
	}
	if f.Rank() != 2 {
		t.Errorf("Rank = %d，期望 2", f.Rank())
	}
}

// 全评分用户没有零单元格，得到空候选而非错误
func TestFactorPredictFullyRatedUser(t *testing.T) {
	m := matrix.Build([]core.Interaction{
		{UserID: 1, ProductID: 101, Rating: 5},
		{UserID: 1, ProductID: 102, Rating: 3},
		{UserID: 2, ProductID: 101, Rating: 4},
	})
	f, err := NewFactor(catalog.New([]core.Product{{ID: 101}, {ID: 102}}), m, 2)
	if err != nil {
		t.Fatalf("NewFactor 失败: %v", err)
	}
	recs, err := f.Predict(1, 5)
	if err != nil {
		t.Fatalf("Predict 失败: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("全评分用户应得到空候选，实际 %d 条", len(recs))
	}
}
