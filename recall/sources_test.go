package recall

import (
	"context"
	"testing"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/matrix"
	"github.com/shoprec/shoprec/model"
)

func categorySource() *Category {
	idx := catalog.New([]core.Product{
		{ID: 1, Name: "Shampoo", Category: "Hair Care", Rating: 4.5, ReviewCount: 20},
		{ID: 2, Name: "Conditioner", Category: "Hair Care", Rating: 4.2, ReviewCount: 15},
		{ID: 3, Name: "Sunscreen", Category: "Skin Care", Rating: 4.8, ReviewCount: 40},
	})
	m := matrix.Build([]core.Interaction{
		{UserID: 7, ProductID: 1, Rating: 5},
		{UserID: 7, ProductID: 2, Rating: 4},
	})
	return &Category{Model: model.NewContent(idx, model.ContentConfig{}), Catalog: idx, Matrix: m}
}

func TestCategoryRecall(t *testing.T) {
	src := categorySource()

	got, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 7, TopN: 4})
	if err != nil {
		t.Fatalf("Recall 失败: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("高频类目召回没有返回候选")
	}
	for _, c := range got {
		if c.Product.Category != "Hair Care" {
			t.Errorf("商品 %d 类目 = %q，期望用户高频类目 Hair Care", c.Product.ID, c.Product.Category)
		}
		if c.Source != core.SourceCategoryBased {
			t.Errorf("来源 = %s", c.Source)
		}
	}
}

// topN=1 时每类目配额 1/2 取整为 0，类目源不出候选
func TestCategoryRecallQuotaZero(t *testing.T) {
	src := categorySource()

	got, err := src.Recall(context.Background(), &core.RecommendContext{UserID: 7, TopN: 1})
	if err != nil {
		t.Fatalf("Recall 失败: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("配额为 0 时返回了 %d 条候选: %+v", len(got), got)
	}
}
