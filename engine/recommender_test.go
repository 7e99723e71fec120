package engine

import (
	"context"
	"testing"

	"github.com/shoprec/shoprec/core"
)

func TestRecommenderLifecycle(t *testing.T) {
	rec := NewRecommender(Config{})

	// 首次 Rebuild 前未就绪
	if _, ok := rec.Engine(); ok {
		t.Error("未构建时 Engine() 应返回未就绪")
	}

	if err := rec.Rebuild(testProducts(), testInteractions()); err != nil {
		t.Fatalf("Rebuild 失败: %v", err)
	}
	eng, ok := rec.Engine()
	if !ok {
		t.Fatal("Rebuild 后应就绪")
	}
	if eng.Catalog().Len() != len(testProducts()) {
		t.Errorf("目录大小 = %d", eng.Catalog().Len())
	}
}

// Rebuild 失败时保留旧快照继续服务
func TestRecommenderKeepsSnapshotOnFailure(t *testing.T) {
	rec := NewRecommender(Config{})
	if err := rec.Rebuild(testProducts(), testInteractions()); err != nil {
		t.Fatalf("Rebuild 失败: %v", err)
	}
	old, _ := rec.Engine()

	// 带非法过滤规则的配置触发构建失败
	bad := NewRecommender(Config{FilterRules: []string{"&&&"}})
	if err := bad.Rebuild(testProducts(), testInteractions()); err == nil {
		t.Fatal("非法配置 Rebuild 应失败")
	}
	if _, ok := bad.Engine(); ok {
		t.Error("从未成功构建过的 Recommender 不应就绪")
	}

	// 原 Recommender 的快照不受影响
	eng, ok := rec.Engine()
	if !ok || eng != old {
		t.Error("成功构建的快照应保持可用")
	}
	if _, err := eng.Recommend(context.Background(), &core.RecommendContext{UserID: 1}); err != nil {
		t.Errorf("旧快照推荐失败: %v", err)
	}
}

// 重载换入新目录后读方立即看到新快照
func TestRecommenderSwap(t *testing.T) {
	rec := NewRecommender(Config{})
	if err := rec.Rebuild(testProducts(), testInteractions()); err != nil {
		t.Fatalf("Rebuild 失败: %v", err)
	}

	smaller := testProducts()[:2]
	if err := rec.Rebuild(smaller, nil); err != nil {
		t.Fatalf("二次 Rebuild 失败: %v", err)
	}
	eng, _ := rec.Engine()
	if eng.Catalog().Len() != 2 {
		t.Errorf("新快照目录大小 = %d，期望 2", eng.Catalog().Len())
	}
}
