package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shoprec/shoprec/core"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("未写入的 key 应返回 store not found，实际 %v", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Error("删除后应 miss")
	}
}

func TestMemoryTTL(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "short", []byte("v"), 1); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	if _, err := m.Get(ctx, "short"); err != nil {
		t.Errorf("过期前应命中: %v", err)
	}

	// 过期判断在读路径上，不依赖后台清理节拍
	time.Sleep(1100 * time.Millisecond)
	if _, err := m.Get(ctx, "short"); !core.IsStoreNotFound(err) {
		t.Errorf("过期后应 miss，实际 %v", err)
	}
}

func TestMemoryZSet(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	for member, score := range map[string]float64{"a": 1, "b": 3, "c": 2} {
		if err := m.ZAdd(ctx, "rank", score, member); err != nil {
			t.Fatalf("ZAdd 失败: %v", err)
		}
	}

	got, err := m.ZRange(ctx, "rank", 0, -1)
	if err != nil {
		t.Fatalf("ZRange 失败: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("ZRange = %v，期望按 score 降序", got)
	}

	// 区间截取
	got, _ = m.ZRange(ctx, "rank", 0, 1)
	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("ZRange(0,1) = %v", got)
	}

	// 不存在的 key 返回空
	if got, _ := m.ZRange(ctx, "missing", 0, -1); len(got) != 0 {
		t.Errorf("不存在的 zset 应返回空，实际 %v", got)
	}

	// 重复 ZAdd 更新 score
	m.ZAdd(ctx, "rank", 10, "a")
	got, _ = m.ZRange(ctx, "rank", 0, 0)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("更新 score 后 = %v", got)
	}
}
