package engine

import (
	"sync"
	"sync/atomic"

	"github.com/shoprec/shoprec/catalog"
	"github.com/shoprec/shoprec/core"
)

// Recommender 是引擎快照的生命周期持有者。
//
// 启动（或重载）时通过 Rebuild 构建一个完整的新 Engine，
// 构建成功后原子换入；构建失败时保留旧快照继续服务。
// 读方通过 Engine() 拿到的永远是某个完整一致的快照，
// 不存在"半重建"的可观测状态。
type Recommender struct {
	cfg Config

	mu      sync.Mutex // 串行化 Rebuild
	current atomic.Pointer[Engine]
}

// NewRecommender 创建未加载数据的 Recommender；首次 Rebuild 前
// Engine() 返回未就绪。
func NewRecommender(cfg Config) *Recommender {
	return &Recommender{cfg: cfg}
}

// Rebuild 用全量目录与交互表重建所有派生状态并原子替换。
// 没有增量更新路径：任何数据变更都走整体重建。
func (r *Recommender) Rebuild(products []core.Product, interactions []core.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	eng, err := Build(catalog.New(products), interactions, r.cfg)
	if err != nil {
		return err
	}
	r.current.Store(eng)
	return nil
}

// Engine 返回当前快照；尚未成功构建过时 ok 为 false。
func (r *Recommender) Engine() (*Engine, bool) {
	eng := r.current.Load()
	return eng, eng != nil
}
