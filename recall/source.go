// Package recall 定义召回源：每个模型族包装成一个可独立查询、
// 可并发 fan-out 的策略单元。
package recall

import (
	"context"

	"github.com/shoprec/shoprec/core"
)

// Source 表示一个可复用的召回源（协同过滤/内容/类目/矩阵分解/兜底）。
//
// 约定：
//   - "该用户/商品没有信号"不是错误：返回 (nil, nil)，由融合层决定兜底
//   - 返回的候选必须已带上来源标签（core.Source）
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error)
}
