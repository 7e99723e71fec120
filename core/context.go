package core

// DefaultTopN 是未显式指定时的推荐条数。
const DefaultTopN = 10

// RecommendContext 承载一次推荐请求的输入，贯穿所有召回源透传。
type RecommendContext struct {
	// UserID 目标用户；可以不在交互矩阵中（新用户走兜底）。
	UserID int64

	// SeedProductID 可选的种子商品。为 0 表示未提供，
	// 此时内容召回退化为基于用户高频类目的召回。
	SeedProductID int64

	// TopN 最终返回的候选条数上限。
	TopN int
}

// Limit 返回归一化后的 TopN（非法值回落到 DefaultTopN）。
func (rctx *RecommendContext) Limit() int {
	if rctx == nil || rctx.TopN <= 0 {
		return DefaultTopN
	}
	return rctx.TopN
}

// HasSeed 判断请求是否携带种子商品。
func (rctx *RecommendContext) HasSeed() bool {
	return rctx != nil && rctx.SeedProductID != 0
}
