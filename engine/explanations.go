package engine

import "github.com/shoprec/shoprec/core"

// explanations 是每个来源标签的固定解释文案，serving 层用于生成
// "为什么推荐这个商品"的展示。
var explanations = map[core.Source]string{
	core.SourceCollaborative: "Users with similar preferences to you also liked this product",
	core.SourceContentBased:  "This product is similar to items you've previously viewed or purchased",
	core.SourceCategoryBased: "This product is from a category you frequently shop from",
	core.SourceSVD:           "Based on advanced pattern analysis, this product matches your preferences",
	core.SourceTopRated:      "This product is highly rated by other customers",
}

// SourceExplanations 返回全部来源标签及其解释文案。
func SourceExplanations() map[core.Source]string {
	out := make(map[core.Source]string, len(explanations))
	for k, v := range explanations {
		out[k] = v
	}
	return out
}

// Explain 返回单个来源的解释文案；未知来源返回通用文案。
func Explain(src core.Source) string {
	if s, ok := explanations[src]; ok {
		return s
	}
	return "This product is recommended for you"
}
