package core

// Source 是推荐候选的来源标签。
//
// 设计原则：
//   - 来源是封闭集合，用类型化常量而不是自由字符串，防止拼写漂移
//   - 每个来源绑定一个固定的置信度权重，融合排序以它为第一排序键
type Source string

const (
	// SourceCollaborative 基于相似用户的协同过滤
	SourceCollaborative Source = "collaborative"
	// SourceContentBased 基于种子商品的内容相似度
	SourceContentBased Source = "content_based"
	// SourceCategoryBased 基于用户高频类目的内容召回
	SourceCategoryBased Source = "category_based"
	// SourceSVD 基于矩阵分解（截断 SVD）的评分预测
	SourceSVD Source = "svd"
	// SourceTopRated 全目录兜底排序（评分 desc、评论数 desc）
	SourceTopRated Source = "top_rated"
)

// confidences 是各来源的固定置信度。融合去重后以
// (confidence desc, rating desc) 排序，因此权重的相对大小就是来源优先级。
var confidences = map[Source]float64{
	SourceCollaborative: 0.8,
	SourceSVD:           0.75,
	SourceContentBased:  0.7,
	SourceCategoryBased: 0.6,
	SourceTopRated:      0.5,
}

// Confidence 返回该来源的固定置信度权重；未知来源返回 0。
func (s Source) Confidence() float64 {
	return confidences[s]
}

// Valid 判断来源是否属于封闭集合。
func (s Source) Valid() bool {
	_, ok := confidences[s]
	return ok
}

// Sources 返回所有合法来源（按置信度降序）。
func Sources() []Source {
	return []Source{
		SourceCollaborative,
		SourceSVD,
		SourceContentBased,
		SourceCategoryBased,
		SourceTopRated,
	}
}

// Candidate 是单个推荐候选：商品 + 预测/聚合分数 + 来源标签。
// 每次请求临时生成，响应后即丢弃。
type Candidate struct {
	Product *Product `json:"product"`
	Score   float64  `json:"score"`
	Source  Source   `json:"source"`
}

// Confidence 返回候选来源的置信度权重。
func (c *Candidate) Confidence() float64 {
	return c.Source.Confidence()
}
