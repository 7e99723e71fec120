package core

// Product 是商品主数据，加载后不可变，由 catalog.Index 独占持有。
// ID 在整个目录内唯一；Rating 为 0~5 的均值评分。
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Tags        string  `json:"tags"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	ImageURL    string  `json:"image_url"`
}

// Interaction 是一条用户-商品交互记录（评分行为）。
// 同一 (UserID, ProductID) 出现多次时，构建交互矩阵时按"后写覆盖"收敛。
type Interaction struct {
	UserID      int64
	ProductID   int64
	Rating      float64
	ReviewCount int
}
