package server

import (
	"unicode/utf8"

	"github.com/shoprec/shoprec/core"
)

// ProductView 是对外的商品表示，描述截断到 200 字符。
type ProductView struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
	Rating             float64 `json:"rating"`
	ReviewCount        int     `json:"review_count"`
	ImageURL           string  `json:"image_url"`
	Description        string  `json:"description"`
	RecommendationType string  `json:"recommendation_type,omitempty"`
	Confidence         float64 `json:"confidence,omitempty"`
	Score              float64 `json:"score,omitempty"`
}

// RecommendationResponse 是推荐类接口的统一响应。
type RecommendationResponse struct {
	Products    []ProductView `json:"products"`
	Explanation string        `json:"explanation"`
	Total       int           `json:"total"`
}

const maxDescription = 200

// truncate 在 rune 边界上截断，避免切断多字节字符。
func truncate(s string) string {
	if len(s) <= maxDescription {
		return s
	}
	cut := maxDescription
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func toView(p *core.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		ImageURL:    p.ImageURL,
		Description: truncate(p.Description),
	}
}

func toViews(ps []*core.Product) []ProductView {
	views := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		views = append(views, toView(p))
	}
	return views
}

func candidateViews(cs []*core.Candidate) []ProductView {
	views := make([]ProductView, 0, len(cs))
	for _, c := range cs {
		v := toView(c.Product)
		v.RecommendationType = string(c.Source)
		v.Confidence = c.Confidence()
		v.Score = c.Score
		views = append(views, v)
	}
	return views
}
