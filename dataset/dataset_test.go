package dataset

import (
	"strings"
	"testing"
)

const header = "ID,ProdID,Name,Brand,Category,Description,Tags,Rating,ReviewCount,ImageURL\n"

func TestParseCleaning(t *testing.T) {
	csv := header +
		"1,101,Shampoo,Acme,Hair,desc,tags,4.5,100,http://a.jpg|http://b.jpg\n" +
		"-2147483648,102,Bad User,Acme,Hair,d,t,4.0,10,\n" + // 哨兵用户 ID
		"2,-2147483648,Bad Product,Acme,Hair,d,t,4.0,10,\n" + // 哨兵商品 ID
		"0,103,Zero User,Acme,Hair,d,t,4.0,10,\n" + // 0 ID
		"3,abc,Not Numeric,Acme,Hair,d,t,4.0,10,\n" + // 非数字 ID
		"2,104,Soap,Glow,Skin,d,t,3.5,20,img.jpg\n"

	res, err := Parse(strings.NewReader(csv), Options{})
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}

	if res.RowsTotal != 6 {
		t.Errorf("RowsTotal = %d，期望 6", res.RowsTotal)
	}
	if res.RowsDropped != 4 {
		t.Errorf("RowsDropped = %d，期望 4", res.RowsDropped)
	}
	if len(res.Products) != 2 || len(res.Interactions) != 2 {
		t.Fatalf("products=%d interactions=%d，期望 2/2", len(res.Products), len(res.Interactions))
	}

	// 多图只保留第一张
	if got := res.Products[0].ImageURL; got != "http://a.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
	if res.Interactions[0].UserID != 1 || res.Interactions[0].ProductID != 101 {
		t.Errorf("首条交互 = %+v", res.Interactions[0])
	}
}

// 缺失评分用有效评分的中位数填充
func TestParseMedianRatingFill(t *testing.T) {
	csv := header +
		"1,101,A,b,c,d,t,2.0,1,\n" +
		"2,102,B,b,c,d,t,4.0,1,\n" +
		"3,103,C,b,c,d,t,5.0,1,\n" +
		"4,104,D,b,c,d,t,,1,\n" // 缺失

	res, err := Parse(strings.NewReader(csv), Options{})
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	// 中位数 = 4.0
	var filled float64
	for _, p := range res.Products {
		if p.ID == 104 {
			filled = p.Rating
		}
	}
	if filled != 4.0 {
		t.Errorf("填充评分 = %v，期望中位数 4.0", filled)
	}
}

// MaxUsers 保留交互数最多的用户，同数按 ID 升序
func TestParseMaxUsers(t *testing.T) {
	csv := header +
		"1,101,A,b,c,d,t,4,1,\n" +
		"1,102,B,b,c,d,t,4,1,\n" +
		"2,101,A,b,c,d,t,4,1,\n" +
		"3,103,C,b,c,d,t,4,1,\n"

	res, err := Parse(strings.NewReader(csv), Options{MaxUsers: 2})
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}

	users := make(map[int64]bool)
	for _, it := range res.Interactions {
		users[it.UserID] = true
	}
	if len(users) != 2 || !users[1] || !users[2] {
		t.Errorf("保留用户 = %v，期望 {1, 2}", users)
	}
	// 被裁掉的用户独占的商品也随之消失
	for _, p := range res.Products {
		if p.ID == 103 {
			t.Error("仅被裁剪用户触达的商品不应保留")
		}
	}
}

func TestParseMissingColumns(t *testing.T) {
	if _, err := Parse(strings.NewReader("Name,Brand\nfoo,bar\n"), Options{}); err == nil {
		t.Error("缺少 ID/ProdID 列应报错")
	}
}

func TestParseTextFills(t *testing.T) {
	csv := "ID,ProdID,Name,Rating,ReviewCount\n" +
		"1,101,OnlyName,4.0,5\n"

	res, err := Parse(strings.NewReader(csv), Options{})
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	p := res.Products[0]
	if p.Brand != "" || p.Category != "" || p.Description != "" || p.Tags != "" {
		t.Errorf("缺失文本列应为空串: %+v", p)
	}
	if p.Name != "OnlyName" || p.ReviewCount != 5 {
		t.Errorf("字段解析错误: %+v", p)
	}
}
