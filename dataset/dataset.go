// Package dataset 从 CSV 文件加载商品目录和用户交互数据。
//
// 数据清洗规则：
//   - 用户 ID / 商品 ID 为哨兵值 -2147483648、0 或非数字的行直接丢弃
//   - 文本列（Name/Brand/Category/Description/Tags）缺失时填空串
//   - ImageURL 可能含多张图（'|' 分隔），只保留第一张
//   - 缺失评分用有效评分的中位数填充
//   - 只保留交互数最多的前 MaxUsers 个用户（0 表示不限制）
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shoprec/shoprec/core"
)

// 无效 ID 的哨兵值，来自上游导出工具的 int32 溢出。
const sentinelID = -2147483648

// Options 控制加载行为。
type Options struct {
	MaxUsers int // 保留交互数最多的前 N 个用户，0 表示全量
}

// Result 是一次加载的产物与统计。
type Result struct {
	Products     []core.Product
	Interactions []core.Interaction
	RowsTotal    int // CSV 数据行总数（不含表头）
	RowsDropped  int // 因 ID 非法被丢弃的行数
}

// row 是清洗后的一条 CSV 记录，同时承载商品字段与交互字段。
type row struct {
	userID    int64
	product   core.Product
	hasRating bool
}

// Load 读取 path 并做完整清洗，返回商品目录与交互表。
func Load(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse 从任意 reader 解析 CSV，首行必须是表头。
// 表头按列名匹配（大小写不敏感），列顺序不限。
func Parse(r io.Reader, opts Options) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{"id", "prodid"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	res := &Result{}
	var rows []row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		res.RowsTotal++

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		userID, ok1 := parseID(get("id"))
		prodID, ok2 := parseID(get("prodid"))
		if !ok1 || !ok2 {
			res.RowsDropped++
			continue
		}

		rating, hasRating := parseFloat(get("rating"))
		reviews, _ := parseInt(get("reviewcount"))
		rows = append(rows, row{
			userID: userID,
			product: core.Product{
				ID:          prodID,
				Name:        get("name"),
				Brand:       get("brand"),
				Category:    get("category"),
				Description: get("description"),
				Tags:        get("tags"),
				Rating:      rating,
				ReviewCount: reviews,
				ImageURL:    firstImage(get("imageurl")),
			},
			hasRating: hasRating,
		})
	}

	fillMedianRating(rows)
	rows = limitUsers(rows, opts.MaxUsers)

	seen := make(map[int64]bool)
	for i := range rows {
		rw := &rows[i]
		if !seen[rw.product.ID] {
			seen[rw.product.ID] = true
			res.Products = append(res.Products, rw.product)
		}
		res.Interactions = append(res.Interactions, core.Interaction{
			UserID:      rw.userID,
			ProductID:   rw.product.ID,
			Rating:      rw.product.Rating,
			ReviewCount: rw.product.ReviewCount,
		})
	}
	return res, nil
}

// indexColumns 将表头映射为 小写列名 -> 列下标。
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// parseID 解析整数 ID，哨兵值和 0 视为非法。
func parseID(s string) (int64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	id := int64(v)
	if id == 0 || id == sentinelID {
		return 0, false
	}
	return id, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// firstImage 取 '|' 分隔的第一张图。
func firstImage(s string) string {
	if i := strings.IndexByte(s, '|'); i >= 0 {
		return s[:i]
	}
	return s
}

// fillMedianRating 用有效评分的中位数填充缺失评分。
// 全部缺失时保持 0。
func fillMedianRating(rows []row) {
	valid := make([]float64, 0, len(rows))
	for i := range rows {
		if rows[i].hasRating {
			valid = append(valid, rows[i].product.Rating)
		}
	}
	if len(valid) == 0 {
		return
	}
	sort.Float64s(valid)
	median := valid[len(valid)/2]
	if len(valid)%2 == 0 {
		median = (valid[len(valid)/2-1] + valid[len(valid)/2]) / 2
	}
	for i := range rows {
		if !rows[i].hasRating {
			rows[i].product.Rating = median
			rows[i].hasRating = true
		}
	}
}

// limitUsers 保留交互数最多的前 max 个用户。
// 交互数相同则按用户 ID 升序，保证结果确定。
func limitUsers(rows []row, max int) []row {
	if max <= 0 {
		return rows
	}
	counts := make(map[int64]int)
	for i := range rows {
		counts[rows[i].userID]++
	}
	if len(counts) <= max {
		return rows
	}

	type userCount struct {
		id    int64
		count int
	}
	ranked := make([]userCount, 0, len(counts))
	for id, c := range counts {
		ranked = append(ranked, userCount{id: id, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})

	keep := make(map[int64]bool, max)
	for _, uc := range ranked[:max] {
		keep[uc.id] = true
	}
	kept := rows[:0]
	for i := range rows {
		if keep[rows[i].userID] {
			kept = append(kept, rows[i])
		}
	}
	return kept
}
