package filter

import (
	"context"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/pkg/dsl"
)

// Rule 是基于 CEL 表达式的过滤器：表达式为真的候选被保留。
// 例如 `product.rating >= 3.0` 只保留评分不低于 3 的商品。
type Rule struct {
	prg *dsl.Program
}

// NewRule 编译规则表达式。表达式非法在构建期报错，而不是请求期。
func NewRule(expr string) (*Rule, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{prg: prg}, nil
}

func (r *Rule) Name() string { return "filter.rule(" + r.prg.Expr() + ")" }

func (r *Rule) ShouldFilter(_ context.Context, _ *core.RecommendContext, c *core.Candidate) (bool, error) {
	keep, err := r.prg.Eval(c)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
