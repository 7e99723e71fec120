// Package dsl 是候选过滤规则的解释器，使用 CEL
// (Common Expression Language) 实现：类型安全、高性能、线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 商品字段：product.rating >= 3.0 / product.brand != ""
//   - 候选字段：candidate.score > 0.5 / candidate.source == "svd"
//   - 逻辑组合：product.rating >= 3.0 && product.review_count > 10
//   - 包含：product.category.contains("Beauty")
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shoprec/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("product", cel.DynType),
			cel.Variable("candidate", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的过滤规则，可跨请求并发复用。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。规则必须返回布尔值。
// 编译只在构建期发生一次，请求路径上只做求值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回规则原文（用于日志/诊断）。
func (p *Program) Expr() string { return p.expr }

// Eval 对单个候选求值，返回规则是否命中。
func (p *Program) Eval(c *core.Candidate) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(c))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

func buildInput(c *core.Candidate) map[string]interface{} {
	product := map[string]interface{}{}
	if c.Product != nil {
		product = map[string]interface{}{
			"id":           c.Product.ID,
			"name":         c.Product.Name,
			"brand":        c.Product.Brand,
			"category":     c.Product.Category,
			"tags":         c.Product.Tags,
			"rating":       c.Product.Rating,
			"review_count": c.Product.ReviewCount,
		}
	}
	return map[string]interface{}{
		"product": product,
		"candidate": map[string]interface{}{
			"score":      c.Score,
			"source":     string(c.Source),
			"confidence": c.Confidence(),
		},
	}
}
