// Package server 是 HTTP 适配层，把引擎操作暴露为 REST 接口。
// 只做参数解析、错误码映射和响应缓存，不包含任何推荐逻辑。
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/engine"
)

// Options 是 serving 层的依赖注入点。
type Options struct {
	Store    core.KeyValueStore // 响应缓存，nil 表示不缓存
	CacheTTL int                // 缓存秒数
	Logger   *logrus.Logger
	// Reload 重新加载数据并重建引擎，由 cmd 注入。
	Reload func(ctx context.Context) error
}

// Server 持有引擎快照句柄与 serving 层依赖。
type Server struct {
	rec    *engine.Recommender
	store  core.KeyValueStore
	ttl    int
	log    *logrus.Logger
	reload func(ctx context.Context) error
}

func New(rec *engine.Recommender, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		rec:    rec,
		store:  opts.Store,
		ttl:    opts.CacheTTL,
		log:    log,
		reload: opts.Reload,
	}
}

// Router 构建全部路由。
func (s *Server) Router(allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	corsCfg := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsCfg))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/users", s.handleUsers)
		api.GET("/users/:user_id", s.handleUserStats)
		api.GET("/products", s.handleProducts)
		api.GET("/products/search", s.handleSearch)
		api.GET("/products/top-rated", s.handleTopRated)
		api.GET("/categories", s.handleCategories)
		api.GET("/brands", s.handleBrands)

		rec := api.Group("/recommendations")
		{
			rec.GET("/hybrid/:user_id", s.cached(s.handleHybrid))
			rec.GET("/content/:product_id", s.cached(s.handleContent))
			rec.GET("/sources", s.handleSources)
		}

		api.POST("/admin/reload", s.handleReload)
	}
	return r
}

// engine 取当前引擎快照，未就绪时直接 503。
func (s *Server) engine(c *gin.Context) (*engine.Engine, bool) {
	eng, ok := s.rec.Engine()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "system not ready"})
		return nil, false
	}
	return eng, true
}

// abortWithError 把领域错误映射为 HTTP 状态码。
// 查无此物类错误是 404，其余一律 500。
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFound(err), core.IsNoRecommendations(err), core.IsUnknownUser(err):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
