package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/engine"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "shoprec recommendation service",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	eng, ok := s.rec.Engine()
	resp := gin.H{"status": "healthy", "data_loaded": ok}
	if ok {
		resp["products"] = eng.Catalog().Len()
		resp["users"] = len(eng.Users())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUsers(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.Users())
}

func (s *Server) handleUserStats(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	stats, err := eng.Stats(userID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleProducts(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	limit := intQuery(c, "limit", 20, 1, 100)
	products := eng.Catalog().Filter(c.Query("category"), c.Query("brand"), limit)
	c.JSON(http.StatusOK, toViews(products))
}

func (s *Server) handleSearch(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	query := c.Query("query")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 2 characters"})
		return
	}
	limit := intQuery(c, "limit", 10, 1, 50)
	c.JSON(http.StatusOK, toViews(eng.Catalog().Search(query, limit)))
}

func (s *Server) handleTopRated(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	limit := intQuery(c, "limit", 10, 1, 20)
	views := toViews(eng.Catalog().TopRated(limit))
	for i := range views {
		views[i].RecommendationType = string(core.SourceTopRated)
		views[i].Confidence = core.SourceTopRated.Confidence()
	}
	c.JSON(http.StatusOK, RecommendationResponse{
		Products:    views,
		Explanation: engine.Explain(core.SourceTopRated),
		Total:       len(views),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.Catalog().Categories(20))
}

func (s *Server) handleBrands(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, eng.Catalog().Brands(50))
}

func (s *Server) handleHybrid(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var seedID int64
	if v := c.Query("product_id"); v != "" {
		seedID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
	}

	rctx := &core.RecommendContext{
		UserID:        userID,
		SeedProductID: seedID,
		TopN:          intQuery(c, "limit", core.DefaultTopN, 1, 20),
	}
	candidates, err := eng.Recommend(c.Request.Context(), rctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecommendationResponse{
		Products:    candidateViews(candidates),
		Explanation: "Hybrid recommendations using multiple AI algorithms for better accuracy",
		Total:       len(candidates),
	})
}

func (s *Server) handleContent(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	limit := intQuery(c, "limit", core.DefaultTopN, 1, 20)
	candidates, err := eng.SimilarProducts(productID, limit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecommendationResponse{
		Products:    candidateViews(candidates),
		Explanation: engine.Explain(core.SourceContentBased),
		Total:       len(candidates),
	})
}

func (s *Server) handleSources(c *gin.Context) {
	type sourceView struct {
		Source      string  `json:"source"`
		Confidence  float64 `json:"confidence"`
		Explanation string  `json:"explanation"`
	}
	sources := core.Sources()
	views := make([]sourceView, 0, len(sources))
	for _, src := range sources {
		views = append(views, sourceView{
			Source:      string(src),
			Confidence:  src.Confidence(),
			Explanation: engine.Explain(src),
		})
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleReload(c *gin.Context) {
	if s.reload == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "reload not configured"})
		return
	}
	if err := s.reload(c.Request.Context()); err != nil {
		s.log.WithError(err).Error("reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}

// intQuery 解析整数查询参数并夹取到 [min, max]。
func intQuery(c *gin.Context, name string, def, min, max int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// cached 包一层响应缓存：命中直接回放，未命中执行 handler 并回填。
// 只缓存 200 响应。
func (s *Server) cached(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.store == nil || s.ttl <= 0 {
			h(c)
			return
		}
		key := "shoprec:http:" + c.Request.URL.RequestURI()
		if data, err := s.store.Get(c.Request.Context(), key); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		h(c)
		if w.Status() == http.StatusOK {
			if err := s.store.Set(c.Request.Context(), key, w.buf.Bytes(), s.ttl); err != nil {
				s.log.WithError(err).Warn("cache set failed")
			}
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
