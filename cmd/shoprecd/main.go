// shoprecd 是推荐服务进程：加载配置与数据集，构建引擎，启动 HTTP 服务。
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/shoprec/shoprec/config"
	"github.com/shoprec/shoprec/core"
	"github.com/shoprec/shoprec/dataset"
	"github.com/shoprec/shoprec/engine"
	"github.com/shoprec/shoprec/server"
	"github.com/shoprec/shoprec/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env 不存在时忽略，环境变量仍然生效
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := newLogger(cfg.Log)

	kv, err := newStore(cfg.Store)
	if err != nil {
		log.WithError(err).Fatal("init store")
	}
	defer kv.Close()

	rec := engine.NewRecommender(engine.Config{
		MaxFeatures:      cfg.Engine.MaxFeatures,
		SVDRank:          cfg.Engine.SVDRank,
		TopKSimilarUsers: cfg.Engine.TopKSimilarUsers,
		ItemSimThreshold: cfg.Engine.ItemSimThreshold,
		FilterRules:      cfg.Engine.FilterRules,
		Store:            kv,
		TopRatedKey:      cfg.Engine.TopRatedKey,
	})

	reload := func(ctx context.Context) error {
		return loadAndBuild(ctx, log, cfg, rec, kv)
	}
	if err := reload(context.Background()); err != nil {
		log.WithError(err).Fatal("initial data load")
	}

	srv := server.New(rec, server.Options{
		Store:    kv,
		CacheTTL: cfg.Server.CacheTTL,
		Logger:   log,
		Reload:   reload,
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(cfg.Server.AllowOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", httpSrv.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// loadAndBuild 读数据集、重建引擎快照，并刷新热门榜单 zset。
func loadAndBuild(ctx context.Context, log *logrus.Logger, cfg *config.Config, rec *engine.Recommender, kv core.KeyValueStore) error {
	res, err := dataset.Load(cfg.Data.ProductsCSV, dataset.Options{MaxUsers: 100})
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	log.WithFields(logrus.Fields{
		"rows":         res.RowsTotal,
		"dropped":      res.RowsDropped,
		"products":     len(res.Products),
		"interactions": len(res.Interactions),
	}).Info("dataset loaded")

	if err := rec.Rebuild(res.Products, res.Interactions); err != nil {
		return fmt.Errorf("rebuild engine: %w", err)
	}

	// 热门榜单预计算，兜底召回优先读这里
	eng, _ := rec.Engine()
	for _, p := range eng.Catalog().TopRated(100) {
		if err := kv.ZAdd(ctx, cfg.Engine.TopRatedKey, p.Rating, strconv.FormatInt(p.ID, 10)); err != nil {
			log.WithError(err).Warn("top-rated zset update failed")
			break
		}
	}
	log.Info("engine rebuilt")
	return nil
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func newStore(cfg config.StoreConfig) (core.KeyValueStore, error) {
	switch cfg.Backend {
	case "redis":
		return store.NewRedis(cfg.Addr, cfg.Password, cfg.DB)
	default:
		return store.NewMemory(), nil
	}
}
