package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"github.com/campusops/caseledger/internal/config"
	"github.com/campusops/caseledger/internal/engine"
	"github.com/campusops/caseledger/internal/handlers"
	"github.com/campusops/caseledger/internal/metrics"
	"github.com/campusops/caseledger/internal/notify"
	"github.com/campusops/caseledger/internal/sheets"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterCaseRoutes(r, cfg)

	return r
}

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (optional; env vars override)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	store, err := sheets.NewClient(context.Background(), cfg.SpreadsheetID, opts...)
	if err != nil {
		log.Fatalf("failed to init sheets client: %v", err)
	}

	eng := engine.New(store, cfg.CaseTable, cfg.StatusTable, cfg.ConfigTable, time.Duration(cfg.CacheTTL))

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Webhook.URL != "" {
		notifier = notify.NewWebhook(cfg.Webhook.URL, cfg.Webhook.Token)
	}

	metrics.MustRegister()

	r := setupRouter(handlers.HandlerConfig{Engine: eng, Notifier: notifier})

	log.Printf("[server] listening on %s (cache ttl %s)", cfg.Addr, time.Duration(cfg.CacheTTL))
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
