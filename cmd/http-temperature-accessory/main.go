package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/i474232898/http-temperature-accessory/internal/accessory"
	httpapi "github.com/i474232898/http-temperature-accessory/internal/api/http"
	"github.com/i474232898/http-temperature-accessory/internal/config"
	"github.com/i474232898/http-temperature-accessory/internal/host"
	"github.com/i474232898/http-temperature-accessory/internal/host/mqtthost"
	"github.com/i474232898/http-temperature-accessory/internal/host/promhost"
	"github.com/i474232898/http-temperature-accessory/internal/store"
)

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	// Load configuration.
	cfg, err := config.Load(sugar)
	if err != nil {
		sugar.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for the outbound sensor calls. A zero timeout
	// means in-flight fetches are never cancelled.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Prometheus registry and the gauge-backed host.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewBuildInfoCollector())
	reg.MustRegister(collectors.NewGoCollector())
	promHost := promhost.New(reg)

	hosts := []host.Host{promHost}

	if cfg.MQTTBrokerURL != "" {
		mqttHost, err := mqtthost.New(mqtthost.Config{
			BrokerURL:     cfg.MQTTBrokerURL,
			TopicPrefix:   cfg.MQTTTopicPrefix,
			AccessoryName: cfg.Name,
		}, sugar)
		if err != nil {
			sugar.Fatalf("failed to connect mqtt host: %v", err)
		}
		defer mqttHost.Close()
		hosts = append(hosts, mqttHost)
	}

	notify := host.NewMultiHost(sugar, hosts...)

	// Accessory surface and the poller driving the cache.
	acc := accessory.NewAccessory(cfg.AccessoryInfo(), !cfg.DisableHumidity, sugar)
	fetcher := accessory.NewHTTPFetcher(cfg.SensorURL, httpClient)
	poller := accessory.NewPoller(fetcher, memStore, notify, promHost, cfg.RefreshInterval, !cfg.DisableHumidity, sugar)

	if err := poller.Start(); err != nil {
		sugar.Fatalf("failed to start poller: %v", err)
	}
	defer poller.Stop()

	sugar.Infof("polling %s every %s", cfg.SensorURL, poller.Interval())

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "http-temperature-accessory",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "http-temperature-accessory",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, acc, poller, memStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Metrics on a dedicated port.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Errorf("metrics server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("error during metrics shutdown: %v", err)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorf("error during shutdown: %v", err)
	}
}
