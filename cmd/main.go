package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"comanda/internal/api"
	"comanda/internal/auth"
	"comanda/internal/catalog"
	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/kitchen"
	"comanda/internal/models"
	"comanda/internal/tables"
	"comanda/internal/voice"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize LLM
	model, err := initializeLLM(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM: %v", err)
	}

	// Initialize database and seed restaurants
	store, err := initializeStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Wire services
	svc := tables.NewService(store)
	hub := kitchen.NewHub()
	svc.SetNotifier(hub)

	gate := auth.NewPinGate(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionHours)*time.Hour)
	server := api.NewServer(svc, voice.NewParser(model), voice.NewGenerator(model), hub, gate)

	// Start metrics server
	if cfg.Metrics.Enabled {
		go startMetricsServer(*metricsPort, cfg.Metrics.Path)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeLLM(cfg *config.Config) (llms.Model, error) {
	llm, err := openai.New(
		openai.WithModel(cfg.OpenAIModel),
		openai.WithToken(cfg.OpenAIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return llm, nil
}

func initializeStore(ctx context.Context, cfg *config.Config) (*tables.Store, error) {
	if err := database.InitDB(cfg.Database.Dialect, cfg.Database.DSN); err != nil {
		return nil, err
	}
	store, err := tables.NewStore(database.GetDB())
	if err != nil {
		return nil, err
	}

	for _, scope := range cfg.Restaurants {
		initial := &models.Restaurant{
			Tables:          catalog.SeedTables(),
			Menu:            catalog.SeedMenu(),
			CompletedOrders: []models.CompletedOrder{},
			Inventory:       catalog.SeedInventory(),
			Features: models.FeatureSet{
				AnalyticsDashboard:  true,
				InventoryManagement: true,
			},
		}
		if err := store.Seed(ctx, scope, initial); err != nil {
			return nil, fmt.Errorf("seed %s: %w", scope, err)
		}
	}
	return store, nil
}

func startMetricsServer(port int, path string) {
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
