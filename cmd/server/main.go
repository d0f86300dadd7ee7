package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cartwise/backend/config"
	httpDelivery "github.com/cartwise/backend/internal/delivery/http"
	"github.com/cartwise/backend/internal/infrastructure/catalog"
	"github.com/cartwise/backend/internal/infrastructure/enrich"
	"github.com/cartwise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Cartwise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s", cfg.Catalog.Path)

	// Load the catalog index once; it is immutable for the process
	// lifetime and shared read-only across requests.
	index, err := catalog.LoadFromFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	holder := catalog.NewHolder(index)

	// Preloaded enrichment sources
	ewgTable := enrich.NewEWGTable()
	storeTable := enrich.NewStoreTable(cfg.Catalog.Stores)

	// Enable debug mode in development environment
	debugLogging := cfg.Engine.EnableDebugLogging || cfg.Server.Environment == "development"

	// Initialize the decision engine
	engine := usecase.NewEngine(holder, ewgTable, storeTable, usecase.EngineConfig{
		StrictSafety:       cfg.Engine.StrictSafety,
		Weights:            usecase.DefaultScoreWeights(),
		EnableDebugLogging: debugLogging,
	})

	log.Printf("Engine: strict_safety=%v, debug=%v, stores=%v",
		cfg.Engine.StrictSafety, debugLogging, holder.Stores())

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(engine, holder)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
