package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shelfsync/backend/config"
	httpDelivery "github.com/shelfsync/backend/internal/delivery/http"
	"github.com/shelfsync/backend/internal/infrastructure/cache"
	"github.com/shelfsync/backend/internal/infrastructure/catalog"
	"github.com/shelfsync/backend/internal/infrastructure/index"
	"github.com/shelfsync/backend/internal/infrastructure/normalizer"
	"github.com/shelfsync/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShelfSync Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	normalizerClient := normalizer.NewClient(cfg.Normalizer.APIKey, cfg.Normalizer.BaseURL, cfg.RateLimit.Normalizer)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		normalizerClient.SetDebug(true)
		log.Printf("Normalizer client debug mode enabled")
	}
	log.Printf("Normalizer service: %s", cfg.Normalizer.BaseURL)

	// Load the reference catalog and build the per-process index
	candidates, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	candidateIndex := index.Build(candidates)
	log.Printf("Candidate index ready: %d entries", candidateIndex.Size())

	// Initialize usecase layer
	reconcileService := usecase.NewReconcileService(
		usecase.MatchConfig{
			NameExactConfidence:   cfg.Matching.NameExactConfidence,
			PartialCodeConfidence: cfg.Matching.PartialCodeConfidence,
			NameBrandConfidence:   cfg.Matching.NameBrandConfidence,
			NameMatchThreshold:    cfg.Matching.NameMatchThreshold,
			NameOnlyScale:         cfg.Matching.NameOnlyScale,
			MultiFieldThreshold:   cfg.Matching.MultiFieldThreshold,
			BrandWeight:           cfg.Matching.BrandWeight,
			CategoryWeight:        cfg.Matching.CategoryWeight,
			QuantityWeight:        cfg.Matching.QuantityWeight,
			NameWeight:            cfg.Matching.NameWeight,
			QuantityTolerance:     cfg.Matching.QuantityTolerance,
			DiscrepancyPenalty:    cfg.Matching.DiscrepancyPenalty,
			ConfidenceFloor:       cfg.Matching.ConfidenceFloor,
			MinCodeLookupLength:   cfg.Matching.MinCodeLookupLength,
			CacheTTL:              cfg.Cache.TTL,
			EnableDebugLogging:    cfg.Matching.EnableDebugLogging,
		},
		normalizerClient,
		memoryCache,
	)

	log.Printf("Matching: name-exact=%.2f, partial-code=%.2f, multi-field>=%.2f, debug=%v",
		cfg.Matching.NameExactConfidence,
		cfg.Matching.PartialCodeConfidence,
		cfg.Matching.MultiFieldThreshold,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(reconcileService, candidateIndex)

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
