package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/platewise/platewise-backend/internal/config"
	"github.com/platewise/platewise-backend/internal/database"
	"github.com/platewise/platewise-backend/internal/handlers"
	"github.com/platewise/platewise-backend/internal/llm"
	"github.com/platewise/platewise-backend/internal/middleware"
	"github.com/platewise/platewise-backend/internal/repository"
	"github.com/platewise/platewise-backend/internal/routes"
	"github.com/platewise/platewise-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	if cfg.LLMAPIKey == "" {
		log.Println("⚠️  WARNING: no LLM API key configured (set LLM_API_KEY or LLM_API_KEY_FILE).")
		log.Println("   Meal plan generation will fail until a key is provided.")
	} else {
		log.Println("✅ LLM credentials configured")
	}

	// Connect to MongoDB (mask credentials in the startup log)
	log.Printf("Connecting to MongoDB: %s", maskURI(cfg.MongoURI))
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer database.DisconnectRedis()

	// Account repository and the unique username index signup depends on
	accounts := repositorySetup()

	sessions := services.NewRedisSessions()
	plans := services.NewRedisPlans()
	generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	authHandler := handlers.NewAuthHandler(accounts, sessions)
	profileHandler := handlers.NewProfileHandler(accounts, sessions)
	planHandler := handlers.NewPlanHandler(accounts, sessions, plans, generator)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authHandler, profileHandler, planHandler)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/auth/change-password")
	log.Println("  GET  /api/profile")
	log.Println("  PUT  /api/profile")
	log.Println("  POST /api/plan")
	log.Println("  POST /api/plan/feedback")

	log.Printf("🚀 Platewise backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func repositorySetup() *repository.AccountRepo {
	accounts := repository.NewAccountRepo()
	if err := accounts.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("Failed to ensure account indexes: ", err)
	}
	log.Println("✅ Account indexes ensured")
	return accounts
}

// maskURI hides the password portion of a connection string for logging.
func maskURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	if scheme == -1 {
		return uri
	}
	creds := uri[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon != -1 {
		return uri[:scheme+3] + creds[:colon] + ":***" + uri[at:]
	}
	return uri
}
