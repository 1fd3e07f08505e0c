package main

import (
	"log"
	"net/http"
	"os"

	"recoleta-backend/internal/database"
	"recoleta-backend/internal/handlers"
	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
	"recoleta-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 RECOLETA BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Get database URL
	log.Println("🔍 Checking DATABASE_URL environment variable...")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Println("   Please set DATABASE_URL in Railway Variables or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("DATABASE_URL environment variable is required")
	}
	log.Println("✅ DATABASE_URL found")

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("   This is usually caused by:")
		log.Println("   1. Wrong DATABASE_URL format")
		log.Println("   2. PostgreSQL service is down")
		log.Println("   3. Network connectivity issue")
		log.Println("   4. Invalid credentials")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.Seed(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database seeded successfully")

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for Railway/cloud deployments)
	var fcmService *services.FCMService
	fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64")

	if fcmCredsBase64 != "" {
		// Use base64-encoded credentials (Railway-friendly)
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		// Fall back to file path (local development)
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}

		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Stores and domain services
	requestStore := database.NewRequestStore(db)
	gamStore := database.NewGamificationStore(db)

	requestService := services.NewRequestService(requestStore)
	submissionService := services.NewSubmissionService(gamStore)
	redemptionService := services.NewRedemptionService(gamStore)
	ledger := services.NewLedger(gamStore)
	rankingService := services.NewRankingService(gamStore, requestStore)
	assistant := services.NewAssistantService()
	cepService := services.NewCEPService()
	log.Println("✅ Domain services initialized")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))
	r.Post("/api/auth/register", handlers.Register(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// CEP lookup (no auth required, used on the registration form)
		r.Get("/location/cep/{cep}", handlers.LookupCEP(cepService))

		// Everything below requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Session and profile
			r.Get("/auth/status", handlers.AuthStatus(db))
			r.Get("/users/me", handlers.GetMe(db))
			r.Patch("/users/me", handlers.UpdateProfile(db))

			// Collection requests
			r.Get("/requests", handlers.ListRequests(db, requestService))
			r.Post("/requests", handlers.CreateRequest(db, requestService, wsHub))
			r.Patch("/requests/{id}", handlers.UpdateRequest(db, requestService))
			r.Delete("/requests/{id}", handlers.DeleteRequest(db, requestService))
			r.Post("/requests/{id}/share", handlers.ShareRequestAsPost(db))

			// Schedules and next pickup
			r.Get("/schedules", handlers.ListSchedules(db))
			r.Get("/schedules/next", handlers.NextCollection(db))

			// Gamification, resident side
			r.Get("/challenges", handlers.ListChallenges(db))
			r.Post("/challenges/{id}/submissions", handlers.SubmitChallengeProof(db, submissionService))
			r.Get("/submissions/me", handlers.ListMySubmissions(db))
			r.Get("/rewards", handlers.ListRewards(db))
			r.Post("/rewards/{id}/redeem", handlers.RedeemReward(db, redemptionService))
			r.Get("/redemptions/me", handlers.ListMyRedemptions(db))
			r.Get("/points/me", handlers.GetMyPoints(ledger))
			r.Get("/ranking", handlers.GetRanking(rankingService))

			// Alerts and map
			r.Get("/alerts", handlers.ListAlerts(db))
			r.Get("/collection-points", handlers.ListCollectionPoints(db))

			// Community feed
			r.Get("/posts", handlers.ListPosts(db))
			r.Post("/posts", handlers.CreatePost(db))
			r.Post("/posts/{id}/like", handlers.ToggleLikePost(db))
			r.Post("/posts/{id}/comments", handlers.AddPostComment(db))
			r.Delete("/posts/{id}", handlers.DeletePost(db))

			// Local projects
			r.Get("/projects", handlers.ListProjects(db))
			r.Post("/projects", handlers.CreateProject(db))
			r.Post("/projects/{id}/join", handlers.ToggleJoinProject(db))
			r.Post("/projects/{id}/comments", handlers.AddProjectComment(db))
			r.Delete("/projects/{id}", handlers.DeleteProject(db))
			r.Delete("/projects/{id}/participants/{userId}", handlers.RemoveProjectParticipant(db))

			// Assistant
			r.Get("/assistant/eco-tip", handlers.GetEcoTip(assistant))
			r.Post("/assistant/chat", handlers.ChatWithAssistant(assistant))

			// FCM token registration
			r.Post("/notifications/fcm-token", handlers.RegisterFCMToken(db))
			r.Delete("/notifications/fcm-token", handlers.UnregisterFCMToken(db))
		})

		// Admin endpoints (require authentication + organization role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole(models.RoleOrganization))

			r.Patch("/requests/{id}/status", handlers.SetRequestStatus(db, requestService, wsHub, fcmService))

			// Region account management
			r.Get("/users", handlers.ListRegionUsers(db))
			r.Delete("/users/{id}", handlers.DeleteUser(db))

			// Schedule management
			r.Post("/schedules", handlers.CreateSchedule(db))
			r.Patch("/schedules/{id}", handlers.UpdateSchedule(db))
			r.Delete("/schedules/{id}", handlers.DeleteSchedule(db))

			// Alert broadcasting
			r.Post("/alerts", handlers.CreateAlert(db, wsHub, fcmService))
			r.Patch("/alerts/{id}", handlers.UpdateAlert(db))
			r.Delete("/alerts/{id}", handlers.DeleteAlert(db))

			// Challenge and reward management
			r.Post("/challenges", handlers.CreateChallenge(db))
			r.Patch("/challenges/{id}", handlers.UpdateChallenge(db))
			r.Delete("/challenges/{id}", handlers.DeleteChallenge(db))
			r.Post("/rewards", handlers.CreateReward(db))
			r.Patch("/rewards/{id}", handlers.UpdateReward(db))
			r.Delete("/rewards/{id}", handlers.DeleteReward(db))

			// Review queues
			r.Get("/submissions/pending", handlers.ListPendingSubmissions(db))
			r.Patch("/submissions/{id}/review", handlers.ReviewSubmission(db, submissionService, fcmService))
			r.Get("/redemptions/pending", handlers.ListPendingRedemptions(db))
			r.Patch("/redemptions/{id}/process", handlers.ProcessRedemption(db, redemptionService, fcmService))

			// Smart bin map management
			r.Get("/collection-points/predictions", handlers.PredictCollectionPoints(db, assistant))
			r.Post("/collection-points", handlers.AddCollectionPoint(db))
			r.Patch("/collection-points/{id}/status", handlers.UpdateCollectionPointStatus(db))
			r.Delete("/collection-points/{id}", handlers.DeleteCollectionPoint(db))

			// Route optimization preview
			r.Post("/routes/optimize-preview", handlers.OptimizeCollectionRoute(db, assistant))
		})
	})

	// Get port
	log.Println("🔍 Checking PORT environment variable...")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	} else {
		log.Printf("✅ PORT found: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}
