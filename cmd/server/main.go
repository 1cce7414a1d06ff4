package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/lernquiz/backend/internal/auth"
	"github.com/lernquiz/backend/internal/database"
	"github.com/lernquiz/backend/internal/generator"
	"github.com/lernquiz/backend/internal/middleware"
	"github.com/lernquiz/backend/internal/progress"
	"github.com/lernquiz/backend/internal/questions"
	"github.com/rs/cors"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire services
	authHandler := auth.NewHandler(db)

	progressStore := progress.NewStore(db)
	progressService := progress.NewService(progressStore)
	progressHandler := progress.NewHandler(progressService)

	gen := generator.NewGenerator()
	questionStore := questions.NewStore(db)
	questionService := questions.NewService(questionStore, gen)
	questionService.SetProgressService(progressService)
	questionHandler := questions.NewHandler(questionService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/session", progressHandler.CompleteSession).Methods("POST")
	protected.HandleFunc("/progress/daily-challenge", progressHandler.GetDailyChallenge).Methods("GET")
	protected.HandleFunc("/progress/review", progressHandler.GetReviewQueue).Methods("GET")
	protected.HandleFunc("/badges", progressHandler.ListBadges).Methods("GET")

	protected.HandleFunc("/questions/session/{subject}", questionHandler.GetSessionQuestions).Methods("GET")
	protected.HandleFunc("/questions", questionHandler.CreateQuestion).Methods("POST")
	protected.HandleFunc("/questions/generate", questionHandler.GenerateQuestions).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
