package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"callme/internal/api"
	"callme/internal/auth"
	"callme/internal/cache"
	"callme/internal/handlers"
	"callme/internal/models"
	"callme/internal/reminders"
	"callme/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env in development; in production the environment is set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := models.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators:", err)
	}

	// Identity store lives next to the server, standing in for the browser's
	// local storage
	store, err := auth.OpenBadgerStore(filepath.Join(getEnv("DATA_DIR", "data"), "identity"))
	if err != nil {
		log.Fatal("Failed to open identity store:", err)
	}
	defer store.Close()

	identity := auth.NewService(store)
	notifier := services.NewNotifier()
	client := api.NewClient(os.Getenv("API_BASE_URL"))
	syncer := reminders.NewSyncer(client, cache.New(), notifier)

	worker := services.NewRefreshWorker(syncer)
	worker.Start()
	defer worker.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	h := handlers.New(identity, syncer, notifier)

	// Basic routes
	router.GET("/", h.HomeHandler)
	router.GET("/health", h.HealthHandler)

	// Pages guarded by the access middleware
	router.GET("/login", auth.RedirectIfAuthenticated(), h.LoginPage)
	router.GET("/signup", auth.RedirectIfAuthenticated(), h.SignupPage)
	router.GET("/dashboard", auth.RequireAuth(), h.DashboardPage)

	// Auth routes (no auth required)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)

	// Protected auth routes
	protected := router.Group("")
	protected.Use(auth.RequireAuthAPI())
	{
		protected.POST("/auth/logout", h.Logout)
		protected.GET("/auth/me", h.Me)
		protected.PUT("/auth/profile", h.UpdateProfile)
	}

	// Protected data routes
	apiGroup := router.Group("/api")
	apiGroup.Use(auth.RequireAuthAPI())
	{
		apiGroup.GET("/reminders", h.ListReminders)
		apiGroup.GET("/reminders/:id", h.GetReminder)
		apiGroup.POST("/reminders", h.CreateReminder)
		apiGroup.PUT("/reminders/:id", h.UpdateReminder)
		apiGroup.DELETE("/reminders/:id", h.DeleteReminder)

		apiGroup.GET("/dashboard/stats", h.DashboardStats)
		apiGroup.GET("/dashboard/activity", h.DashboardActivity)
		apiGroup.GET("/dashboard/history", h.DashboardHistory)
		apiGroup.GET("/calendar/events", h.CalendarEvents)
		apiGroup.GET("/notifications", h.Notifications)
	}

	// Start the server
	port := getEnv("PORT", "8080")
	fmt.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// getEnv returns the environment variable value or a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
