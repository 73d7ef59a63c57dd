package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bedmatch/backend/internal/api/handler"
	"bedmatch/backend/internal/config"
	"bedmatch/backend/internal/gateway"
	"bedmatch/backend/internal/lifecycle"
	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/notify"
	"bedmatch/backend/internal/presence"
	"bedmatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.InterestRequest{},
		&models.Appointment{},
		&models.TimeSlot{},
		&models.Bed{},
		&models.PersonalityProfile{},
		&models.PreferenceRanking{},
		&models.NotificationSetting{},
		&models.ConversationMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting BedMatch realtime gateway...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.FromEnv()

	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	registry := presence.NewRedisRegistry(rdb)
	hub := gateway.NewHub(registry, store)

	pusher := notify.NewPushClient(cfg.PushAppID, cfg.PushAPIKey, cfg.PushEndpoint)
	dispatcher := notify.NewDispatcher(registry, hub, pusher, store)

	engine := lifecycle.NewEngine(store)
	router := gateway.NewRouter(store, engine, dispatcher, hub)

	ctx := context.Background()
	go hub.Run(ctx)
	go hub.RunEventListener(ctx, store.SubscribeEvents(ctx))

	r := gin.Default()
	h := handler.NewHandler(hub, router, store, []byte(cfg.JWTSecret))

	r.GET("/token", h.IssueToken) // dev helper; production tokens come from the auth service
	r.GET("/ws/:role/:purpose", h.ServeWebSocket)
	r.POST("/get-active-tenants/", h.GetActiveTenants)
	r.POST("/get_tenant_appointments/", h.GetTenantAppointments)
	r.POST("/get_landlord_appointments/", h.GetLandlordAppointments)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
