package main

import (
	"context"
	"log"
	"os"
	"time"

	"campus-food-backend/config"
	httpapi "campus-food-backend/internal/api/http"
	"campus-food-backend/internal/service"
	"campus-food-backend/internal/storage"
)

func main() {
	client := config.MustInitMongo()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("WARNING: mongo disconnect: %v", err)
		}
	}()

	db := client.Database(config.DatabaseName())
	repo := storage.NewMongoRepository(db)
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	var cache service.StatsCache
	if os.Getenv("REDIS_HOST") != "" {
		cache = storage.NewRedisStatsCache(config.MustInitRedis(), time.Hour)
	}

	var publisher service.EventPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter("food-events")
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	storeSvc := service.NewStoreService(repo)
	ratingSvc := service.NewRatingService(repo, cache, publisher)
	orderSvc := service.NewOrderService(repo, &service.DefaultQRGenerator{BaseURL: baseURL}, publisher)
	presenceSvc := service.NewPresenceService(repo)

	handler := httpapi.NewHandler(storeSvc, ratingSvc, orderSvc, presenceSvc, repo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	httpapi.StartServer(":"+port, httpapi.NewRouter(handler))
}
