package main

import (
	"context"
	"log"
	"time"

	"leafloop/internal/config"
	"leafloop/internal/delivery/http/route"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DBSource)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}

	mongoCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Unable to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := gin.Default()
	if err := route.SetupRoute(app, dbPool, mongoClient, cfg); err != nil {
		log.Fatal(err)
	}

	log.Printf("Server starting on :%s", cfg.Port)
	if err := app.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
