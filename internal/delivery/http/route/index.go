package route

import (
	"net/http"

	"leafloop/internal/config"
	httpHandler "leafloop/internal/delivery/http/handler"
	"leafloop/internal/delivery/http/middleware"
	mongorepo "leafloop/internal/repository/mongodb"
	repo "leafloop/internal/repository/postgresql"
	service "leafloop/internal/service/postgresql"
	"leafloop/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoute(app *gin.Engine, db *pgxpool.Pool, mongoClient *mongo.Client, cfg *config.Config) error {
	photos, err := storage.NewPhotoStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	// --- REPOSITORIES ---
	userRepo := repo.NewUserRepository(db)
	profileRepo := repo.NewProfileRepository(db)
	bookRepo := repo.NewBookRepository(db)
	offerRepo := repo.NewOfferRepository(db)
	exchangeRepo := repo.NewExchangeRepository(db)
	messageRepo := repo.NewMessageRepository(db)
	logRepo := mongorepo.NewLogRepository(mongoClient, cfg.MongoDatabase)

	// --- SERVICES ---
	secret := []byte(cfg.JWTSecret)
	refreshSecret := []byte(cfg.RefreshSecret)
	authService := service.NewAuthService(userRepo, secret, refreshSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(profileRepo, userRepo)
	bookService := service.NewBookService(bookRepo, photos)
	offerService := service.NewOfferService(offerRepo, bookRepo, profileRepo, userRepo, messageRepo, logRepo)
	exchangeService := service.NewExchangeService(exchangeRepo)

	// --- HANDLERS ---
	authHandler := httpHandler.NewAuthHandler(authService)
	profileHandler := httpHandler.NewProfileHandler(profileService)
	bookHandler := httpHandler.NewBookHandler(bookService, photos)
	offerHandler := httpHandler.NewOfferHandler(offerService)
	exchangeHandler := httpHandler.NewExchangeHandler(exchangeService)
	notificationHandler := httpHandler.NewNotificationHandler(logRepo)

	app.Use(middleware.Metrics())
	app.Static("/uploads", cfg.UploadDir)
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))
	app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := app.Group("/api")

	// --- Authentication ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", middleware.AuthRequired(secret), authHandler.Me)

	// --- Profiles ---
	api.GET("/profile", middleware.AuthRequired(secret), profileHandler.Get)
	api.PUT("/profile", middleware.AuthRequired(secret), profileHandler.Upsert)
	api.GET("/profiles/:id", profileHandler.GetPublic)

	// --- Book Vault (owner) ---
	books := api.Group("/books", middleware.AuthRequired(secret))
	books.POST("", bookHandler.Create)
	books.GET("/my", bookHandler.MyBooks)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)
	books.PATCH("/:id/listing", bookHandler.SetListing)

	// --- Marketplace (public browse) ---
	market := api.Group("/market", middleware.AuthOptional(secret))
	market.GET("/books", bookHandler.Browse)
	market.GET("/books/:id", bookHandler.MarketBook)

	// --- Trade Offers ---
	offers := api.Group("/offers", middleware.AuthRequired(secret))
	offers.POST("", offerHandler.Create)
	offers.GET("/incoming", offerHandler.Incoming)
	offers.GET("/outgoing", offerHandler.Outgoing)
	offers.GET("/:id", offerHandler.Get)
	offers.POST("/:id/select", offerHandler.SelectCandidate)
	offers.POST("/:id/reveal", offerHandler.Reveal)
	offers.POST("/:id/reject", offerHandler.Reject)
	offers.POST("/:id/cancel", offerHandler.Cancel)
	offers.POST("/:id/complete", offerHandler.Complete)
	offers.GET("/:id/messages", offerHandler.Messages)
	offers.POST("/:id/messages", offerHandler.PostMessage)

	// --- Exchange Ledger & Notifications ---
	api.GET("/exchanges", middleware.AuthRequired(secret), exchangeHandler.History)
	api.GET("/notifications", middleware.AuthRequired(secret), notificationHandler.List)

	return nil
}
