package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/unlinked/server/src/config"
	"github.com/unlinked/server/src/controllers"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/middleware"
	"github.com/unlinked/server/src/repositories"
	"github.com/unlinked/server/src/routes"
	"github.com/unlinked/server/src/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := lib.InitLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := lib.ConnectDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("Connected to MongoDB")

	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	cache, err := lib.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	if cache != nil {
		log.Info("Connected to Redis")
	}

	var uploader services.Uploader
	if cfg.MinioEndpoint != "" {
		uploadService, err := services.NewUploadService(ctx,
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioSecure,
			lib.ComponentLogger("uploads"))
		if err != nil {
			log.WithError(err).Fatal("failed to connect to object storage")
		}
		uploader = uploadService
		log.Info("Connected to object storage")
	} else {
		uploader = services.NewDisabledUploader()
		log.Warn("object storage not configured, image uploads disabled")
	}

	// Stores
	userRepo := repositories.NewUserRepository(db)
	requestRepo := repositories.NewConnectionRequestRepository(db)
	postRepo := repositories.NewPostRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	mailer := services.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName, lib.ComponentLogger("email"))
	mailer.Start(ctx)

	notifier := services.NewNotifier(notificationRepo, lib.ComponentLogger("notifier"))
	authService := services.NewAuthService(userRepo, mailer, cfg.ClientURL, lib.ComponentLogger("auth"))
	userService := services.NewUserService(userRepo, uploader, cache, lib.ComponentLogger("users"))
	connectionService := services.NewConnectionService(requestRepo, userRepo, notifier, mailer, cfg.ClientURL, lib.ComponentLogger("connections"))
	postService := services.NewPostService(postRepo, userRepo, notifier, mailer, uploader, cfg.ClientURL, lib.ComponentLogger("posts"))
	notificationService := services.NewNotificationService(notificationRepo, userRepo, postRepo)

	// HTTP layer
	app := fiber.New(fiber.Config{
		// Image uploads arrive as base64 data URIs in JSON bodies.
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	protect := middleware.ProtectRoute(userRepo, cfg.JWTSecret)

	routes.AuthRoutes(app, controllers.NewAuthController(authService, cfg.JWTSecret, lib.ComponentLogger("auth")), protect)
	routes.UserRoutes(app, controllers.NewUserController(userService, lib.ComponentLogger("users")), protect)
	routes.PostRoutes(app, controllers.NewPostController(postService, lib.ComponentLogger("posts")), protect)
	routes.NotificationRoutes(app, controllers.NewNotificationController(notificationService, lib.ComponentLogger("notifications")), protect)
	routes.ConnectionRoutes(app, controllers.NewConnectionController(connectionService, lib.ComponentLogger("connections")), protect)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Static("/", "./public")

	log.Info("Server is running on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
