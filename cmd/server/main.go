package main

import (
	"log"

	"github.com/joho/godotenv"

	"auth-service/internal/application/services"
	"auth-service/internal/config"
	deliveryhttp "auth-service/internal/delivery/http"
	"auth-service/internal/domain/repositories"
	"auth-service/internal/infrastructure"
	"auth-service/internal/infrastructure/db/gormstore"
	"auth-service/internal/infrastructure/db/mongodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Fatal("❌ ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	userRepo, err := newUserRepository(cfg)
	if err != nil {
		log.Fatal("❌ Failed to connect to the credential store: ", err)
	}

	redisService := infrastructure.NewRedisService(cfg)
	defer redisService.Close()

	jwtService := infrastructure.NewJWTService(cfg)

	userService := services.NewUserService(
		userRepo,
		infrastructure.NewPasswordService(),
		infrastructure.NewOTPService(cfg.OTPTTL),
		jwtService,
		redisService,
		infrastructure.NewMailer(cfg),
		cfg.ProfileCacheTTL,
	)

	handler := deliveryhttp.NewHandler(userService, cfg)
	authMiddleware := deliveryhttp.NewAuthMiddleware(jwtService, userRepo)
	router := deliveryhttp.NewRouter(cfg, handler, authMiddleware)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(router.Start(":" + cfg.Port))
}

func newUserRepository(cfg *config.Config) (repositories.UserRepository, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := gormstore.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to PostgreSQL")
		return gormstore.NewUserRepository(db), nil
	default:
		client, err := mongodb.Connect(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to MongoDB")
		return mongodb.NewUserRepository(client.Database(cfg.MongoDatabase))
	}
}
