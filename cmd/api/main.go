package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/paralyuzov/food-delivery-api/internal/config"
	"github.com/paralyuzov/food-delivery-api/internal/domain/model"
	"github.com/paralyuzov/food-delivery-api/internal/handler"
	"github.com/paralyuzov/food-delivery-api/internal/infra/db"
	infraRepo "github.com/paralyuzov/food-delivery-api/internal/infra/repository"
	"github.com/paralyuzov/food-delivery-api/internal/mail"
	"github.com/paralyuzov/food-delivery-api/internal/payment"
	"github.com/paralyuzov/food-delivery-api/internal/server"
	"github.com/paralyuzov/food-delivery-api/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数から）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := config.NewLogger(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Address{},
		&model.Restaurant{},
		&model.Menu{},
		&model.Dish{},
		&model.DishRating{},
		&model.RestaurantRating{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	addressRepo := infraRepo.NewAddressRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantRepository(gormDB)
	menuRepo := infraRepo.NewMenuRepository(gormDB)
	dishRepo := infraRepo.NewDishRepository(gormDB)
	dishRatingRepo := infraRepo.NewDishRatingRepository(gormDB)
	restaurantRatingRepo := infraRepo.NewRestaurantRatingRepository(gormDB)
	orderRepo := infraRepo.NewOrderRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := usecase.BcryptPasswordHasher{}
	verifier := usecase.BcryptPasswordVerifier{}
	issuer := usecase.NewJWTAccessTokenIssuer(cfg.JWTSecret, 15*time.Minute)

	//外部サービス
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.FrontendURL, logger)
	mailer := mail.NewSMTPSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.FrontendURL, logger)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, hasher, verifier, issuer, mailer, idGen, clock, logger)
	userUC := usecase.NewUserUsecase(userRepo, addressRepo, idGen, clock)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo, restaurantRatingRepo, idGen, clock)
	menuUC := usecase.NewMenuUsecase(menuRepo, restaurantRepo, idGen, clock)
	dishUC := usecase.NewDishUsecase(dishRepo, menuRepo, dishRatingRepo, idGen, clock)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, addressRepo, dishRepo, gateway, idGen, clock)
	adminUC := usecase.NewAdminUsecase(userRepo, restaurantRepo, orderRepo, orderItemRepo, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		User:       handler.NewUserHandler(userUC),
		Restaurant: handler.NewRestaurantHandler(restaurantUC, menuUC),
		Menu:       handler.NewMenuHandler(menuUC, dishUC),
		Dish:       handler.NewDishHandler(dishUC),
		Order:      handler.NewOrderHandler(orderUC),
		Stripe:     handler.NewStripeHandler(gateway),
		Admin:      handler.NewAdminHandler(adminUC),
	}

	e := server.New(cfg, logger, handlers)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
