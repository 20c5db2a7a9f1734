package main

import (
	"fmt"
	"os"

	"carwash-service/internal/auth"
	"carwash-service/internal/chat"
	"carwash-service/internal/config"
	"carwash-service/internal/db"
	httphandler "carwash-service/internal/http"
	"carwash-service/internal/http/middleware"
	"carwash-service/internal/logger"
	"carwash-service/internal/repository"
	"carwash-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	catalogRepo := repository.NewCatalogRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	ratingRepo := repository.NewRatingRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	proofRepo := repository.NewProofRepository(database)
	chatRepo := repository.NewChatRepository(database)

	notifier := service.NewNotifier(notificationRepo, log)
	registry := chat.NewRegistry()

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(userRepo, tokenIssuer)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, reservationRepo)
	catalogService := service.NewCatalogService(catalogRepo, reservationRepo)
	reservationService := service.NewReservationService(reservationRepo, vehicleRepo, catalogRepo, paymentRepo, notifier)
	jobService := service.NewJobService(reservationRepo, userRepo, proofRepo, notifier, cfg.Search.DefaultRadiusKm)
	ratingService := service.NewRatingService(ratingRepo, reservationRepo, userRepo, notifier)
	paymentService := service.NewPaymentService(paymentRepo, reservationRepo, notifier)
	notificationService := service.NewNotificationService(notificationRepo)
	chatService := service.NewChatService(chatRepo, registry)

	handler := httphandler.NewHandler(
		authService,
		userService,
		vehicleService,
		catalogService,
		reservationService,
		jobService,
		ratingService,
		paymentService,
		notificationService,
		chatService,
		registry,
		log,
	)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting carwash service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
