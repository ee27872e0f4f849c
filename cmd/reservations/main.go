package main

import (
	"homestay/internal/auth/guard"
	authhandler "homestay/internal/auth/handler"
	"homestay/internal/auth/identity"
	authservice "homestay/internal/auth/service"
	"homestay/internal/auth/token"
	bookinghandler "homestay/internal/bookings/handler"
	bookingrepository "homestay/internal/bookings/repository"
	bookingservice "homestay/internal/bookings/service"
	bookingvalidator "homestay/internal/bookings/validator"
	listinghandler "homestay/internal/listings/handler"
	listingrepository "homestay/internal/listings/repository"
	reviewhandler "homestay/internal/reviews/handler"
	reviewrepository "homestay/internal/reviews/repository"
	reviewservice "homestay/internal/reviews/service"
	reviewvalidator "homestay/internal/reviews/validator"
	userrepository "homestay/internal/users/repository"
	"homestay/pkg/app"
	"homestay/pkg/config"
	"homestay/pkg/events"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Reservations service")

	cfg.SetMongo()

	userRepo := userrepository.NewMongoUserRepository(cfg)
	listingRepo := listingrepository.NewMongoListingRepository(cfg)
	reviewRepo := reviewrepository.NewMongoReviewRepository(cfg)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepository.NewSlotLockRepository(cfg)

	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL)
	resolver := identity.NewResolver(codec, userRepo, cfg.CredentialCookie, cfg.Log)
	routeGuard := guard.New(listingRepo, reviewRepo, bookingRepo, cfg.Log)

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	authService := authservice.NewAuthService(userRepo, codec, cfg.Log)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	reviewService := reviewservice.NewReviewService(
		reviewRepo,
		reviewvalidator.NewReviewValidator(cfg.Log),
		cfg.Log,
	)

	cfg.Log.Info("Reservation services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(resolver, publisher,
		authhandler.NewAuthHandler(authService, cfg, cfg.Log),
		listinghandler.NewListingHandler(listingRepo, routeGuard, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, routeGuard, cfg.Log),
		reviewhandler.NewReviewHandler(reviewService, routeGuard, cfg.Log),
	)
	serverApp.Run()
}
