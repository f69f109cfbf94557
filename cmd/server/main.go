package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/booking"
	"github.com/iliyamo/artist-booking-marketplace/internal/config"
	"github.com/iliyamo/artist-booking-marketplace/internal/database"
	"github.com/iliyamo/artist-booking-marketplace/internal/handler"
	"github.com/iliyamo/artist-booking-marketplace/internal/middleware"
	"github.com/iliyamo/artist-booking-marketplace/internal/queue"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
	"github.com/iliyamo/artist-booking-marketplace/internal/router"
	queuepub "github.com/iliyamo/artist-booking-marketplace/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis carries wizard drafts, the rate limiter and the response
	// cache.  Drafts are mandatory; the wizard cannot run without them.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed; draft storage requires redis")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	artists := repository.NewArtistRepo(db)
	services := repository.NewServiceRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	reviews := repository.NewReviewRepo(db)
	notifications := repository.NewNotificationRepo(db)
	drafts := repository.NewDraftStore(rdb, cfg.DraftTTL)

	publisher := queuepub.NewPublisher(artists, services)
	submitter := booking.NewSubmitter(reservations, publisher)

	authH := handler.NewAuthHandler(cfg, users, tokens, artists)
	artistH := handler.NewArtistHandler(artists, services, reviews)
	draftH := handler.NewDraftHandler(drafts, artists, services, submitter)
	reservationH := handler.NewReservationHandler(reservations, reviews, artists)
	paymentH := handler.NewPaymentHandler(payments, reservations, publisher)
	favoriteH := handler.NewFavoriteHandler(favorites, artists)
	reviewH := handler.NewReviewHandler(reviews, reservations, artists)
	notificationH := handler.NewNotificationHandler(notifications)

	// Broker consumer turns reservation and payment events into
	// notification rows.  It reconnects forever in the background.
	go func() {
		if err := queue.StartNotificationConsumer(notifications); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, artistH, config.LoadCacheConfig(), rdb)
	router.RegisterBooker(e, draftH, reservationH, paymentH, favoriteH, reviewH, cfg.JWTSecret)
	router.RegisterArtist(e, artistH, reservationH, cfg.JWTSecret)
	router.RegisterShared(e, reservationH, notificationH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
