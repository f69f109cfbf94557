package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/artist-booking-marketplace/internal/config"
	"github.com/iliyamo/artist-booking-marketplace/internal/handler"
	"github.com/iliyamo/artist-booking-marketplace/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  Unauthenticated
// operations live under /v1/auth, protected endpoints under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Issues a fresh access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body, so it works without a JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated artist directory.  These
// routes sit behind the Redis response cache: search results and artist
// pages are read-heavy and tolerate short staleness.
func RegisterPublic(e *echo.Echo, h *handler.ArtistHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/artists", h.Search)
	g.GET("/artists/:id", h.Get)
}

// RegisterBooker registers booker-scoped endpoints under /v1.  All routes
// require a valid JWT and the BOOKER role: the reservation wizard, the
// booker's reservations, payments, favorites and reviews.
func RegisterBooker(e *echo.Echo,
	drafts *handler.DraftHandler,
	reservations *handler.ReservationHandler,
	payments *handler.PaymentHandler,
	favorites *handler.FavoriteHandler,
	reviews *handler.ReviewHandler,
	jwtSecret string,
) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("BOOKER"),
	)

	// Reservation wizard.  Draft state lives in Redis; each route applies
	// one wizard operation.
	g.POST("/drafts", drafts.Create)
	g.GET("/drafts/:id", drafts.Get)
	g.POST("/drafts/:id/next", drafts.Next)
	g.POST("/drafts/:id/back", drafts.Back)
	g.POST("/drafts/:id/goto", drafts.GoTo)
	g.POST("/drafts/:id/service", drafts.SelectService)
	g.POST("/drafts/:id/submit", drafts.Submit)

	g.GET("/my-reservations", reservations.List)

	g.POST("/reservations/:id/payments", payments.Create)
	g.GET("/payments", payments.List)
	g.GET("/payments/:id/receipt", payments.Receipt)
	g.GET("/payments/:id/receipt/download", payments.DownloadReceipt)

	g.GET("/favorites", favorites.List)
	g.POST("/favorites/:id", favorites.Add)
	g.DELETE("/favorites/:id", favorites.Remove)

	g.POST("/reservations/:id/review", reviews.Create)
}

// RegisterArtist registers artist-scoped endpoints under /v1: the artist's
// own services and incoming reservations.
func RegisterArtist(e *echo.Echo, artists *handler.ArtistHandler, reservations *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ARTIST"),
	)
	g.GET("/my-services", artists.MyServices)
	g.POST("/my-services", artists.CreateService)
	g.PUT("/my-services/:id", artists.UpdateService)
	g.GET("/bookings", reservations.ListForArtist)
}

// RegisterShared registers endpoints open to both roles: the reservation
// detail with its action matrix, status changes and notifications.
func RegisterShared(e *echo.Echo, reservations *handler.ReservationHandler, notifications *handler.NotificationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("BOOKER", "ARTIST"),
	)
	g.GET("/reservations/:id", reservations.Get)
	g.PATCH("/reservations/:id/status", reservations.UpdateStatus)

	g.GET("/notifications", notifications.List)
	g.PATCH("/notifications/:id/read", notifications.MarkRead)
	g.POST("/notifications/read-all", notifications.MarkAllRead)
}
