package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/model"
	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// ArtistHandler serves the public artist directory and the artist's
// own service management.
type ArtistHandler struct {
	Artists  *repository.ArtistRepo
	Services *repository.ServiceRepo
	Reviews  *repository.ReviewRepo
}

func NewArtistHandler(a *repository.ArtistRepo, s *repository.ServiceRepo, r *repository.ReviewRepo) *ArtistHandler {
	if a == nil || s == nil || r == nil {
		panic("nil repository passed to NewArtistHandler")
	}
	return &ArtistHandler{Artists: a, Services: s, Reviews: r}
}

// Search lists artists matching text, category, city, price bucket
// and minimum rating filters.  Public, cacheable.
func (h *ArtistHandler) Search(c echo.Context) error {
	page, size := pageParams(c)
	minRating := 0.0
	if s := c.QueryParam("min_rating"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			minRating = f
		}
	}
	q := repository.ArtistSearchQuery{
		Text:        strings.TrimSpace(c.QueryParam("q")),
		Category:    strings.TrimSpace(c.QueryParam("category")),
		City:        strings.TrimSpace(c.QueryParam("city")),
		PriceBucket: c.QueryParam("price"),
		MinRating:   minRating,
		Sort:        c.QueryParam("sort"),
		Page:        page,
		PageSize:    size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Artists.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artists": items,
		"total":   total,
		"page":    page,
		"pages":   (total + int64(size) - 1) / int64(size),
	})
}

// Get returns one artist's public page: profile, active services and
// reviews.
func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	artist, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load artist failed"})
	}
	services, err := h.Services.ListActiveByArtist(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load services failed"})
	}
	reviews, err := h.Reviews.ListByArtist(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artist":   artist,
		"services": serviceViews(services),
		"reviews":  reviewViews(reviews),
	})
}

// serviceView is the wire shape of a service.
type serviceView struct {
	ID       uint64 `json:"id"`
	ArtistID uint64 `json:"artist_id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}

// reviewView is the wire shape of a review on an artist page.
type reviewView struct {
	ID        uint64 `json:"id"`
	Rating    uint8  `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func serviceViews(services []model.Service) []serviceView {
	out := make([]serviceView, 0, len(services))
	for _, s := range services {
		out = append(out, serviceView{ID: s.ID, ArtistID: s.ArtistID, Title: s.Title, Price: s.Price, IsActive: s.IsActive})
	}
	return out
}

func reviewViews(reviews []model.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewView{ID: r.ID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339)})
	}
	return out
}

// ----- artist-role service management -----

type serviceReq struct {
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	IsActive *bool  `json:"is_active"`
}

// MyServices lists every service of the caller's profile, inactive
// ones included.
func (h *ArtistHandler) MyServices(c echo.Context) error {
	profile, ec := h.ownProfile(c)
	if profile == nil {
		return ec
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.ListByArtist(ctx, profile.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load services failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": serviceViews(services)})
}

// CreateService adds a service to the caller's profile.
func (h *ArtistHandler) CreateService(c echo.Context) error {
	profile, ec := h.ownProfile(c)
	if profile == nil {
		return ec
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and positive price required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Services.Create(ctx, profile.ID, req.Title, req.Price)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create service failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateService edits one of the caller's services.
func (h *ArtistHandler) UpdateService(c echo.Context) error {
	profile, ec := h.ownProfile(c)
	if profile == nil {
		return ec
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and positive price required"})
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Services.Update(ctx, id, profile.ID, req.Title, req.Price, isActive); err != nil {
		switch err {
		case repository.ErrServiceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update service failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// ownProfile resolves the caller's artist profile, writing the error
// response and returning nil when it cannot.
func (h *ArtistHandler) ownProfile(c echo.Context) (*model.ArtistProfile, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Artists.GetByUserID(ctx, uid)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "artist profile not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return p, nil
}
