package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-booking-marketplace/internal/repository"
)

// FavoriteHandler manages a booker's bookmarked artists.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Artists   *repository.ArtistRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, a *repository.ArtistRepo) *FavoriteHandler {
	if f == nil || a == nil {
		panic("nil repository passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: f, Artists: a}
}

// List returns the caller's bookmarked artists, newest first.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Favorites.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list favorites failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": items})
}

// Add bookmarks an artist.  Adding twice is a no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	artistID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Artists.GetByID(ctx, artistID); err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load artist failed"})
	}
	if err := h.Favorites.Add(ctx, uid, artistID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove deletes a bookmark.  Removing a non-existent one is a no-op.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	artistID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Favorites.Remove(ctx, uid, artistID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
