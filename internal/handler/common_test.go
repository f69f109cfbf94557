package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserIDFromClaimShapes(t *testing.T) {
	for _, v := range []any{uint64(42), int(42), int64(42), float64(42), "42"} {
		c := testContext("/")
		c.Set("user_id", v)
		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	}
}

func TestGetUserIDMissing(t *testing.T) {
	c := testContext("/")
	_, err := getUserID(c)
	assert.Error(t, err)
}

func TestPageParamsDefaultsAndBounds(t *testing.T) {
	page, size := pageParams(testContext("/"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = pageParams(testContext("/?page=3&page_size=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	page, size = pageParams(testContext("/?page=-1&page_size=500"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}
