package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id set by the JWT middleware and converts it
// to uint64.  The claim arrives as float64 out of the JSON decoder but the
// other shapes show up in tests, so all of them are handled.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// queryInt parses an integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	if s := c.QueryParam(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

// pageParams reads page/page_size with sane bounds.
func pageParams(c echo.Context) (page, size int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size = queryInt(c, "page_size", 20)
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
