package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	var got Pagination

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePagination(c)
		return nil
	})

	cases := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"defaults", "", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"explicit", "?page=3&limit=10", Pagination{Page: 3, Limit: 10, Offset: 20}},
		{"limit capped", "?limit=500", Pagination{Page: 1, Limit: 100, Offset: 0}},
		{"zero limit", "?limit=0", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"negative page", "?page=-2", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"garbage", "?page=abc&limit=xyz", Pagination{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
