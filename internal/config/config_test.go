package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAdminEmails(t *testing.T) {
	require.Equal(t, defaultAdminEmails, parseAdminEmails(""))
	require.Equal(t, defaultAdminEmails, parseAdminEmails("  ,  "))

	emails := parseAdminEmails("a@shop.com, b@shop.com ,c@shop.com")
	require.Equal(t, []string{"a@shop.com", "b@shop.com", "c@shop.com"}, emails)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: []string{"Admin@Printly.shop", "ops@printly.shop"}}

	require.True(t, cfg.IsAdminEmail("admin@printly.shop"))
	require.True(t, cfg.IsAdminEmail("ADMIN@PRINTLY.SHOP"))
	require.True(t, cfg.IsAdminEmail("ops@printly.shop"))
	require.False(t, cfg.IsAdminEmail("customer@printly.shop"))
	require.False(t, cfg.IsAdminEmail(""))
}
