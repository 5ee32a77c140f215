package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresMongoAndSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	var me *MissingError
	require.ErrorAs(t, err, &me)
	require.ElementsMatch(t, []string{"MONGO_URI", "JWT_SECRET"}, me.Keys)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("CURRENCY", "INR")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "1000", cfg.Port)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, time.Hour, cfg.CatalogTTL)
	require.Equal(t, "inr", cfg.Currency)
	require.Equal(t, 3, cfg.InvoiceMaxRetries)
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	require.Equal(t, 7, GetEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "12")
	require.Equal(t, 12, GetEnvInt("SOME_INT", 7))
}
